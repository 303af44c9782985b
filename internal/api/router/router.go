package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inventra/backend/config"
	"inventra/backend/internal/api/handler"
	"inventra/backend/internal/api/middleware"
	"inventra/backend/pkg/jwt"
	"inventra/backend/pkg/metrics"
)

// Deps 路由所需的外部依赖，均可为 nil（降级放行）
type Deps struct {
	Blacklist   middleware.Blacklist
	RateLimiter middleware.RateLimiter
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 运维接口 ──
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	admin := middleware.RoleAuth(config.RoleAdmin)
	anyone := middleware.RoleAuth(config.RoleAdmin, config.RoleUser)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(deps.RateLimiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, deps.Blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户管理
			users := authorized.Group("/users", admin)
			{
				users.GET("", h.User.ListUsers)
				users.GET("/pending", h.User.ListPending)
				users.PUT("/:id/decision", h.User.Decide)
				users.DELETE("/:id", h.User.DeleteUser)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}

			// 楼层
			floors := authorized.Group("/floors")
			{
				floors.GET("", anyone, h.Location.ListFloors)
				floors.POST("", admin, h.Location.CreateFloor)
				floors.PUT("/:id", admin, h.Location.UpdateFloor)
				floors.DELETE("/:id", admin, h.Location.DeleteFloor)
			}

			// 房间
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", anyone, h.Location.ListRooms)
				rooms.GET("/:id", anyone, h.Location.GetRoom)
				rooms.POST("", admin, h.Location.CreateRoom)
				rooms.PUT("/:id", admin, h.Location.UpdateRoom)
				rooms.DELETE("/:id", admin, h.Location.DeleteRoom)
			}

			// 分类
			categories := authorized.Group("/categories")
			{
				categories.GET("", anyone, h.Category.ListCategories)
				categories.GET("/overview", anyone, h.Category.Overview)
				categories.GET("/:id", anyone, h.Category.GetCategory)
				categories.GET("/:id/stats", anyone, h.Category.StatusStats)
				categories.GET("/:id/acquisitions", anyone, h.Category.AcquisitionStats)
				categories.GET("/:id/sub-categories", anyone, h.Category.ListSubCategories)
				categories.POST("", admin, h.Category.CreateCategory)
				categories.PUT("/:id", admin, h.Category.UpdateCategory)
				categories.DELETE("/:id", admin, h.Category.DeleteCategory)
			}

			// 子分类
			subCategories := authorized.Group("/sub-categories", admin)
			{
				subCategories.POST("", h.Category.CreateSubCategory)
				subCategories.PUT("/:id", h.Category.UpdateSubCategory)
				subCategories.DELETE("/:id", h.Category.DeleteSubCategory)
			}

			// 资产
			items := authorized.Group("/items")
			{
				items.GET("", anyone, h.Item.ListItems)
				items.GET("/search", anyone, h.Item.SearchItems)
				items.POST("/filter", anyone, h.Item.FilterItems)
				items.GET("/stats", anyone, h.Item.Stats)
				items.GET("/rooms-overview", anyone, h.Item.RoomsOverview)
				items.GET("/report", anyone, h.Item.Report)
				items.GET("/export", anyone, h.Export.ExportItems)
				items.GET("/:id", anyone, h.Item.GetItem)
				items.GET("/:id/similar", anyone, h.Item.Similar)
				items.GET("/:id/logs", middleware.RoleAuth(cfg.Audit.EntityRoles...), h.Item.ItemLogs)

				// 状态变更与移动由现场人员完成
				items.PATCH("/:id/status", anyone, h.Item.UpdateStatus)
				items.POST("/:id/move", anyone, h.Item.MoveItem)

				items.POST("", admin, h.Item.CreateItems)
				items.PUT("/:id", admin, h.Item.UpdateItem)
				items.DELETE("/:id", admin, h.Item.DeleteItem)
			}

			// 操作日志（各接口允许的角色由 audit.*_roles 配置）
			logs := authorized.Group("/activity-logs")
			{
				logs.GET("", middleware.RoleAuth(cfg.Audit.OverallRoles...), h.ActivityLog.ListLogs)
				logs.GET("/export", middleware.RoleAuth(cfg.Audit.OverallRoles...), h.Export.ExportActivityLogs)
				logs.GET("/recent", middleware.RoleAuth(cfg.Audit.RecentRoles...), h.ActivityLog.ListRecent)
				logs.GET("/entity/:entity_type/:entity_id", middleware.RoleAuth(cfg.Audit.EntityRoles...), h.ActivityLog.ListForEntity)
			}
		}
	}

	return r
}
