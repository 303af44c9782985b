package handler

import "inventra/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Location    *LocationHandler
	Category    *CategoryHandler
	Item        *ItemHandler
	ActivityLog *ActivityLogHandler
	Export      *ExportHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合
// checks 为健康检查依赖（数据库、Redis），按名称上报
func NewHandler(svc *service.Service, checks map[string]Pinger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Location:    NewLocationHandler(svc.Location),
		Category:    NewCategoryHandler(svc.Category),
		Item:        NewItemHandler(svc.Item),
		ActivityLog: NewActivityLogHandler(svc.ActivityLog),
		Export:      NewExportHandler(svc.Export),
		Health:      NewHealthHandler(checks),
	}
}
