package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/service"
	"inventra/backend/pkg/response"
)

// ActivityLogHandler 操作日志查询 HTTP 处理器
type ActivityLogHandler struct {
	logSvc service.ActivityLogService
}

// NewActivityLogHandler 创建 ActivityLogHandler
func NewActivityLogHandler(logSvc service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{logSvc: logSvc}
}

// ListLogs 操作日志分页查询，按时间倒序
// GET /api/v1/activity-logs?page=&start_date=&end_date=
func (h *ActivityLogHandler) ListLogs(c *gin.Context) {
	var req dto.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	logs, total, page, err := h.logSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, logs, total, page, h.logSvc.PageSize())
}

// ListRecent 最近 N 条操作日志
// GET /api/v1/activity-logs/recent?limit=
func (h *ActivityLogHandler) ListRecent(c *gin.Context) {
	// limit 缺省或非法时使用配置值
	n, _ := strconv.Atoi(c.Query("limit"))
	if n > 100 {
		n = 100
	}

	logs, err := h.logSvc.ListRecent(c.Request.Context(), n)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

// ListForEntity 某一实体的全部操作日志
// GET /api/v1/activity-logs/entity/:entity_type/:entity_id
func (h *ActivityLogHandler) ListForEntity(c *gin.Context) {
	entityID, ok := paramID(c, "entity_id")
	if !ok {
		return
	}

	logs, err := h.logSvc.ListForEntity(c.Request.Context(), c.Param("entity_type"), entityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}
