package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/service"
	"inventra/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportActivityLogs 导出操作日志
// GET /api/v1/activity-logs/export?start_date=&end_date=
func (h *ExportHandler) ExportActivityLogs(c *gin.Context) {
	var req dto.ActivityLogExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	buf, filename, err := h.exportSvc.ExportActivityLogs(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	sendXLSX(c, buf, filename)
}

// ExportItems 导出资产清单
// GET /api/v1/items/export?category_id=&room_id=&status=&source=&start_date=&end_date=
func (h *ExportHandler) ExportItems(c *gin.Context) {
	var req dto.ItemFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	buf, filename, err := h.exportSvc.ExportItems(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	sendXLSX(c, buf, filename)
}

// sendXLSX 写入下载响应头
func sendXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
