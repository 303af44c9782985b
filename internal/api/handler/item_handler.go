package handler

import (
	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/service"
	"inventra/backend/pkg/response"
)

// ItemHandler 资产模块 HTTP 处理器
type ItemHandler struct {
	itemSvc service.ItemService
}

// NewItemHandler 创建 ItemHandler
func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

// ────────────────────── 查询 ──────────────────────

// ListItems 在用资产列表，按更新时间倒序
// GET /api/v1/items?page=
func (h *ItemHandler) ListItems(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	items, total, err := h.itemSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize(h.itemSvc.PageSize()))
}

// GetItem 资产详情
// GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, item)
}

// SearchItems 按名称（包含，忽略大小写）或序列号（前缀）搜索
// GET /api/v1/items/search?name=|serial=
func (h *ItemHandler) SearchItems(c *gin.Context) {
	var req dto.ItemSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	items, total, err := h.itemSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize(h.itemSvc.PageSize()))
}

// FilterItems 组合条件过滤
// POST /api/v1/items/filter
func (h *ItemHandler) FilterItems(c *gin.Context) {
	var req dto.ItemFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	items, total, err := h.itemSvc.Filter(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize(h.itemSvc.PageSize()))
}

// ────────────────────── 变更 ──────────────────────

// CreateItems 批量登记资产
// POST /api/v1/items
func (h *ItemHandler) CreateItems(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	items, err := h.itemSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{"list": items})
}

// UpdateStatus 修改资产状态
// PATCH /api/v1/items/:id/status
func (h *ItemHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	item, err := h.itemSvc.UpdateStatus(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, item)
}

// MoveItem 移动资产
// POST /api/v1/items/:id/move
func (h *ItemHandler) MoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	item, err := h.itemSvc.Move(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, item)
}

// UpdateItem 编辑资产详情
// PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	item, err := h.itemSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, item)
}

// DeleteItem 删除资产（软删除，历史日志保留）
// DELETE /api/v1/items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.itemSvc.Delete(c.Request.Context(), id, actor); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// ItemLogs 资产的操作日志
// GET /api/v1/items/:id/logs
func (h *ItemHandler) ItemLogs(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	logs, err := h.itemSvc.Logs(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

// ────────────────────── 统计 ──────────────────────

// Stats 资产总体统计
// GET /api/v1/items/stats
func (h *ItemHandler) Stats(c *gin.Context) {
	stats, err := h.itemSvc.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, stats)
}

// Similar 同分类资产按型号分组
// GET /api/v1/items/:id/similar
func (h *ItemHandler) Similar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	groups, err := h.itemSvc.Similar(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": groups})
}

// RoomsOverview 各房间资产状态分布
// GET /api/v1/items/rooms-overview
func (h *ItemHandler) RoomsOverview(c *gin.Context) {
	rooms, err := h.itemSvc.RoomsOverview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// Report 分组报表
// GET /api/v1/items/report?category_id=&page=
func (h *ItemHandler) Report(c *gin.Context) {
	var req dto.ItemReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	groups, total, err := h.itemSvc.Report(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, groups, total, req.GetPage(), req.GetPageSize(h.itemSvc.PageSize()))
}
