package handler

import (
	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/service"
	"inventra/backend/pkg/response"
)

// CategoryHandler 分类与子分类 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// ListCategories 在用分类列表
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	list, err := h.categorySvc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Overview 分类概览（含在用资产数量），分页
// GET /api/v1/categories/overview?page=
func (h *CategoryHandler) Overview(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	list, total, err := h.categorySvc.Overview(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize(h.categorySvc.PageSize()))
}

// GetCategory 分类详情
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.categorySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, category)
}

// CreateCategory 创建分类
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	category, err := h.categorySvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, category)
}

// UpdateCategory 修改分类名称或缩写
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	category, err := h.categorySvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, category)
}

// DeleteCategory 删除分类
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.categorySvc.Delete(c.Request.Context(), id, actor); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// StatusStats 分类下资产状态统计
// GET /api/v1/categories/:id/stats
func (h *CategoryHandler) StatusStats(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	stats, err := h.categorySvc.StatusStats(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, stats)
}

// AcquisitionStats 分类下按年份的购置统计
// GET /api/v1/categories/:id/acquisitions
func (h *CategoryHandler) AcquisitionStats(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	stats, err := h.categorySvc.AcquisitionStats(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": stats})
}

// ────────────────────── 子分类 ──────────────────────

// ListSubCategories 分类下的子分类
// GET /api/v1/categories/:id/sub-categories
func (h *CategoryHandler) ListSubCategories(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	list, err := h.categorySvc.ListSub(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateSubCategory 创建子分类
// POST /api/v1/sub-categories
func (h *CategoryHandler) CreateSubCategory(c *gin.Context) {
	var req dto.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	sub, err := h.categorySvc.CreateSub(c.Request.Context(), &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, sub)
}

// UpdateSubCategory 修改子分类
// PUT /api/v1/sub-categories/:id
func (h *CategoryHandler) UpdateSubCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	sub, err := h.categorySvc.UpdateSub(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, sub)
}

// DeleteSubCategory 删除子分类
// DELETE /api/v1/sub-categories/:id
func (h *CategoryHandler) DeleteSubCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.categorySvc.DeleteSub(c.Request.Context(), id, actor); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}
