package handler

import (
	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/internal/service"
	"inventra/backend/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器（管理员）
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 用户列表
// GET /api/v1/users?keyword=&status=&page=
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}
	h.list(c, &req)
}

// ListPending 待审核的注册申请
// GET /api/v1/users/pending
func (h *UserHandler) ListPending(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req.PaginationRequest); err != nil {
		bindFailed(c)
		return
	}
	req.Status = model.UserStatusPending
	h.list(c, &req)
}

func (h *UserHandler) list(c *gin.Context, req *dto.UserListRequest) {
	users, total, err := h.userSvc.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize(service.UserPageSize))
}

// Decide 审核注册申请
// PUT /api/v1/users/:id/decision
func (h *UserHandler) Decide(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UserDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Decide(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user)
}

// DeleteUser 删除用户（软删除）
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetPassword 重置用户密码，返回一次性临时密码
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.ResetPassword(c.Request.Context(), id, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"temp_password": result.TempPassword})
}
