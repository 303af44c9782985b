package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
	Status  string `form:"status"  binding:"omitempty,oneof=pending approved rejected"`
}

// UserDecisionRequest 管理员审核注册申请
type UserDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}
