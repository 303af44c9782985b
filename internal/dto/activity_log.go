package dto

import "inventra/backend/internal/model"

// ── 操作日志 DTO ──

// ActivityLogListRequest 操作日志分页查询
// page 非数字或非正数时按第 1 页处理，因此以字符串接收
type ActivityLogListRequest struct {
	Page      string `form:"page"`
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD，含当天
}

// ActivityLogExportRequest 操作日志导出条件
type ActivityLogExportRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ActorResponse 操作者快照
type ActorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ActivityLogResponse 操作日志条目
type ActivityLogResponse struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	EntityName  string          `json:"entity_name"`
	Actor       ActorResponse   `json:"actor"`
	Changes     model.ChangeSet `json:"changes"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}
