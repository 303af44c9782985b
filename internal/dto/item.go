package dto

import "github.com/shopspring/decimal"

// ── 资产模块 DTO ──

// CreateItemRequest 批量创建资产请求，Count 件资产共享同一组属性
type CreateItemRequest struct {
	Name         string          `json:"name"          binding:"required,min=1,max=200"`
	Description  string          `json:"description"   binding:"omitempty,max=2000"`
	ModelNumber  string          `json:"model_number"  binding:"omitempty,max=100"`
	CategoryID   string          `json:"category_id"   binding:"required,uuid"`
	FloorID      string          `json:"floor_id"      binding:"required,uuid"`
	RoomID       string          `json:"room_id"       binding:"required,uuid"`
	Status       string          `json:"status"        binding:"required,oneof=Working Repairable 'Not working'"`
	Source       string          `json:"source"        binding:"required,oneof=Purchase Donation"`
	Cost         decimal.Decimal `json:"cost"`
	AcquiredDate string          `json:"acquired_date" binding:"required"` // YYYY-MM-DD
	Count        int             `json:"count"         binding:"omitempty,min=1"`
}

// UpdateItemRequest 编辑资产详情，CategoryID 变化时重新分配序列号
type UpdateItemRequest struct {
	Name         *string          `json:"name"          binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"   binding:"omitempty,max=2000"`
	ModelNumber  *string          `json:"model_number"  binding:"omitempty,max=100"`
	CategoryID   *string          `json:"category_id"   binding:"omitempty,uuid"`
	Source       *string          `json:"source"        binding:"omitempty,oneof=Purchase Donation"`
	Cost         *decimal.Decimal `json:"cost"`
	AcquiredDate *string          `json:"acquired_date"`
	Version      int              `json:"version"       binding:"omitempty,min=1"`
}

// UpdateItemStatusRequest 修改资产状态
type UpdateItemStatusRequest struct {
	Status  string `json:"status"  binding:"required,oneof=Working Repairable 'Not working'"`
	Version int    `json:"version" binding:"omitempty,min=1"`
}

// MoveItemRequest 移动资产到其他房间，楼层随房间确定
type MoveItemRequest struct {
	RoomID  string `json:"room_id" binding:"required,uuid"`
	Version int    `json:"version" binding:"omitempty,min=1"`
}

// ItemSearchRequest 资产搜索参数，name 与 serial 二选一
type ItemSearchRequest struct {
	PaginationRequest
	Name   string `form:"name"   binding:"omitempty,max=200"`
	Serial string `form:"serial" binding:"omitempty,max=50"`
}

// ItemFilterRequest 资产过滤条件，取值 All 表示不过滤
// 过滤接口以 JSON 提交，导出接口以查询参数提交
type ItemFilterRequest struct {
	PaginationRequest
	CategoryID string `json:"category_id" form:"category_id"`
	RoomID     string `json:"room_id"     form:"room_id"`
	Status     string `json:"status"      form:"status"`
	Source     string `json:"source"      form:"source"`
	StartDate  string `json:"start_date"  form:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"    form:"end_date"`   // YYYY-MM-DD，含当天
}

// ItemReportRequest 分组报表参数
type ItemReportRequest struct {
	PaginationRequest
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// ItemResponse 资产信息响应
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ModelNumber  string          `json:"model_number"`
	SerialNumber string          `json:"serial_number"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	FloorID      string          `json:"floor_id"`
	FloorName    string          `json:"floor_name,omitempty"`
	RoomID       string          `json:"room_id"`
	RoomName     string          `json:"room_name,omitempty"`
	Status       string          `json:"status"`
	Source       string          `json:"source"`
	Cost         decimal.Decimal `json:"cost"`
	AcquiredDate string          `json:"acquired_date"`
	Version      int             `json:"version"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// ItemStatsResponse 资产总体统计
type ItemStatsResponse struct {
	StatusStatsResponse
	AcquiredUntilLastMonth int64 `json:"acquired_until_last_month"`
}

// ItemGroupResponse 分组统计行
type ItemGroupResponse struct {
	Name         string `json:"name,omitempty"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	ModelNumber  string `json:"model_number"`
	Total        int64  `json:"total"`
	Working      int64  `json:"working"`
	Repairable   int64  `json:"repairable"`
	NotWorking   int64  `json:"not_working"`
}

// RoomOverviewResponse 房间资产概览
type RoomOverviewResponse struct {
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	FloorID    string `json:"floor_id"`
	FloorName  string `json:"floor_name"`
	Total      int64  `json:"total"`
	Working    int64  `json:"working"`
	Repairable int64  `json:"repairable"`
	NotWorking int64  `json:"not_working"`
}
