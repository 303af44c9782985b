package dto

import "github.com/shopspring/decimal"

// ── 分类 / 子分类 DTO ──

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name         string `json:"name"         binding:"required,min=1,max=100"`
	Abbreviation string `json:"abbreviation" binding:"required,alphanum,min=1,max=10"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name         *string `json:"name"         binding:"omitempty,min=1,max=100"`
	Abbreviation *string `json:"abbreviation" binding:"omitempty,alphanum,min=1,max=10"`
}

// CategoryResponse 分类信息响应
type CategoryResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Abbreviation         string `json:"abbreviation"`
	LastItemSerialNumber int    `json:"last_item_serial_number"`
	ItemCount            *int64 `json:"item_count,omitempty"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

// StatusStatsResponse 资产状态统计
type StatusStatsResponse struct {
	Total      int64           `json:"total"`
	Working    int64           `json:"working"`
	Repairable int64           `json:"repairable"`
	NotWorking int64           `json:"not_working"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// YearAcquisitionResponse 按年份的购置统计
type YearAcquisitionResponse struct {
	Year  int             `json:"year"`
	Count int64           `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// CreateSubCategoryRequest 创建子分类请求
type CreateSubCategoryRequest struct {
	CategoryID   string `json:"category_id"  binding:"required,uuid"`
	Name         string `json:"name"         binding:"required,min=1,max=100"`
	Abbreviation string `json:"abbreviation" binding:"required,alphanum,min=1,max=10"`
}

// UpdateSubCategoryRequest 更新子分类请求
type UpdateSubCategoryRequest struct {
	Name         *string `json:"name"         binding:"omitempty,min=1,max=100"`
	Abbreviation *string `json:"abbreviation" binding:"omitempty,alphanum,min=1,max=10"`
}

// SubCategoryResponse 子分类信息响应
type SubCategoryResponse struct {
	ID           string `json:"id"`
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
