package model

// Category 资产分类表，对应 categories
// LastItemSerialNumber 只由序列号分配器递增
type Category struct {
	CategoryID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	Name                 string `gorm:"type:varchar(100);not null"                     json:"name"`
	Abbreviation         string `gorm:"type:varchar(10);not null;default:''"           json:"abbreviation"`
	LastItemSerialNumber int    `gorm:"not null;default:0"                             json:"last_item_serial_number"`
	IsActive             bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Category) TableName() string { return "categories" }

// SubCategory 子分类表，对应 sub_categories
type SubCategory struct {
	SubCategoryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sub_category_id"`
	CategoryID    string `gorm:"type:uuid;not null"                             json:"category_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Abbreviation  string `gorm:"type:varchar(10);not null"                      json:"abbreviation"`
	IsActive      bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (SubCategory) TableName() string { return "sub_categories" }
