package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 资产状态
const (
	ItemStatusWorking    = "Working"
	ItemStatusRepairable = "Repairable"
	ItemStatusNotWorking = "Not working"
)

// 资产来源
const (
	ItemSourcePurchase = "Purchase"
	ItemSourceDonation = "Donation"
)

// ValidItemStatus 判断状态是否合法
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusWorking, ItemStatusRepairable, ItemStatusNotWorking:
		return true
	}
	return false
}

// Item 资产表，对应 items
type Item struct {
	ItemID       string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"item_id"`
	Name         string          `gorm:"type:varchar(200);not null"                     json:"name"`
	Description  string          `gorm:"type:text;not null;default:''"                  json:"description"`
	ModelNumber  string          `gorm:"type:varchar(100);not null;default:''"          json:"model_number"`
	CategoryID   string          `gorm:"type:uuid;not null"                             json:"category_id"`
	FloorID      string          `gorm:"type:uuid;not null"                             json:"floor_id"`
	RoomID       string          `gorm:"type:uuid;not null"                             json:"room_id"`
	Status       string          `gorm:"type:varchar(20);not null"                      json:"status"`
	Source       string          `gorm:"type:varchar(20);not null"                      json:"source"`
	Cost         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"          json:"cost"`
	AcquiredDate time.Time       `gorm:"not null"                                       json:"acquired_date"`
	SerialNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"          json:"serial_number"`
	IsActive     bool            `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	Floor    *Floor    `gorm:"foreignKey:FloorID;references:FloorID"       json:"floor,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID;references:RoomID"         json:"room,omitempty"`
}

// TableName 指定表名
func (Item) TableName() string { return "items" }
