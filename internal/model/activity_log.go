package model

import (
	"time"

	"gorm.io/datatypes"
)

// 操作类型
const (
	ActionAdded         = "added"
	ActionEditedDetails = "edited details"
	ActionRemoved       = "removed"
	ActionMoved         = "moved"
	ActionChangedStatus = "changed status"
)

// 被审计实体类型
const (
	EntityItem        = "Item"
	EntityCategory    = "Category"
	EntityRoom        = "Room"
	EntitySubCategory = "SubCategory"
)

// FieldChange 单个字段的变更前后值，新建时 From 为 null
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ChangeSet 字段名 → 变更
type ChangeSet map[string]FieldChange

// ActivityLog 操作日志表，对应 activity_logs
// 只追加：仓储层不提供更新/删除，数据库触发器拒绝 UPDATE/DELETE
type ActivityLog struct {
	LogID       string                        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	Action      string                        `gorm:"type:varchar(30);not null"                      json:"action"`
	EntityType  string                        `gorm:"type:varchar(30);not null"                      json:"entity_type"`
	EntityID    string                        `gorm:"type:uuid;not null"                             json:"entity_id"`
	EntityName  string                        `gorm:"type:varchar(200);not null;default:''"          json:"entity_name"`
	ActorID     string                        `gorm:"type:uuid;not null"                             json:"actor_id"`
	ActorName   string                        `gorm:"type:varchar(50);not null;default:''"           json:"actor_name"`
	ActorRole   string                        `gorm:"type:varchar(20);not null;default:''"           json:"actor_role"`
	Changes     datatypes.JSONType[ChangeSet] `gorm:"type:jsonb;not null"                            json:"changes"`
	Description string                        `gorm:"type:text;not null;default:''"                  json:"description"`
	CreatedAt   time.Time                     `gorm:"not null"                                       json:"created_at"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }
