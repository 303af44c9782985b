package model

import "time"

// 用户审核状态
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

// User 用户表，对应 users
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string     `gorm:"type:varchar(50);not null"                      json:"username"`
	Email        string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	DecidedBy    *string    `gorm:"type:uuid"                                      json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
