package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Floor       FloorRepository
	Room        RoomRepository
	Category    CategoryRepository
	SubCategory SubCategoryRepository
	Item        ItemRepository
	ActivityLog ActivityLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Floor:       NewFloorRepo(db),
		Room:        NewRoomRepo(db),
		Category:    NewCategoryRepo(db),
		SubCategory: NewSubCategoryRepo(db),
		Item:        NewItemRepo(db),
		ActivityLog: NewActivityLogRepo(db),
	}
}

// BeginTx 开启事务
// 测试中以结构体字面量构造的聚合没有 db，此时返回 nil 事务，调用方需判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Ping 数据库健康检查
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
