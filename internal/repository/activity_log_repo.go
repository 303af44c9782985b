package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"inventra/backend/internal/model"
)

// ActivityLogFilter 操作日志查询条件
// EndAt 为闭区间上界，由调用方换算成当日最后一毫秒
type ActivityLogFilter struct {
	StartAt *time.Time
	EndAt   *time.Time
}

// ActivityLogRepository 操作日志数据访问接口
// 只追加：不提供更新与删除
type ActivityLogRepository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	BatchCreate(ctx context.Context, logs []*model.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) BatchCreate(ctx context.Context, logs []*model.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}

// newest 统一排序：created_at 相同时按 log_id 保证翻页稳定
func newest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("log_id DESC")
}

func (r *activityLogRepo) List(ctx context.Context, filter ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if filter.StartAt != nil {
		db = db.Where("created_at >= ?", *filter.StartAt)
	}
	if filter.EndAt != nil {
		db = db.Where("created_at <= ?", *filter.EndAt)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := newest(db).Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *activityLogRepo) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := newest(r.db.WithContext(ctx)).Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *activityLogRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := newest(r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)).
		Find(&logs).Error
	return logs, err
}
