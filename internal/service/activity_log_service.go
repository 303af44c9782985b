package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/config"
	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/internal/repository"
)

// ── 操作日志业务错误 ──

var (
	ErrActivityLogsEmpty = pkgerrors.New(pkgerrors.KindNotFound, "暂无操作日志")
	ErrAuditWriteFailed  = pkgerrors.New(pkgerrors.KindAuditWriteFailure, "审计日志写入失败")
	ErrInvalidEntityType = pkgerrors.New(pkgerrors.KindInvalidArgument, "不支持的实体类型")
)

// AuditEntry 一条待写入的操作日志
type AuditEntry struct {
	Action      string
	EntityType  string
	EntityID    string
	EntityName  string
	Actor       Actor
	Changes     model.ChangeSet
	Description string
}

// ActivityLogService 操作日志业务接口
//
// 写入只追加，不提供修改与删除；查询统一按 created_at 倒序。
type ActivityLogService interface {
	Record(ctx context.Context, entry *AuditEntry) error
	RecordBatch(ctx context.Context, entries []AuditEntry) error

	List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, int, error)
	ListRecent(ctx context.Context, n int) ([]dto.ActivityLogResponse, error)
	ListForEntity(ctx context.Context, entityType, entityID string) ([]dto.ActivityLogResponse, error)
	PageSize() int
}

type activityLogService struct {
	repo   *repository.Repository
	cfg    *config.AuditConfig
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewActivityLogService 创建 ActivityLogService 实例
func NewActivityLogService(
	repo *repository.Repository,
	cfg *config.AuditConfig,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) ActivityLogService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &activityLogService{repo: repo, cfg: cfg, loc: loc, now: now, logger: logger}
}

func (s *activityLogService) PageSize() int { return s.cfg.PageSize }

// ────────────────────── Record ──────────────────────

func (s *activityLogService) Record(ctx context.Context, entry *AuditEntry) error {
	log := s.toModel(entry, s.now())
	if err := s.repo.ActivityLog.Create(ctx, log); err != nil {
		return fmt.Errorf("%w: %v", ErrAuditWriteFailed, err)
	}
	return nil
}

// RecordBatch 一次多行插入，所有条目共享同一时间戳
func (s *activityLogService) RecordBatch(ctx context.Context, entries []AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	now := s.now()
	logs := make([]*model.ActivityLog, len(entries))
	for i := range entries {
		logs[i] = s.toModel(&entries[i], now)
	}
	if err := s.repo.ActivityLog.BatchCreate(ctx, logs); err != nil {
		return fmt.Errorf("%w: %v", ErrAuditWriteFailed, err)
	}
	return nil
}

// ────────────────────── List ──────────────────────

// List 分页查询，返回 (条目, 总数, 实际页码)
func (s *activityLogService) List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, int, error) {
	page := lenientPage(req.Page)
	from, to, err := dayRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return nil, 0, page, err
	}

	size := s.cfg.PageSize
	logs, total, err := s.repo.ActivityLog.List(ctx,
		repository.ActivityLogFilter{StartAt: from, EndAt: to},
		(page-1)*size, size)
	if err != nil {
		s.logger.Error("查询操作日志失败", zap.Error(err))
		return nil, 0, page, err
	}

	if total == 0 && s.cfg.EmptyAsNotFound {
		return nil, total, page, ErrActivityLogsEmpty
	}

	return s.toResponses(logs), total, page, nil
}

// ────────────────────── ListRecent ──────────────────────

func (s *activityLogService) ListRecent(ctx context.Context, n int) ([]dto.ActivityLogResponse, error) {
	if n <= 0 {
		n = s.cfg.RecentLimit
	}
	logs, err := s.repo.ActivityLog.ListRecent(ctx, n)
	if err != nil {
		s.logger.Error("查询最近操作日志失败", zap.Error(err))
		return nil, err
	}
	return s.toResponses(logs), nil
}

// ────────────────────── ListForEntity ──────────────────────

func (s *activityLogService) ListForEntity(ctx context.Context, entityType, entityID string) ([]dto.ActivityLogResponse, error) {
	switch entityType {
	case model.EntityItem, model.EntityCategory, model.EntityRoom, model.EntitySubCategory:
	default:
		return nil, ErrInvalidEntityType
	}

	logs, err := s.repo.ActivityLog.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		s.logger.Error("查询实体操作日志失败",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err))
		return nil, err
	}
	return s.toResponses(logs), nil
}

// ── 辅助函数 ──

func (s *activityLogService) toModel(e *AuditEntry, at time.Time) *model.ActivityLog {
	changes := e.Changes
	if changes == nil {
		changes = model.ChangeSet{}
	}
	return &model.ActivityLog{
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		EntityName:  e.EntityName,
		ActorID:     e.Actor.ID,
		ActorName:   e.Actor.Name,
		ActorRole:   e.Actor.Role,
		Changes:     datatypes.NewJSONType(changes),
		Description: e.Description,
		CreatedAt:   at,
	}
}

func (s *activityLogService) toResponses(logs []model.ActivityLog) []dto.ActivityLogResponse {
	result := make([]dto.ActivityLogResponse, len(logs))
	for i := range logs {
		result[i] = toActivityLogResponse(&logs[i], s.loc)
	}
	return result
}

func toActivityLogResponse(l *model.ActivityLog, loc *time.Location) dto.ActivityLogResponse {
	return dto.ActivityLogResponse{
		ID:          l.LogID,
		Action:      l.Action,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		EntityName:  l.EntityName,
		Actor:       dto.ActorResponse{ID: l.ActorID, Name: l.ActorName, Role: l.ActorRole},
		Changes:     l.Changes.Data(),
		Description: l.Description,
		CreatedAt:   l.CreatedAt.In(loc).Format(timeLayout),
	}
}
