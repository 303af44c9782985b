package service

import (
	"time"

	"go.uber.org/zap"

	"inventra/backend/config"
	"inventra/backend/internal/repository"
	"inventra/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Location    LocationService
	Category    CategoryService
	Item        ItemService
	ActivityLog ActivityLogService
	Export      ExportService
}

// NewService 创建 Service 聚合
// 日期过滤与序列号年份统一使用 server.timezone
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) (*Service, error) {
	loc, err := cfg.Server.Location()
	if err != nil {
		return nil, err
	}
	now := func() time.Time { return time.Now().In(loc) }

	logs := NewActivityLogService(repo, &cfg.Audit, loc, now, logger)
	allocator := NewSerialAllocator(repo.Category, now, logger)

	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:        NewUserService(repo, cfg.Auth.BcryptCost, logger),
		Location:    NewLocationService(repo, logs, logger),
		Category:    NewCategoryService(repo, logs, cfg.Inventory.PageSize, logger),
		Item:        NewItemService(repo, allocator, logs, &cfg.Inventory, loc, now, logger),
		ActivityLog: logs,
		Export:      NewExportService(repo, loc, now, logger),
	}, nil
}
