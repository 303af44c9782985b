package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/config"
	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserSelfDelete     = pkgerrors.New(pkgerrors.KindInvalidArgument, "不能删除自己")
	ErrUserAlreadyDecided = pkgerrors.New(pkgerrors.KindInvalidState, "该注册申请已处理")
)

// ResetPasswordResult 重置密码结果
type ResetPasswordResult struct {
	TempPassword string `json:"temp_password"`
}

// UserService 用户管理业务接口（管理员）
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Decide(ctx context.Context, id string, req *dto.UserDecisionRequest, callerID string) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	ResetPassword(ctx context.Context, id string, callerID string) (*ResetPasswordResult, error)
	SeedAdmin(ctx context.Context, cfg *config.AdminConfig) error
}

type userService struct {
	repo       *repository.Repository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, bcryptCost int, logger *zap.Logger) UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// ────────────────────── List ──────────────────────

// UserPageSize 用户列表默认每页数量
const UserPageSize = 20

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, req.Keyword, req.Status,
		req.GetOffset(UserPageSize), req.GetPageSize(UserPageSize))
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, len(users))
	for i := range users {
		result[i] = *toUserResponse(&users[i])
	}
	return result, total, nil
}

// ────────────────────── Decide ──────────────────────

// Decide 审核注册申请，只能处理 pending 状态的用户
func (s *userService) Decide(ctx context.Context, id string, req *dto.UserDecisionRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != model.UserStatusPending {
		return nil, ErrUserAlreadyDecided
	}

	now := time.Now()
	if req.Decision == "approve" {
		user.Status = model.UserStatusApproved
	} else {
		user.Status = model.UserStatusRejected
	}
	user.DecidedBy = &callerID
	user.DecidedAt = &now
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("审核用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("注册申请已处理",
		zap.String("user_id", id),
		zap.String("status", user.Status),
		zap.String("decided_by", callerID),
	)
	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrUserSelfDelete
	}

	// 检查用户存在
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *userService) ResetPassword(ctx context.Context, id string, callerID string) (*ResetPasswordResult, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	// 生成 10 位随机密码（保证包含字母和数字）
	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), s.bcryptCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &ResetPasswordResult{TempPassword: tempPassword}, nil
}

// ────────────────────── SeedAdmin ──────────────────────

// SeedAdmin 启动时确保初始管理员存在；未配置密码时跳过
func (s *userService) SeedAdmin(ctx context.Context, cfg *config.AdminConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		s.logger.Warn("未配置初始管理员密码，跳过管理员初始化")
		return nil
	}

	if _, err := s.repo.User.GetByUsername(ctx, cfg.Username); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	email := cfg.Email
	if email == "" {
		email = cfg.Username + "@localhost"
	}

	admin := &model.User{
		Username:     cfg.Username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         config.RoleAdmin,
		Status:       model.UserStatusApproved,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("初始管理员已创建", zap.String("username", cfg.Username))
	return nil
}

// ── 内部辅助方法 ──

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// generateTempPassword 生成指定长度的临时密码（保证包含字母和数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 8 {
		length = 8
	}

	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	result := make([]byte, length)
	var err error
	if result[0], err = pick(letters); err != nil {
		return "", err
	}
	if result[1], err = pick(digits); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if result[i], err = pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
