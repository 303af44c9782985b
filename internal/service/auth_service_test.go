package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"inventra/backend/config"
	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/pkg/jwt"
)

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-key-for-unit-tests",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  7 * 24 * time.Hour,
			BcryptCost:       bcrypt.MinCost,
			BlacklistEnabled: true,
		},
	}
}

func setupTestAuthService() (AuthService, *mockRepos, *jwt.Manager, *mockBlacklist) {
	cfg := testConfig()
	repo, m := newMockRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	bl := newMockBlacklist()
	return NewAuthService(cfg, repo, jwtMgr, bl, zap.NewNop()), m, jwtMgr, bl
}

// seedUser 写入一个指定状态的用户，密码为 password123
func seedUser(t *testing.T, m *mockRepos, id, username, role, status string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	u := &model.User{
		UserID:       id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	m.user.users[id] = u
	return u
}

// ── Register 测试 ──

func TestRegister_Success(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "bob",
		Email:    "Bob@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if resp.Status != model.UserStatusPending {
		t.Errorf("新注册用户应为 pending，实际=%s", resp.Status)
	}
	if resp.Email != "bob@example.com" {
		t.Errorf("邮箱应转小写，实际=%s", resp.Email)
	}

	u := m.user.users[resp.ID]
	if u.Role != config.RoleUser {
		t.Errorf("新注册用户角色应为 user，实际=%s", u.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) != nil {
		t.Error("密码应以 bcrypt 存储")
	}
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	tests := []struct {
		name  string
		racer *model.User
		want  error
	}{
		{"用户名冲突", &model.User{UserID: "u-race", Username: "bob", Email: "race@example.com"}, ErrUsernameExists},
		{"邮箱冲突", &model.User{UserID: "u-race", Username: "racer", Email: "bob@example.com"}, ErrEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m, _, _ := setupTestAuthService()
			m.user.racer = tt.racer

			_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "password123"})
			if !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "bob", config.RoleUser, model.UserStatusApproved)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Email: "other@example.com", Password: "password123"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "bob", config.RoleUser, model.UserStatusApproved)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "bobby", Email: "BOB@example.com", Password: "password123"})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestLogin_Success(t *testing.T) {
	svc, m, jwtMgr, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "alice", config.RoleAdmin, model.UserStatusApproved)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.Username != "alice" || claims.Role != config.RoleAdmin || claims.TokenType != jwt.TokenTypeAccess {
		t.Errorf("Claims 错误: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "alice", config.RoleAdmin, model.UserStatusApproved)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_PendingAndRejected(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "pending", config.RoleUser, model.UserStatusPending)
	seedUser(t, m, "u-2", "rejected", config.RoleUser, model.UserStatusRejected)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "pending", Password: "password123"}); !errors.Is(err, ErrUserPending) {
		t.Errorf("期望 ErrUserPending，实际: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "rejected", Password: "password123"}); !errors.Is(err, ErrUserRejected) {
		t.Errorf("期望 ErrUserRejected，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestRefresh_Success(t *testing.T) {
	svc, m, jwtMgr, bl := setupTestAuthService()
	seedUser(t, m, "u-1", "alice", config.RoleAdmin, model.UserStatusApproved)

	refresh, _ := jwtMgr.GenerateRefreshToken("u-1", "alice", config.RoleAdmin)
	resp, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == refresh {
		t.Error("应签发新的 Token 对")
	}
	if len(bl.revoked) != 1 {
		t.Errorf("旧 Refresh Token 应被加入黑名单，实际 %d", len(bl.revoked))
	}

	// 旧 Token 不能再次使用
	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh}); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("重复使用期望 ErrInvalidRefreshToken，实际: %v", err)
	}
}

func TestRefresh_AccessTokenNotAllowed(t *testing.T) {
	svc, m, jwtMgr, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "alice", config.RoleAdmin, model.UserStatusApproved)

	access, _ := jwtMgr.GenerateAccessToken("u-1", "alice", config.RoleAdmin)
	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: access})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际: %v", err)
	}
}

func TestRefresh_DeletedUser(t *testing.T) {
	svc, _, jwtMgr, _ := setupTestAuthService()

	refresh, _ := jwtMgr.GenerateRefreshToken("ghost", "ghost", config.RoleUser)
	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestLogout_BlacklistsToken(t *testing.T) {
	svc, _, _, bl := setupTestAuthService()

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	if ttl, ok := bl.revoked["jti-1"]; !ok || ttl <= 0 || ttl > 10*time.Minute {
		t.Errorf("黑名单 TTL 应为剩余有效期，实际=%v", ttl)
	}
}

// ── ChangePassword / Me ──

func TestChangePassword_Success(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "alice", config.RoleAdmin, model.UserStatusApproved)

	err := svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpass456"})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.user.users["u-1"].PasswordHash), []byte("newpass456")) != nil {
		t.Error("新密码应已生效")
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	seedUser(t, m, "u-1", "alice", config.RoleAdmin, model.UserStatusApproved)

	err := svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{OldPassword: "nope", NewPassword: "newpass456"})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

func TestChangePassword_SamePassword(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	err := svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "password123"})
	if !errors.Is(err, ErrSamePassword) {
		t.Errorf("期望 ErrSamePassword，实际: %v", err)
	}
}

func TestMe_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Me(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
