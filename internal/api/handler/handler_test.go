package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/service"
	pkgerrors "inventra/backend/pkg/errors"
	"inventra/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.RegisterResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.UserResponse
	meErr          error
	changePassErr  error

	loggedOutJTI string
	loggedOutExp time.Time
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, exp time.Time) error {
	m.loggedOutJTI, m.loggedOutExp = jti, exp
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock UserService ──

type mockUserService struct {
	service.UserService

	listReq     *dto.UserListRequest
	listResult  []dto.UserResponse
	listTotal   int64
	decideErr   error
	decideCall  string
	resetResult *service.ResetPasswordResult
}

func (m *mockUserService) List(_ context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	m.listReq = req
	return m.listResult, m.listTotal, nil
}
func (m *mockUserService) Decide(_ context.Context, id string, _ *dto.UserDecisionRequest, callerID string) (*dto.UserResponse, error) {
	m.decideCall = id + "/" + callerID
	if m.decideErr != nil {
		return nil, m.decideErr
	}
	return &dto.UserResponse{ID: id, Status: "approved"}, nil
}
func (m *mockUserService) ResetPassword(_ context.Context, _, _ string) (*service.ResetPasswordResult, error) {
	return m.resetResult, nil
}

// ── Mock ItemService ──

type mockItemService struct {
	service.ItemService

	createActor  service.Actor
	createResult []dto.ItemResponse
	createErr    error
	statusErr    error
	listTotal    int64
}

func (m *mockItemService) Create(_ context.Context, _ *dto.CreateItemRequest, actor service.Actor) ([]dto.ItemResponse, error) {
	m.createActor = actor
	return m.createResult, m.createErr
}
func (m *mockItemService) UpdateStatus(_ context.Context, id string, req *dto.UpdateItemStatusRequest, _ service.Actor) (*dto.ItemResponse, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return &dto.ItemResponse{ID: id, Status: req.Status, Version: req.Version + 1}, nil
}
func (m *mockItemService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.ItemResponse, int64, error) {
	return []dto.ItemResponse{}, m.listTotal, nil
}
func (m *mockItemService) PageSize() int { return 10 }

// ── Mock ActivityLogService ──

type mockActivityLogService struct {
	service.ActivityLogService

	listResult []dto.ActivityLogResponse
	listTotal  int64
	listPage   int
	listErr    error
	recentN    int
	entityType string
	entityID   string
	entityErr  error
}

func (m *mockActivityLogService) List(_ context.Context, _ *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, int, error) {
	return m.listResult, m.listTotal, m.listPage, m.listErr
}
func (m *mockActivityLogService) ListRecent(_ context.Context, n int) ([]dto.ActivityLogResponse, error) {
	m.recentN = n
	return []dto.ActivityLogResponse{}, nil
}
func (m *mockActivityLogService) ListForEntity(_ context.Context, entityType, entityID string) ([]dto.ActivityLogResponse, error) {
	m.entityType, m.entityID = entityType, entityID
	return []dto.ActivityLogResponse{}, m.entityErr
}
func (m *mockActivityLogService) PageSize() int { return 10 }

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportActivityLogs(_ context.Context, _ *dto.ActivityLogExportRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportItems(_ context.Context, _ *dto.ItemFilterRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock Pinger ──

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

var testExp = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

const (
	testItemID  = "7f9c2ba4-e88f-4f2b-9b7a-1c2d3e4f5a6b"
	otherUserID = "0b8e5c1d-3a2f-4e6d-8c9b-7a6f5e4d3c2b"
)

// withAuth 模拟 JWTAuth 中间件注入的上下文
func withAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxUserID, "test-user-id")
		c.Set(CtxUsername, "alice")
		c.Set(CtxRole, role)
		c.Set(CtxTokenJTI, "test-jti")
		c.Set(CtxTokenExp, testExp)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// parsePage 解析分页响应的元数据
func parsePage(t *testing.T, w *httptest.ResponseRecorder) response.Pagination {
	t.Helper()
	var resp struct {
		Data struct {
			Pagination response.Pagination `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid page body: %v", err)
	}
	return resp.Data.Pagination
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "alice", Password: "password123"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", strings.NewReader("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeInvalidArgument {
		t.Errorf("expected code %d, got %d", response.CodeInvalidArgument, resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "alice", Password: "wrong"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeUnauthorized {
		t.Errorf("expected code %d, got %d", response.CodeUnauthorized, resp.Code)
	}
}

func TestAuthHandler_Login_PendingUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrUserPending})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "bob", Password: "password123"}))

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrUsernameExists})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	w := serve(r, "POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeConflict {
		t.Errorf("expected code %d, got %d", response.CodeConflict, resp.Code)
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	w := serve(r, "POST", "/auth/register", jsonBody(map[string]string{
		"username": "alice", "email": "not-an-email", "password": "password123",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	w := serve(r, "POST", "/auth/refresh", jsonBody(map[string]string{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_PassesTokenMeta(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/logout", withAuth("user"), h.Logout)
	w := serve(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.loggedOutJTI != "test-jti" || !mock.loggedOutExp.Equal(testExp) {
		t.Errorf("unexpected logout args: %s %v", mock.loggedOutJTI, mock.loggedOutExp)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.GET("/auth/me", h.Me)
	w := serve(r, "GET", "/auth/me", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	r := gin.New()
	r.PUT("/auth/password", withAuth("user"), h.ChangePassword)
	w := serve(r, "PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "wrong-password", NewPassword: "new-password-1",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_ListPending_ForcesStatus(t *testing.T) {
	mock := &mockUserService{listResult: []dto.UserResponse{{ID: "u-2"}}, listTotal: 1}
	h := NewUserHandler(mock)

	r := gin.New()
	r.GET("/users/pending", withAuth("admin"), h.ListPending)
	w := serve(r, "GET", "/users/pending?status=approved", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq.Status != "pending" {
		t.Errorf("expected status pending, got %q", mock.listReq.Status)
	}
	if p := parsePage(t, w); p.PageSize != service.UserPageSize || p.Total != 1 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

func TestUserHandler_Decide_AlreadyDecided(t *testing.T) {
	mock := &mockUserService{decideErr: service.ErrUserAlreadyDecided}
	h := NewUserHandler(mock)

	r := gin.New()
	r.PUT("/users/:id/decision", withAuth("admin"), h.Decide)
	w := serve(r, "PUT", "/users/"+otherUserID+"/decision", jsonBody(dto.UserDecisionRequest{Decision: "approve"}))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if mock.decideCall != otherUserID+"/test-user-id" {
		t.Errorf("unexpected call: %s", mock.decideCall)
	}
}

func TestUserHandler_Decide_InvalidDecision(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	r := gin.New()
	r.PUT("/users/:id/decision", withAuth("admin"), h.Decide)
	w := serve(r, "PUT", "/users/"+otherUserID+"/decision", jsonBody(map[string]string{"decision": "maybe"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserHandler_ResetPassword(t *testing.T) {
	h := NewUserHandler(&mockUserService{resetResult: &service.ResetPasswordResult{TempPassword: "Tmp12345abcd"}})

	r := gin.New()
	r.POST("/users/:id/reset-password", withAuth("admin"), h.ResetPassword)
	w := serve(r, "POST", "/users/"+otherUserID+"/reset-password", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Tmp12345abcd") {
		t.Errorf("temp password missing from body: %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ItemHandler Tests
// ═══════════════════════════════════════════════════════════

func validCreateItemBody() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Microscope",
		"category_id":   "6f1d2c1e-1f7b-4b8e-9a57-1c2d3e4f5a6b",
		"floor_id":      "7a1d2c1e-1f7b-4b8e-9a57-1c2d3e4f5a6b",
		"room_id":       "8b1d2c1e-1f7b-4b8e-9a57-1c2d3e4f5a6b",
		"status":        "Working",
		"source":        "Purchase",
		"cost":          "1250.50",
		"acquired_date": "2024-02-10",
		"count":         3,
	}
}

func TestItemHandler_Create_PassesActor(t *testing.T) {
	mock := &mockItemService{createResult: []dto.ItemResponse{
		{SerialNumber: "2024LAB007"}, {SerialNumber: "2024LAB008"}, {SerialNumber: "2024LAB009"},
	}}
	h := NewItemHandler(mock)

	r := gin.New()
	r.POST("/items", withAuth("admin"), h.CreateItems)
	w := serve(r, "POST", "/items", jsonBody(validCreateItemBody()))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	want := service.Actor{ID: "test-user-id", Name: "alice", Role: "admin"}
	if mock.createActor != want {
		t.Errorf("expected actor %+v, got %+v", want, mock.createActor)
	}
	if !strings.Contains(w.Body.String(), "2024LAB009") {
		t.Errorf("serials missing from body: %s", w.Body.String())
	}
}

func TestItemHandler_Create_InvalidStatus(t *testing.T) {
	h := NewItemHandler(&mockItemService{})
	body := validCreateItemBody()
	body["status"] = "Lost"

	r := gin.New()
	r.POST("/items", withAuth("admin"), h.CreateItems)
	w := serve(r, "POST", "/items", jsonBody(body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestItemHandler_Create_CategoryWithoutAbbreviation(t *testing.T) {
	h := NewItemHandler(&mockItemService{createErr: service.ErrCategoryNoAbbreviation})

	r := gin.New()
	r.POST("/items", withAuth("admin"), h.CreateItems)
	w := serve(r, "POST", "/items", jsonBody(validCreateItemBody()))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeInvalidState {
		t.Errorf("expected code %d, got %d", response.CodeInvalidState, resp.Code)
	}
}

func TestItemHandler_UpdateStatus_StaleVersion(t *testing.T) {
	h := NewItemHandler(&mockItemService{statusErr: pkgerrors.ErrOptimisticLock})

	r := gin.New()
	r.PATCH("/items/:id/status", withAuth("user"), h.UpdateStatus)
	w := serve(r, "PATCH", "/items/"+testItemID+"/status", jsonBody(dto.UpdateItemStatusRequest{Status: "Repairable", Version: 1}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestItemHandler_UpdateStatus_Success(t *testing.T) {
	h := NewItemHandler(&mockItemService{})

	r := gin.New()
	r.PATCH("/items/:id/status", withAuth("user"), h.UpdateStatus)
	w := serve(r, "PATCH", "/items/"+testItemID+"/status", jsonBody(dto.UpdateItemStatusRequest{Status: "Not working", Version: 2}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"version":3`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestItemHandler_List_Pagination(t *testing.T) {
	h := NewItemHandler(&mockItemService{listTotal: 25})

	r := gin.New()
	r.GET("/items", withAuth("user"), h.ListItems)
	w := serve(r, "GET", "/items?page=2", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	p := parsePage(t, w)
	if p.Page != 2 || p.PageSize != 10 || p.TotalPages != 3 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

// ═══════════════════════════════════════════════════════════
// ActivityLogHandler Tests
// ═══════════════════════════════════════════════════════════

func TestActivityLogHandler_List_UsesResolvedPage(t *testing.T) {
	// 非法页码由 Service 解析为第 1 页
	mock := &mockActivityLogService{listResult: []dto.ActivityLogResponse{{ID: "log-0001"}}, listTotal: 11, listPage: 1}
	h := NewActivityLogHandler(mock)

	r := gin.New()
	r.GET("/activity-logs", withAuth("admin"), h.ListLogs)
	w := serve(r, "GET", "/activity-logs?page=abc", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	p := parsePage(t, w)
	if p.Page != 1 || p.PageSize != 10 || p.TotalPages != 2 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

func TestActivityLogHandler_List_InvalidDate(t *testing.T) {
	h := NewActivityLogHandler(&mockActivityLogService{listErr: service.ErrInvalidDate})

	r := gin.New()
	r.GET("/activity-logs", withAuth("admin"), h.ListLogs)
	w := serve(r, "GET", "/activity-logs?start_date=2024-13-01", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestActivityLogHandler_List_EmptyAsNotFound(t *testing.T) {
	h := NewActivityLogHandler(&mockActivityLogService{listErr: service.ErrActivityLogsEmpty})

	r := gin.New()
	r.GET("/activity-logs", withAuth("admin"), h.ListLogs)
	w := serve(r, "GET", "/activity-logs", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestActivityLogHandler_ListRecent_Limit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"缺省", "", 0},
		{"非法值", "?limit=x", 0},
		{"正常值", "?limit=7", 7},
		{"超出上限", "?limit=500", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockActivityLogService{}
			h := NewActivityLogHandler(mock)

			r := gin.New()
			r.GET("/activity-logs/recent", withAuth("user"), h.ListRecent)
			w := serve(r, "GET", "/activity-logs/recent"+tt.query, nil)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if mock.recentN != tt.want {
				t.Errorf("expected n=%d, got %d", tt.want, mock.recentN)
			}
		})
	}
}

func TestActivityLogHandler_ListForEntity(t *testing.T) {
	mock := &mockActivityLogService{}
	h := NewActivityLogHandler(mock)

	r := gin.New()
	r.GET("/activity-logs/entity/:entity_type/:entity_id", withAuth("user"), h.ListForEntity)
	w := serve(r, "GET", "/activity-logs/entity/Item/"+testItemID, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.entityType != "Item" || mock.entityID != testItemID {
		t.Errorf("unexpected args: %s %s", mock.entityType, mock.entityID)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ActivityLogs_Success(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx-bytes"), filename: "操作日志_全部.xlsx"}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/activity-logs/export", withAuth("admin"), h.ExportActivityLogs)
	w := serve(r, "GET", "/activity-logs/export", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") {
		t.Errorf("unexpected disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_Items_NoItems(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoItems})

	r := gin.New()
	r.GET("/items/export", withAuth("user"), h.ExportItems)
	w := serve(r, "GET", "/items/export?status=Working", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportHandler_GenerateFailure(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportGenerateFail})

	r := gin.New()
	r.GET("/activity-logs/export", withAuth("admin"), h.ExportActivityLogs)
	w := serve(r, "GET", "/activity-logs/export", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HealthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHealthHandler(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name   string
		checks map[string]Pinger
		want   int
	}{
		{"全部正常", map[string]Pinger{"database": up, "redis": up}, http.StatusOK},
		{"Redis 不可用", map[string]Pinger{"database": up, "redis": down}, http.StatusServiceUnavailable},
		{"无依赖", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checks)

			r := gin.New()
			r.GET("/health", h.Health)
			w := serve(r, "GET", "/health", nil)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// Path ID Validation
// ═══════════════════════════════════════════════════════════

func TestHandlers_MalformedPathID(t *testing.T) {
	// 服务均为 nil：格式校验失败时不应触达服务层
	items := NewItemHandler(nil)
	logs := NewActivityLogHandler(nil)
	users := NewUserHandler(nil)
	categories := NewCategoryHandler(nil)
	locations := NewLocationHandler(nil)

	tests := []struct {
		name    string
		method  string
		route   string
		path    string
		body    io.Reader
		handler gin.HandlerFunc
	}{
		{"资产详情", "GET", "/items/:id", "/items/not-a-uuid", nil, items.GetItem},
		{"资产状态", "PATCH", "/items/:id/status", "/items/abc/status",
			jsonBody(dto.UpdateItemStatusRequest{Status: "Working", Version: 1}), items.UpdateStatus},
		{"资产日志", "GET", "/items/:id/logs", "/items/123/logs", nil, items.ItemLogs},
		{"实体日志", "GET", "/activity-logs/entity/:entity_type/:entity_id", "/activity-logs/entity/Item/not-a-uuid", nil, logs.ListForEntity},
		{"审核用户", "PUT", "/users/:id/decision", "/users/u-2/decision",
			jsonBody(dto.UserDecisionRequest{Decision: "approve"}), users.Decide},
		{"分类详情", "GET", "/categories/:id", "/categories/xyz", nil, categories.GetCategory},
		{"房间详情", "GET", "/rooms/:id", "/rooms/room-1", nil, locations.GetRoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Handle(tt.method, tt.route, withAuth("admin"), tt.handler)
			w := serve(r, tt.method, tt.path, tt.body)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != response.CodeInvalidState || resp.Message != pkgerrors.ErrInvalidID.Message {
				t.Errorf("unexpected body: %+v", resp)
			}
		})
	}
}
