package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"faculty-records/backend/internal/dto"
	"faculty-records/backend/internal/service"
	"faculty-records/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.LoginResponse
	loginErr         error
	logoutErr        error
	registerResult   *dto.RegisterResponse
	registerErr      error
	changePassErr    error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest, _ string) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock FacultyService ──

type mockFacultyService struct {
	createResult *dto.FacultyRecordResponse
	createErrors map[string]string
	createErr    error
	getResult    *dto.FacultyRecordResponse
	getErr       error
	listResult   []dto.FacultyRecordResponse
	listTotal    int64
	listErr      error
	deleteErr    error
}

func (m *mockFacultyService) Create(_ context.Context, _ *dto.FacultyRecordRequest, _ string) (*dto.FacultyRecordResponse, map[string]string, error) {
	return m.createResult, m.createErrors, m.createErr
}
func (m *mockFacultyService) GetByID(_ context.Context, _ string) (*dto.FacultyRecordResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockFacultyService) List(_ context.Context, _ *dto.FacultyListRequest) ([]dto.FacultyRecordResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockFacultyService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// injectAuth 模拟会话中间件注入的身份字段
func injectAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("session_token", "test-token")
		c.Set("user_id", "test-user-id")
		c.Set("username", "alice")
		c.Set("role", role)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			SessionToken: "test-session-token",
			ExpiresIn:    1800,
			DemoCode:     "DEMO2026AB12",
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "Passw0rd!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_RateLimited(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrRateLimited})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "Passw0rd!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestAuthHandler_Login_StorageUnavailable(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrLoginUnavailable})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "alice",
		Password: "Passw0rd!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrUsernameExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Username:        "alice",
		Email:           "alice@test.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
		FullName:        "Alice Zhang",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// FacultyHandler Tests
// ═══════════════════════════════════════════════════════════

func TestFacultyHandler_Create_Success(t *testing.T) {
	mock := &mockFacultyService{
		createResult: &dto.FacultyRecordResponse{ID: "rec-1", EmployeeID: "EMP001"},
	}
	h := NewFacultyHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/faculty", jsonBody(dto.FacultyRecordRequest{EmployeeID: "EMP001"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/faculty", injectAuth("user"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

// 字段错误走 422，并原样携带全部字段错误
func TestFacultyHandler_Create_FieldErrors(t *testing.T) {
	mock := &mockFacultyService{
		createErrors: map[string]string{
			"employee_id": "工号格式应为 EMP001、EMP002 这样的 EMP+三位数字",
			"email":       "请输入有效的邮箱地址",
		},
	}
	h := NewFacultyHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/faculty", jsonBody(dto.FacultyRecordRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/faculty", injectAuth("user"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	if len(resp.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %v", resp.Errors)
	}
	if _, ok := resp.Errors["employee_id"]; !ok {
		t.Errorf("expected employee_id error, got %v", resp.Errors)
	}
}

func TestFacultyHandler_Create_Conflict(t *testing.T) {
	h := NewFacultyHandler(&mockFacultyService{createErr: service.ErrRecordConflict})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/faculty", jsonBody(dto.FacultyRecordRequest{EmployeeID: "EMP001"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/faculty", injectAuth("user"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestFacultyHandler_GetByID_NotFound(t *testing.T) {
	h := NewFacultyHandler(&mockFacultyService{getErr: service.ErrRecordNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/faculty/missing", nil)

	r := gin.New()
	r.GET("/faculty/:id", injectAuth("user"), h.GetByID)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestFacultyHandler_List(t *testing.T) {
	mock := &mockFacultyService{
		listResult: []dto.FacultyRecordResponse{{ID: "rec-1", EmployeeID: "EMP001"}},
		listTotal:  1,
	}
	h := NewFacultyHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/faculty?page=1&page_size=20", nil)

	r := gin.New()
	r.GET("/faculty", injectAuth("user"), h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}
