package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/asvabprep/backend/internal/domain"
	"github.com/asvabprep/backend/internal/service/auth"
	"github.com/asvabprep/backend/pkg/ctxutil"
)

type authServiceMock struct {
	RegisterFunc      func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc         func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	RefreshFunc       func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc        func(ctx context.Context) error
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, string, error)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return m.RefreshFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

func (m *authServiceMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	return m.ValidateTokenFunc(ctx, token)
}

func testAuthResult() *auth.AuthResult {
	return &auth.AuthResult{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: &domain.User{
			ID:    uuid.New(),
			Email: "recruit@example.com",
			Role:  domain.UserRoleUser,
		},
	}
}

func TestAuthRegister(t *testing.T) {
	mock := &authServiceMock{
		RegisterFunc: func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			if input.Email != "recruit@example.com" {
				t.Errorf("email = %q", input.Email)
			}
			return testAuthResult(), nil
		},
	}
	h := NewAuthHandler(mock, discardLogger())

	body := `{"email":"recruit@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp authResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "access-token" {
		t.Errorf("accessToken = %q", resp.AccessToken)
	}
	if resp.User.Role != "user" {
		t.Errorf("role = %q, want user", resp.User.Role)
	}
}

func TestAuthRegister_Conflict(t *testing.T) {
	mock := &authServiceMock{
		RegisterFunc: func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewAuthHandler(mock, discardLogger())

	body := `{"email":"taken@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestAuthLogin_Unauthorized(t *testing.T) {
	mock := &authServiceMock{
		LoginFunc: func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(mock, discardLogger())

	body := `{"email":"recruit@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthRefresh(t *testing.T) {
	mock := &authServiceMock{
		RefreshFunc: func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
			if input.RefreshToken != "old-refresh" {
				t.Errorf("refresh token = %q", input.RefreshToken)
			}
			return testAuthResult(), nil
		},
	}
	h := NewAuthHandler(mock, discardLogger())

	body := `{"refreshToken":"old-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthLogout(t *testing.T) {
	called := false
	mock := &authServiceMock{
		LogoutFunc: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	h := NewAuthHandler(mock, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Error("expected Logout to be called")
	}
}

func TestAuthLogout_Anonymous(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
