package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/adapter/http/middleware"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

type authServiceStub struct {
	loginFn  func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Session, error)
	logoutFn func(ctx context.Context, tokenID string) error
	getFn    func(ctx context.Context, id string) (*domain.User, error)
}

func (s *authServiceStub) Login(ctx context.Context, input usecase.AuthenticateInput) (*domain.Session, error) {
	return s.loginFn(ctx, input)
}

func (s *authServiceStub) Logout(ctx context.Context, tokenID string) error {
	return s.logoutFn(ctx, tokenID)
}

func (s *authServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func TestAuthHandler_Login(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC()
	handler := NewAuthHandler(&authServiceStub{
		loginFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Session, error) {
			if input.Password != "Secret123" {
				return nil, domain.ErrUnauthorized
			}
			return &domain.Session{
				Token:     "signed",
				TokenID:   "jti",
				ExpiresAt: expires,
				User:      &domain.User{ID: "u1", Email: input.Email, Role: domain.RoleAdmin, Active: true},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "Secret123"})
	rec := httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "signed" || resp.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected response %+v", resp)
	}

	body, _ = json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	rec = httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked string
	handler := NewAuthHandler(&authServiceStub{
		logoutFn: func(ctx context.Context, tokenID string) error {
			revoked = tokenID
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.TokenIDContextKey, "jti-1"))
	rec = httptest.NewRecorder()
	handler.Logout(rec, req)

	if rec.Code != http.StatusNoContent || revoked != "jti-1" {
		t.Fatalf("expected jti-1 revoked with 204, got %d %q", rec.Code, revoked)
	}
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	handler := NewAuthHandler(&authServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "op@example.com", Role: domain.RoleOperator}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, &domain.User{ID: "u2"}))
	rec := httptest.NewRecorder()
	handler.GetCurrentUser(rec, req)

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rec.Code != http.StatusOK || resp.ID != "u2" || resp.Role != domain.RoleOperator {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}
