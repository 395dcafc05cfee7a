package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/auth"
	"github.com/iho/memberledger/internal/usecase/mocks"
)

func issueToken(t *testing.T, manager *auth.JWTManager, tokens *mocks.MockTokenStore, role domain.Role) *domain.Session {
	t.Helper()
	session, err := manager.Issue(&domain.User{ID: "user-1", Email: "op@example.com", Role: role, Active: true})
	require.NoError(t, err)
	require.NoError(t, tokens.Register(context.Background(), session.TokenID, "user-1", time.Hour))
	return session
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	tokens := mocks.NewMockTokenStore()
	session := issueToken(t, manager, tokens, domain.RoleOperator)

	var seen *domain.User
	var seenTokenID string
	protected := AuthMiddleware(manager, tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserFromContext(r.Context())
		seenTokenID, _ = GetTokenIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + session.Token, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
	assert.Equal(t, domain.RoleOperator, seen.Role)
	assert.Equal(t, session.TokenID, seenTokenID)
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	tokens := mocks.NewMockTokenStore()
	session := issueToken(t, manager, tokens, domain.RoleAdmin)
	require.NoError(t, tokens.Revoke(context.Background(), session.TokenID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rr := httptest.NewRecorder()
	AuthMiddleware(manager, tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("revoked token must not reach the handler")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		minRole domain.Role
		status  int
	}{
		{name: "no user", user: nil, minRole: domain.RoleViewer, status: http.StatusUnauthorized},
		{name: "viewer reads", user: &domain.User{Role: domain.RoleViewer}, minRole: domain.RoleViewer, status: http.StatusOK},
		{name: "viewer cannot mutate", user: &domain.User{Role: domain.RoleViewer}, minRole: domain.RoleOperator, status: http.StatusForbidden},
		{name: "operator mutates", user: &domain.User{Role: domain.RoleOperator}, minRole: domain.RoleOperator, status: http.StatusOK},
		{name: "operator cannot admin", user: &domain.User{Role: domain.RoleOperator}, minRole: domain.RoleAdmin, status: http.StatusForbidden},
		{name: "admin admins", user: &domain.User{Role: domain.RoleAdmin}, minRole: domain.RoleAdmin, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), UserContextKey, tt.user))
			}
			rr := httptest.NewRecorder()
			RequireRole(tt.minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}
