package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/auth"
	"github.com/iho/memberledger/internal/usecase"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"
	// TokenIDContextKey is the context key for the jti of the presented token
	TokenIDContextKey ContextKey = "token_id"
)

// TokenVerifier checks a signed token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware creates an authentication middleware. A token is accepted
// only if its signature is valid and its jti is still registered in tokens.
func AuthMiddleware(verifier TokenVerifier, tokens usecase.TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			registered, err := tokens.Exists(r.Context(), claims.ID)
			if err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("token registry lookup failed")
				http.Error(w, "authentication unavailable", http.StatusServiceUnavailable)
				return
			}
			if !registered {
				http.Error(w, domain.ErrTokenRevoked.Error(), http.StatusUnauthorized)
				return
			}

			user := &domain.User{
				ID:     claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
				Active: true,
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			ctx = context.WithValue(ctx, TokenIDContextKey, claims.ID)
			zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user_id", user.ID)
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates a middleware that checks for a specific role
func RequireRole(minRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.Role.Satisfies(minRole) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

// GetTokenIDFromContext extracts the jti of the authenticated token from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TokenIDContextKey).(string)
	return id, ok && id != ""
}
