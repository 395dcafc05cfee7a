package handler

import (
	"context"
	"net/http"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/adapter/http/middleware"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Login(ctx context.Context, input usecase.AuthenticateInput) (*domain.Session, error)
	Logout(ctx context.Context, tokenID string) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC AuthService) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login checks credentials against the admin user table and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.authUC.Login(r.Context(), usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, r, "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.UserFromDomain(session.User),
	})
}

// Logout revokes the token used for this request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.authUC.Logout(r.Context(), tokenID); err != nil {
		writeDomainError(w, r, "logout failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCurrentUser returns the current authenticated user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claimed, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	user, err := h.authUC.GetUser(r.Context(), claimed.ID)
	if err != nil {
		writeDomainError(w, r, "failed to get current user", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
