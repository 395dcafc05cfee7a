package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/memberledger/internal/domain"
)

// UserUseCase handles admin users and their sessions.
type UserUseCase struct {
	userRepo   UserRepository
	idGen      IDGenerator
	issuer     TokenIssuer
	tokenStore TokenStore
	metrics    AuthRecorder
	now        func() time.Time
}

// NewUserUseCase creates a new user use case. issuer and tokenStore are only
// needed for Login and Logout; metrics may be nil.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, issuer TokenIssuer, tokenStore TokenStore, metrics AuthRecorder) *UserUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}

	return &UserUseCase{
		userRepo:   userRepo,
		idGen:      idGen,
		issuer:     issuer,
		tokenStore: tokenStore,
		metrics:    metrics,
		now:        time.Now,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// CreateUser creates a new user with hashed password
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if !input.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          email,
		Name:           input.Name,
		HashedPassword: hashedPassword,
		Role:           input.Role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("admin user created")

	user.HashedPassword = ""
	return user, nil
}

// AuthenticateInput represents authentication input
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies user credentials
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""
	return user, nil
}

// Login authenticates the user, issues a token and registers its id so that
// the token is accepted until it expires or the user logs out.
func (uc *UserUseCase) Login(ctx context.Context, input AuthenticateInput) (*domain.Session, error) {
	user, err := uc.Authenticate(ctx, input)
	if err != nil {
		uc.metrics.AuthAttempt(false)
		return nil, err
	}

	session, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	ttl := session.ExpiresAt.Sub(uc.now())
	if err := uc.tokenStore.Register(ctx, session.TokenID, user.ID, ttl); err != nil {
		return nil, fmt.Errorf("register token: %w", err)
	}

	uc.metrics.AuthAttempt(true)
	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Msg("admin user logged in")

	return session, nil
}

// Logout revokes the token with the given id.
func (uc *UserUseCase) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return domain.ErrInvalidToken
	}
	return uc.tokenStore.Revoke(ctx, tokenID)
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// ListUsers lists users with pagination
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.NormalizePagination(limit, offset)

	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.HashedPassword = ""
	}

	return users, nil
}

// EnsureAdmin creates an admin with the given credentials unless a user with
// that email already exists.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := uc.CreateUser(ctx, CreateUserInput{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
