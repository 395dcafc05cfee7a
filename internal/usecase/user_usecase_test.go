package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
	"github.com/iho/memberledger/internal/usecase/mocks"
)

type authCounter struct {
	ok, failed int
}

func (a *authCounter) AuthAttempt(success bool) {
	if success {
		a.ok++
		return
	}
	a.failed++
}

func newUserUseCase() (*usecase.UserUseCase, *mocks.MockUserRepository, *mocks.MockTokenStore, *authCounter) {
	repo := mocks.NewMockUserRepository()
	tokens := mocks.NewMockTokenStore()
	counter := &authCounter{}
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator(), &mocks.MockTokenIssuer{}, tokens, counter)
	return uc, repo, tokens, counter
}

func TestUserUseCase_CreateUser(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, usecase.CreateUserInput{
		Email:    "Ops@Example.com",
		Name:     "Ops",
		Password: "Password1",
		Role:     domain.RoleOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", user.Email)
	assert.Empty(t, user.HashedPassword)
	assert.True(t, user.Active)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.HashedPassword)

	_, err = uc.CreateUser(ctx, usecase.CreateUserInput{Email: "ops@example.com", Password: "Password1", Role: domain.RoleViewer})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = uc.CreateUser(ctx, usecase.CreateUserInput{Email: "x@example.com", Password: "Password1", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = uc.CreateUser(ctx, usecase.CreateUserInput{Email: "x@example.com", Password: "weak", Role: domain.RoleViewer})
	assert.ErrorIs(t, err, domain.ErrPasswordTooWeak)
}

func TestUserUseCase_LoginAndLogout(t *testing.T) {
	uc, _, tokens, counter := newUserUseCase()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, usecase.CreateUserInput{Email: "admin@example.com", Password: "Password1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(ctx, usecase.AuthenticateInput{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, usecase.AuthenticateInput{Email: "nobody@example.com", Password: "Password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	session, err := uc.Login(ctx, usecase.AuthenticateInput{Email: "admin@example.com", Password: "Password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, domain.RoleAdmin, session.User.Role)

	ok, err := tokens.Exists(ctx, session.TokenID)
	require.NoError(t, err)
	assert.True(t, ok, "login registers the token id")

	require.NoError(t, uc.Logout(ctx, session.TokenID))
	ok, err = tokens.Exists(ctx, session.TokenID)
	require.NoError(t, err)
	assert.False(t, ok, "logout revokes the token id")

	assert.ErrorIs(t, uc.Logout(ctx, ""), domain.ErrInvalidToken)
	assert.Equal(t, 1, counter.ok)
	assert.Equal(t, 2, counter.failed)
}

func TestUserUseCase_InactiveUser(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &domain.User{
		ID:             "01HINACTIVE",
		Email:          "v@example.com",
		HashedPassword: string(hash),
		Role:           domain.RoleViewer,
		Active:         false,
	}))

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator(), &mocks.MockTokenIssuer{}, mocks.NewMockTokenStore(), nil)
	_, err = uc.Authenticate(ctx, usecase.AuthenticateInput{Email: "v@example.com", Password: "Password1"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestUserUseCase_EnsureAdmin(t *testing.T) {
	uc, repo, _, _ := newUserUseCase()
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "Password1"))
	require.NoError(t, uc.EnsureAdmin(ctx, "root@example.com", "Password1"), "second call is a no-op")

	users, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)

	listed, err := uc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].HashedPassword)

	got, err := uc.GetUser(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", got.Email)
}
