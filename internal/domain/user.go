package domain

import (
	"errors"
	"time"
)

// User is an administrator of the backend, not a member.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access, including user and dictionary management
	RoleAdmin Role = "admin"

	// RoleOperator can create members and change balances and integrals
	RoleOperator Role = "operator"

	// RoleViewer can only read
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Satisfies reports whether r grants at least the access of min.
func (r Role) Satisfies(min Role) bool {
	switch min {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleOperator:
		return r == RoleAdmin || r == RoleOperator
	case RoleViewer:
		return r.IsValid()
	default:
		return false
	}
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenRevoked     = errors.New("token has been revoked")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
	ErrUserInactive     = errors.New("user account is inactive")
	ErrUserExists       = errors.New("user with this email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidRole      = errors.New("invalid role")
)

// Session is an issued bearer token and the registry key that keeps it valid.
type Session struct {
	Token     string
	TokenID   string
	User      *User
	ExpiresAt time.Time
}
