// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"strings"
	"time"

	"gyh/internal/core/apperror"
	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
)

// User represents a system user.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new active user.
func NewUser(username, passwordHash, role string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.New(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ValidRole reports whether the role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case appctx.RoleAdmin, appctx.RoleSeller, appctx.RoleInventor:
		return true
	}
	return false
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.Username) == "" {
		return apperror.NewFieldValidation("username", "username is required")
	}
	if !ValidRole(u.Role) {
		return apperror.NewFieldValidation("role", "role must be ADMIN, VENDEDOR or INVENTOR")
	}
	return nil
}

// CanLogin checks if user can login.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// TokenPair contains access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

// Credentials for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
