// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"gyh/internal/core/id"
)

// Roles known to the system.
const (
	RoleAdmin    = "ADMIN"
	RoleSeller   = "VENDEDOR"
	RoleInventor = "INVENTOR"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID   id.ID
	Username string
	Role     string
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *UserContext) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or the zero ID.
func GetUserID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return id.Nil()
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}

// IsAdmin checks if the context user is an admin.
func IsAdmin(ctx context.Context) bool {
	return GetUser(ctx).IsAdmin()
}
