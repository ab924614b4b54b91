package auth

import (
	"context"

	"gyh/internal/core/id"
)

// UserRepository defines the interface for User persistence.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context) ([]*User, error)
}
