// Package auth_repo provides the PostgreSQL implementation of user storage.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/domain/auth"
	"gyh/internal/infrastructure/storage/postgres"
)

const userTable = "users"

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	tm   *postgres.TxManager
	cols []string
}

// NewUserRepo creates a new user repository.
func NewUserRepo(tm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		tm:   tm,
		cols: postgres.ExtractDBColumns[auth.User](),
	}
}

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	data := postgres.StructToMap(u)
	filteredData := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(userTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": userID}, userID.String())
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.findOne(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) findOne(ctx context.Context, cond squirrel.Eq, ident string) (*auth.User, error) {
	q := r.builder().
		Select(r.cols...).
		From(userTable).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.tm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", ident)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, userID id.ID) error {
	q := r.builder().
		Delete(userTable).
		Where(squirrel.Eq{"id": userID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID.String())
	}
	return nil
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	q := r.builder().
		Select(r.cols...).
		From(userTable).
		OrderBy("username ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var users []*auth.User
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &users, sql, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
