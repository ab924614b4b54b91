package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"gyh/internal/core/apperror"
	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
	"gyh/pkg/logger"
)

// Service provides login and user management.
type Service struct {
	users UserRepository
	jwt   *JWTService
}

// NewService creates a new auth Service.
func NewService(users UserRepository, jwtSvc *JWTService) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	u, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same response for unknown user and wrong password.
			return nil, nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid username or password")
	}
	if err := u.CanLogin(); err != nil {
		return nil, nil, err
	}

	pair, err := s.jwt.GeneratePair(u)
	if err != nil {
		return nil, nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID.String(), "username", u.Username)
	return pair, u, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid refresh token")
		}
		return nil, err
	}
	if err := u.CanLogin(); err != nil {
		return nil, err
	}

	pair, err := s.jwt.GeneratePair(u)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return pair, nil
}

// CreateUser registers a new user with a hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*User, error) {
	if len(password) < 6 {
		return nil, apperror.NewFieldValidation("password", "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	u := NewUser(username, string(hash), role)
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, u.Username)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicate("user", "username", u.Username)
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user created", "user_id", u.ID.String(), "username", u.Username, "role", u.Role)
	return u, nil
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes a user. Self-deletion is rejected.
func (s *Service) DeleteUser(ctx context.Context, userID id.ID) error {
	if appctx.GetUserID(ctx) == userID {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"You cannot delete your own account",
		)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
