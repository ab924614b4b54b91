package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
)

// Token kinds carried in the claims to keep refresh tokens from being
// used as access tokens and vice versa.
const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret          string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:          secret,
		Issuer:          "gyh",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Kind     string `json:"kind"`
}

// JWTService handles JWT operations.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// GeneratePair issues an access/refresh token pair for the user.
func (s *JWTService) GeneratePair(u *User) (*TokenPair, error) {
	access, expiresAt, err := s.generate(u, tokenKindAccess, s.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.generate(u, tokenKindRefresh, s.config.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

func (s *JWTService) generate(u *User, kind string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
		Kind:     kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateAccessToken validates an access JWT and returns user context.
func (s *JWTService) ValidateAccessToken(tokenString string) (*appctx.UserContext, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokenKindAccess {
		return nil, fmt.Errorf("not an access token")
	}

	userID, err := id.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return &appctx.UserContext{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// ValidateRefreshToken validates a refresh JWT and returns the user id.
func (s *JWTService) ValidateRefreshToken(tokenString string) (id.ID, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return id.Nil(), err
	}
	if claims.Kind != tokenKindRefresh {
		return id.Nil(), fmt.Errorf("not a refresh token")
	}
	return id.Parse(claims.UserID)
}

func (s *JWTService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
