package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/infrastructure/config"
)

// TokenClaims is the payload carried by issued access tokens.
type TokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates signed access tokens.
type JWTService interface {
	// GenerateToken issues an access token for the user. Returns the
	// token and its lifetime in seconds.
	GenerateToken(ctx context.Context, user *entities.User) (string, int64, error)

	// ParseToken validates a token and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (*TokenClaims, error)
}

type jwtServiceImpl struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
}

// NewJWTService creates the token service from configuration.
func NewJWTService(cfg *config.JWTConfig) JWTService {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &jwtServiceImpl{
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

func (s *jwtServiceImpl) GenerateToken(ctx context.Context, user *entities.User) (string, int64, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return signed, int64(s.ttl.Seconds()), nil
}

func (s *jwtServiceImpl) ParseToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("token has no user id")
	}

	return claims, nil
}
