package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims holds the typed JWT payload. Subject is the username.
type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 token for username.
func GenerateToken(cfg JWTConfig, username string, typ TokenType) (string, time.Time, error) {
	if cfg.Secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not set")
	}

	hours := cfg.ExpiryHours
	if typ == TokenRefresh {
		hours = cfg.RefreshExpiryHours
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}

	return signed, expiresAt, nil
}

// ParseToken verifies signature, expiry and token type and returns the subject.
func ParseToken(cfg JWTConfig, tokenStr string, want TokenType) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Type != want {
		return "", fmt.Errorf("%w: expected %s token", ErrInvalidToken, want)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
