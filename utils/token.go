package utils

import (
	"fmt"
	"time"

	"sudharnayak-be/models"

	"github.com/dgrijalva/jwt-go"
)

// GenerateToken mints an HS256 JWT carrying the user id and role.
func GenerateToken(secret, userID string, role models.UserRole, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(ttl).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// TokenClaims is the validated identity extracted from a bearer token.
type TokenClaims struct {
	UserID string
	Role   models.UserRole
}

// ParseToken validates a bearer token and extracts its identity claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("token missing user_id claim")
	}

	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID: userID,
		Role:   models.ParseRole(role),
	}, nil
}
