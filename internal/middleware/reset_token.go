package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"FINDME_BACK-END/internal/config"
)

// ResetTokenClaims represents the JWT claims for a password reset token
type ResetTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// GenerateResetToken generates a temporary JWT token for password reset
func GenerateResetToken(userID uuid.UUID, email string, cfg *config.JWTConfig) (string, error) {
	// Token expires in 10 minutes
	expirationTime := time.Now().Add(10 * time.Minute)

	claims := &ResetTokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "findme",
			Subject:   "password_reset",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateResetToken validates and parses the reset token
func ValidateResetToken(tokenString string, cfg *config.JWTConfig) (*ResetTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ResetTokenClaims); ok && token.Valid {
		// Check if token is for password reset
		if claims.Subject != "password_reset" {
			return nil, errors.New("invalid token type")
		}

		return claims, nil
	}

	return nil, errors.New("invalid token")
}
