// Package auth validates bearer tokens issued by the hosted backend.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"dealerops/internal/config"
	"dealerops/internal/domain"
)

// Claims are the token claims the service relies on.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenValidator validates a raw bearer token.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

type hmacValidator struct {
	secret []byte
	issuer string
}

// NewValidator creates an HS256 validator using the shared secret. When an
// issuer is configured, tokens from any other issuer are rejected.
func NewValidator(cfg config.JWTConfig) TokenValidator {
	return &hmacValidator{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

func (v *hmacValidator) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
