package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/apperrors"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/golang-jwt/jwt/v5"
)

// JWTValidator validates HS256 tokens signed with a shared secret. The
// subject claim is the user ID.
type JWTValidator struct {
	secret []byte
	issuer string
}

// NewJWTValidator creates a validator. An empty issuer skips the issuer check.
func NewJWTValidator(secret, issuer string) clients.TokenValidator {
	return &JWTValidator{secret: []byte(secret), issuer: issuer}
}

var _ clients.TokenValidator = (*JWTValidator)(nil)

func (v *JWTValidator) ValidateToken(_ context.Context, tokenString string) (string, error) {
	claims, err := ParseAndValidateJWT(tokenString, v.secret, v.issuer)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}

// GenerateJWT issues a token for userID. Used by tests and local tooling.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
func ParseAndValidateJWT(tokenString string, secretKey []byte, issuer string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
