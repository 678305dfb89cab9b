// Package middleware provides authentication, logging, rate limiting and
// metrics middleware for the application.
package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Token issuer and audience embedded in every token this API signs.
const (
	TokenIssuer   = "parlor-api"
	TokenAudience = "parlor-client"
)

// ErrInvalidToken is returned by VerifyToken for every structural, signature
// or expiry failure. Callers present one message regardless of the cause.
var ErrInvalidToken = errors.New("invalid token")

// TokenFromHeader extracts the bearer token from an Authorization header
// value. The last space-separated segment wins, so both "Bearer <token>" and
// a bare token are accepted. Returns "" when the header is empty.
func TokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	return parts[len(parts)-1]
}

// VerifyToken validates an HS256 token against the secret and returns the
// user ID from the subject claim. It is a pure function of token and secret;
// any failure (signature, expiry, claims shape, issuer, audience) yields
// ErrInvalidToken.
func VerifyToken(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return 0, ErrInvalidToken
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}
