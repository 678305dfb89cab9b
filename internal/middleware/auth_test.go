package middleware

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func signTestToken(t *testing.T, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "42",
		"iss": TokenIssuer,
		"aud": TokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"empty", "", ""},
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"bare token", "abc.def.ghi", "abc.def.ghi"},
		{"extra segments take last", "Token Bearer abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenFromHeader(tt.header))
		})
	}
}

func TestVerifyToken_Valid(t *testing.T) {
	userID, err := VerifyToken(signTestToken(t, nil), testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "42", "iss": TokenIssuer, "aud": TokenAudience,
				"exp": time.Now().Add(time.Hour).Unix(),
			})
			signed, _ := token.SignedString([]byte("some-other-secret"))
			return signed
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(tt.token, testSecret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyToken_ClaimFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{"expired", func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() }},
		{"wrong issuer", func(c jwt.MapClaims) { c["iss"] = "someone-else" }},
		{"wrong audience", func(c jwt.MapClaims) { c["aud"] = "someone-else" }},
		{"missing subject", func(c jwt.MapClaims) { delete(c, "sub") }},
		{"non-numeric subject", func(c jwt.MapClaims) { c["sub"] = "abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(signTestToken(t, tt.mutate), testSecret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyToken_RejectsNonHMACSigning(t *testing.T) {
	// alg=none style tokens must never verify
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": strconv.Itoa(42), "iss": TokenIssuer, "aud": TokenAudience,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
