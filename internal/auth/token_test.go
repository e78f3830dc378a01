package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-predictable-results"

func TestGenerateToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, expiresAt, err := tm.GenerateToken("user1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "user1", claims.Subject)
}

func TestParseToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)
	other := NewTokenManager("different-secret-key", 60)
	expired := NewTokenManager(testSecret, 60)
	expired.ttl = -time.Hour

	validToken, _, _ := tm.GenerateToken("user1")
	foreignToken, _, _ := other.GenerateToken("user1")
	expiredToken, _, _ := expired.GenerateToken("user1")

	unsignedClaims := &Claims{UserID: "user1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, unsignedClaims)
	unsignedToken, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name        string
		tokenString string
		expectError bool
	}{
		{name: "valid token", tokenString: validToken},
		{name: "wrong secret", tokenString: foreignToken, expectError: true},
		{name: "expired token", tokenString: expiredToken, expectError: true},
		{name: "malformed token", tokenString: "not-a-jwt", expectError: true},
		{name: "unsigned token", tokenString: unsignedToken, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tm.ParseToken(tt.tokenString)
			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user1", claims.UserID)
			}
		})
	}
}

func TestTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager(testSecret, 0)
	assert.Equal(t, time.Hour, tm.ttl)
}
