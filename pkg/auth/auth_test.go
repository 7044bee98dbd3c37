package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("user", 3)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Username)
	assert.Equal(t, uint64(3), claims.Epoch)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken("user", 0)
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateToken("user", 0)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestMatchPassword(t *testing.T) {
	assert.True(t, MatchPassword("password", "password"))
	assert.False(t, MatchPassword("Password", "password"))
	assert.False(t, MatchPassword("", "password"))

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, IsPasswordHash(hash))
	assert.True(t, MatchPassword("s3cret", hash))
	assert.False(t, MatchPassword("S3cret", hash))
	assert.False(t, MatchPassword(hash, hash))
}

func TestJWTService_EmptySecretIsRandom(t *testing.T) {
	a := NewJWTService("", time.Hour)
	b := NewJWTService("", time.Hour)

	token, err := a.GenerateToken("user", 0)
	require.NoError(t, err)
	_, err = a.ValidateToken(token)
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.Error(t, err)
}
