package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, "64a1f0b2c3d4e5f601234567", "dentist")
	require.NoError(t, err)

	claims, err := ValidateJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "64a1f0b2c3d4e5f601234567", claims.UserID)
	assert.Equal(t, "dentist", claims.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT([]byte("secret-a"), "id", "admin")
	require.NoError(t, err)

	_, err = ValidateJWT([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestJWTMissingSecret(t *testing.T) {
	_, err := GenerateJWT(nil, "id", "admin")
	assert.Error(t, err)
	_, err = ValidateJWT(nil, "token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hash)

	assert.True(t, CheckPasswordHash("s3cure-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
