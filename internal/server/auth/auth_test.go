package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager("test-secret")

	token, err := mgr.GenerateToken(42, "admin", []string{RoleAdmin, RoleEmployee})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, []string{RoleAdmin, RoleEmployee}, claims.Roles)
	assert.True(t, claims.HasRole(RoleAdmin))
	assert.False(t, claims.HasRole(RoleClient))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").GenerateToken(1, "u", []string{RoleClient})
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateFailsWithEmptySecret(t *testing.T) {
	_, err := NewJWTManager("").GenerateToken(1, "u", nil)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
