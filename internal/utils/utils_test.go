package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "ADMIN", "secret", time.Hour, "hk-loans-app")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "hk-loans-app", claims.Issuer)
}

func TestJWT_Rejections(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "USER", "secret", time.Hour, "hk-loans-app")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := utils.GenerateJWT("user-1", "USER", "secret", -time.Minute, "hk-loans-app")
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = utils.ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, utils.CheckPasswordHash("s3cret!", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}
