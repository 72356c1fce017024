package jwtutil_test

import (
	"testing"
	"time"

	"github.com/partsflow/procurement-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("test-secret", time.Hour, "u1", "shop_owner", "buyer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ValidateToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "shop_owner", claims.Username)
	assert.Equal(t, "buyer", claims.Role)
}

func TestValidateToken_WrongKey(t *testing.T) {
	token, err := jwtutil.GenerateToken("test-secret", time.Hour, "u1", "shop_owner", "buyer")
	require.NoError(t, err)

	_, err = jwtutil.ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := jwtutil.GenerateToken("test-secret", -time.Minute, "u1", "shop_owner", "buyer")
	require.NoError(t, err)

	_, err = jwtutil.ValidateToken("test-secret", token)
	assert.Error(t, err)
}

func TestGenerateToken_MissingKey(t *testing.T) {
	_, err := jwtutil.GenerateToken("", time.Hour, "u1", "shop_owner", "buyer")
	assert.Error(t, err)
}
