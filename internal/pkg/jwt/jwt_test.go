package jwt

import (
	"testing"

	"github.com/kintaihq/kintai-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key", "1h", "168h")
}

func TestGenerateAccessToken_ClaimsRoundTrip(t *testing.T) {
	svc := newTestService()
	employeeID := "emp-1"

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "taro@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "user-1", userID)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
	role, _ := token.Get("role")
	assert.Equal(t, "employee", role)
}

func TestGenerateRefreshToken_TypeClaim(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	tokenType, _ := token.Get("type")
	assert.Equal(t, "refresh", tokenType)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, expiresIn, err := svc.GenerateSSEToken("user-9")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "taro@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(tokenString)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))
	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}
