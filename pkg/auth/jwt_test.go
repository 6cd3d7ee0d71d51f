package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, expiry time.Duration) *JWTManager {
	t.Helper()
	manager, err := NewJWTManager(JWTConfig{
		SecretKey: "unit-test-secret",
		Issuer:    "coursehub-test",
		Expiry:    expiry,
	})
	require.NoError(t, err)
	return manager
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.GenerateToken("admin-1", "admin@example.com", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := newTestManager(t, time.Millisecond)

	token, err := manager.GenerateToken("admin-1", "admin@example.com", RoleAdmin)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	other, err := NewJWTManager(JWTConfig{
		SecretKey: "a-different-secret",
		Issuer:    "coursehub-test",
		Expiry:    time.Hour,
	})
	require.NoError(t, err)

	token, err := manager.GenerateToken("admin-1", "admin@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateGarbageToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	_, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager(JWTConfig{Issuer: "x"})
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("", "anything"))
}

func TestSlidingWindowLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok, "third request in the window should be throttled")

	// Other keys are tracked independently
	ok, err = limiter.Allow(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, limiter.Reset(ctx, "client-a"))
	ok, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, ok)
}
