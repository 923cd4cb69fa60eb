package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-backend/internal/config"
)

func newTestManager() *JWTManager {
	return NewJWTManager(config.AuthConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		JWTIssuer: "wordbook",
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	got, err := m.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	t.Parallel()

	m := newTestManager()

	token, err := m.GenerateToken(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateToken(context.Background(), token)
	require.Error(t, err)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	other := NewJWTManager(config.AuthConfig{
		JWTSecret: "ffffffffffffffffffffffffffffffff",
		JWTIssuer: "wordbook",
	})

	token, err := other.GenerateToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = newTestManager().ValidateToken(context.Background(), token)
	require.Error(t, err)
}

func TestJWTManager_RejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	other := NewJWTManager(config.AuthConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		JWTIssuer: "someone-else",
	})

	token, err := other.GenerateToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = newTestManager().ValidateToken(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	t.Parallel()

	m := newTestManager()

	_, err := m.ValidateToken(context.Background(), "")
	require.Error(t, err)

	_, err = m.ValidateToken(context.Background(), "not.a.jwt")
	require.Error(t, err)
}
