package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

func TestUserID_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithUserID(context.Background(), id)

	got, ok := UserIDFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestUserIDFromCtx_Missing(t *testing.T) {
	t.Parallel()

	_, ok := UserIDFromCtx(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromCtx(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)
}

func TestRequireUserID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := RequireUserID(WithUserID(context.Background(), id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = RequireUserID(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromCtx(ctx))
	assert.Equal(t, "", RequestIDFromCtx(context.Background()))
}
