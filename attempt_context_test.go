package walletpay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptContextRoundTrip(t *testing.T) {
	t.Parallel()

	info := &AttemptInfo{ID: "attempt-1", StartedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), Total: "9.99"}
	ctx := contextWithAttempt(context.Background(), info)

	got := AttemptFromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "attempt-1", got.ID)
	assert.Equal(t, "9.99", got.Total)

	assert.Nil(t, AttemptFromContext(context.Background()))
	assert.Same(t, ctx, contextWithAttempt(ctx, nil))
}
