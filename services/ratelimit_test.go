package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterCooldown(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	limiter := NewRateLimiter(store, 5*time.Minute)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	now := base
	limiter.now = func() time.Time { return now }

	allowed, minutes := limiter.CanSubmit(ctx, "session-a")
	assert.True(t, allowed)
	assert.Equal(t, 0, minutes)

	require.NoError(t, limiter.RecordSubmission(ctx, "session-a"))

	// One minute later: blocked with 4 whole minutes left.
	now = base.Add(1 * time.Minute)
	allowed, minutes = limiter.CanSubmit(ctx, "session-a")
	assert.False(t, allowed)
	assert.Equal(t, 4, minutes)

	// After the cooldown elapses the session may submit again.
	now = base.Add(5 * time.Minute)
	allowed, minutes = limiter.CanSubmit(ctx, "session-a")
	assert.True(t, allowed)
	assert.Equal(t, 0, minutes)
}

func TestRateLimiterSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewRateLimiter(NewMemorySessionStore(), 5*time.Minute)

	require.NoError(t, limiter.RecordSubmission(ctx, "session-a"))

	allowed, _ := limiter.CanSubmit(ctx, "session-a")
	assert.False(t, allowed)

	allowed, _ = limiter.CanSubmit(ctx, "session-b")
	assert.True(t, allowed)
}

func TestRateLimiterFailsOpenOnGarbage(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	limiter := NewRateLimiter(store, 5*time.Minute)

	require.NoError(t, store.Set(ctx, "ratelimit:last:session-a", "not-a-timestamp", 0))

	allowed, minutes := limiter.CanSubmit(ctx, "session-a")
	assert.True(t, allowed)
	assert.Equal(t, 0, minutes)
}

func TestRateLimiterRecordOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	limiter := NewRateLimiter(store, 5*time.Minute)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	now := base
	limiter.now = func() time.Time { return now }

	require.NoError(t, limiter.RecordSubmission(ctx, "session-a"))

	now = base.Add(6 * time.Minute)
	require.NoError(t, limiter.RecordSubmission(ctx, "session-a"))

	now = base.Add(7 * time.Minute)
	allowed, minutes := limiter.CanSubmit(ctx, "session-a")
	assert.False(t, allowed)
	assert.Equal(t, 4, minutes)
}

func TestMemorySessionStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	require.NoError(t, store.Set(ctx, "k", "v", 10*time.Millisecond))

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemorySessionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNoSession)
}
