package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter_AllowsUpToLimit(t *testing.T) {
	// Arrange
	limiter := NewSlidingWindowLimiter(3, time.Minute)
	ctx := context.Background()

	// Act & Assert
	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "k1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	// Arrange
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k1")
	require.NoError(t, err)

	// Act
	allowed, err := limiter.Allow(ctx, "k2")

	// Assert
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_Reset(t *testing.T) {
	// Arrange
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k1")
	require.NoError(t, err)

	// Act
	require.NoError(t, limiter.Reset(ctx, "k1"))

	// Assert
	allowed, err := limiter.Allow(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_WindowExpiry(t *testing.T) {
	// Arrange
	limiter := NewSlidingWindowLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k1")
	require.NoError(t, err)

	// Act
	time.Sleep(20 * time.Millisecond)
	allowed, err := limiter.Allow(ctx, "k1")

	// Assert
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestUserRateLimiter(t *testing.T) {
	// Arrange
	limiter := NewUserRateLimiter(2)
	ctx := context.Background()

	// Act & Assert
	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, allowed)
}
