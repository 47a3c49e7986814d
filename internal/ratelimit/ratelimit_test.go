// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLimiter() *MemoryRateLimiter {
	return NewMemoryRateLimiter(&Config{
		WindowSize:    time.Minute,
		MaxAttempts:   3,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	})
}

func TestAllowUpToLimit(t *testing.T) {
	limiter := newTestLimiter()
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("10.0.0.1")
		require.True(t, allowed, "attempt %d should be allowed", i+1)
		require.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := limiter.Allow("10.0.0.1")
	require.False(t, allowed)
	require.True(t, info.Banned)
	require.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsPerIdentifier(t *testing.T) {
	limiter := newTestLimiter()
	defer limiter.Close()

	for i := 0; i < 4; i++ {
		limiter.Allow("10.0.0.1")
	}

	allowed, _ := limiter.Allow("10.0.0.2")
	require.True(t, allowed)
}

func TestRecordSuccessResets(t *testing.T) {
	limiter := newTestLimiter()
	defer limiter.Close()

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")
	limiter.RecordSuccess("10.0.0.1")

	allowed, info := limiter.Allow("10.0.0.1")
	require.True(t, allowed)
	require.Equal(t, 2, info.Remaining)
}
