package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvalidAuthRateLimiterAllow(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewInvalidAuthRateLimiter(ctx)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other IPs are tracked independently.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestInvalidAuthRateLimiterPurge(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewInvalidAuthRateLimiter(ctx)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	// Age one entry past its window, then sweep.
	rl.mu.Lock()
	rl.attempts["10.0.0.1"].firstAt = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	rl.purge(time.Now())

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.attempts, "10.0.0.1")
	assert.Contains(t, rl.attempts, "10.0.0.2")
}
