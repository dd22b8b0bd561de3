package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	assert.True(t, rl.Allow(1))
	assert.True(t, rl.Allow(1))
	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1))

	// Другой пользователь не задет чужим лимитом
	assert.True(t, rl.Allow(2))
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()

	// Слот свободен — ждать нечего
	assert.Zero(t, rl.RetryAfter(1))

	assert.True(t, rl.Allow(1))
	wait := rl.RetryAfter(1)
	assert.Greater(t, wait, 50*time.Second)
	assert.LessOrEqual(t, wait, time.Minute)
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)
	defer rl.Close()

	assert.True(t, rl.Allow(1))
	assert.False(t, rl.Allow(1))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow(1))
}
