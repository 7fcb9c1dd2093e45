package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterEnforcesBudget(t *testing.T) {
	limiter := NewLimiter(time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("post:alice", 3))
	}
	assert.False(t, limiter.Allow("post:alice", 3))
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(time.Minute)

	for i := 0; i < 3; i++ {
		limiter.Allow("post:alice", 3)
	}
	assert.False(t, limiter.Allow("post:alice", 3))
	assert.True(t, limiter.Allow("post:bob", 3))
	assert.True(t, limiter.Allow("comment:alice", 10))
}

func TestLimiterWindowSlides(t *testing.T) {
	limiter := NewLimiter(20 * time.Millisecond)

	assert.True(t, limiter.Allow("post:alice", 1))
	assert.False(t, limiter.Allow("post:alice", 1))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, limiter.Allow("post:alice", 1))
}

func TestLimiterReset(t *testing.T) {
	limiter := NewLimiter(time.Minute)

	limiter.Allow("post:alice", 1)
	assert.False(t, limiter.Allow("post:alice", 1))

	limiter.Reset()
	assert.True(t, limiter.Allow("post:alice", 1))
}
