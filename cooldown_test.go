package arbscan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCooldownIdempotence covers P4: two back-to-back publish requests
// with the same route key within the window emit exactly one allowed
// publication.
func TestCooldownIdempotence(t *testing.T) {
	c := NewCooldown(60*time.Second, nil)
	start := time.Now()

	allowed := 0
	for i := 0; i < 2; i++ {
		if c.Allow(context.Background(), "USDC/WETH|1000|UniswapV3->SushiSwap", start.Add(time.Duration(i)*time.Second)) {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
}

func TestCooldownAllowsAfterWindow(t *testing.T) {
	c := NewCooldown(10*time.Second, nil)
	start := time.Now()

	assert.True(t, c.Allow(context.Background(), "k", start))
	assert.False(t, c.Allow(context.Background(), "k", start.Add(5*time.Second)))
	assert.True(t, c.Allow(context.Background(), "k", start.Add(11*time.Second)))
}

func TestCooldownDistinctKeysIndependent(t *testing.T) {
	c := NewCooldown(60*time.Second, nil)
	now := time.Now()

	assert.True(t, c.Allow(context.Background(), "a", now))
	assert.True(t, c.Allow(context.Background(), "b", now))
}

type erroringBackstop struct{}

func (erroringBackstop) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	return false, assertError
}

var assertError = assertErr("backstop unavailable")

type assertErr string

func (e assertErr) Error() string { return string(e) }

// TestCooldownBackstopFailureDoesNotBlock ensures a Backstop error never
// overrides an in-memory allow decision.
func TestCooldownBackstopFailureDoesNotBlock(t *testing.T) {
	c := NewCooldown(60*time.Second, erroringBackstop{})
	assert.True(t, c.Allow(context.Background(), "k", time.Now()))
}
