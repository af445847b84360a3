package arbscan

import (
	"context"
	"sync"
	"time"
)

// Backstop is an optional external store that lets Cooldown state survive
// a process restart. The in-memory map below works on its own; when a
// Backstop is configured, a key it still holds also suppresses a publish
// the in-memory map would allow.
type Backstop interface {
	// Allow reports whether key may fire given window, and records the
	// attempt if it does. A Backstop error is treated as "allow" — it
	// must never block a publish the in-memory map already approved.
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Cooldown suppresses repeat publications of the same exact route within
// a configured window. The map is intentionally unbounded by eviction:
// its natural bound is the cartesian product of configured pairs, sizes,
// and routes, O(10^2-10^3).
type Cooldown struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	window   time.Duration
	backstop Backstop
}

// NewCooldown builds a Cooldown with the §4.7 default window of 60s when
// window is zero.
func NewCooldown(window time.Duration, backstop Backstop) *Cooldown {
	if window <= 0 {
		window = 60 * time.Second
	}
	return &Cooldown{
		lastSeen: make(map[string]time.Time),
		window:   window,
		backstop: backstop,
	}
}

// Allow reports whether a publish for key may proceed, given now. It
// serializes Cooldown updates so concurrent scan goroutines never race
// on the same key, and sets last=now before returning true.
func (c *Cooldown) Allow(ctx context.Context, key string, now time.Time) bool {
	c.mu.Lock()
	last, ok := c.lastSeen[key]
	if ok && now.Sub(last) < c.window {
		c.mu.Unlock()
		return false
	}
	c.lastSeen[key] = now
	c.mu.Unlock()

	if c.backstop == nil {
		return true
	}
	allowed, err := c.backstop.Allow(ctx, key, c.window)
	if err != nil {
		return true
	}
	return allowed
}
