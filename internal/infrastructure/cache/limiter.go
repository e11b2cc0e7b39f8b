package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter is the single-instance rate limiter used when Redis is off.
// Each client gets a token bucket refilled at limit per window.
type MemoryLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter creates an in-process rate limiter
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

// CheckRateLimit has the same contract as RedisCache.CheckRateLimit
func (m *MemoryLimiter) CheckRateLimit(_ context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evict(now, window)

	cl, ok := m.limiters[key]
	if !ok {
		every := rate.Every(window / time.Duration(max(limit, 1)))
		cl = &clientLimiter{limiter: rate.NewLimiter(every, int(limit))}
		m.limiters[key] = cl
	}
	cl.lastSeen = now

	allowed := cl.limiter.AllowN(now, 1)
	remaining := int64(cl.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, now.Add(window), nil
}

// evict drops clients idle for more than two windows. The map is swept at
// most once per window.
func (m *MemoryLimiter) evict(now time.Time, window time.Duration) {
	if now.Sub(m.lastSweep) < window {
		return
	}
	m.lastSweep = now
	for key, cl := range m.limiters {
		if now.Sub(cl.lastSeen) > 2*window {
			delete(m.limiters, key)
		}
	}
}
