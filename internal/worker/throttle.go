package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ContactThrottle limits how often triggered automations may dispatch for one
// contact. A burst of interactions from a single contact (rapid SMS replies)
// should not fan out into a burst of automations; different contacts are
// fully independent.
type ContactThrottle struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewContactThrottle creates a throttle allowing perMinute dispatches per
// contact with the given burst
func NewContactThrottle(perMinute float64, burst int) *ContactThrottle {
	if burst <= 0 {
		burst = 1
	}

	return &ContactThrottle{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perMinute / 60.0),
		defaultBurst: burst,
	}
}

// Allow checks whether a dispatch for the contact is allowed right now.
// Contacts without an ID share a single anonymous bucket.
func (t *ContactThrottle) Allow(contactID string) bool {
	return t.getLimiter(contactID).Allow()
}

// Wait blocks until a dispatch for the contact is allowed or the context ends
func (t *ContactThrottle) Wait(ctx context.Context, contactID string) error {
	return t.getLimiter(contactID).Wait(ctx)
}

// SetContactRate overrides the rate for a specific contact (e.g. a contact
// who asked for fewer messages)
func (t *ContactThrottle) SetContactRate(contactID string, perMinute float64, burst int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.limiters[contactID] = rate.NewLimiter(rate.Limit(perMinute/60.0), burst)
}

// getLimiter returns the limiter for a contact, creating it on first use
func (t *ContactThrottle) getLimiter(contactID string) *rate.Limiter {
	t.mu.RLock()
	limiter, exists := t.limiters[contactID]
	t.mu.RUnlock()

	if exists {
		return limiter
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := t.limiters[contactID]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(t.defaultRate, t.defaultBurst)
	t.limiters[contactID] = limiter

	return limiter
}
