package worker

import (
	"sync"
	"time"
)

// DispatchCooldown tracks when each automation rule last dispatched for each
// contact, so a rule that just fired does not fire again for the same contact
// inside its cooldown window. Rules with a zero window are never held back.
type DispatchCooldown struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// NewDispatchCooldown creates an empty cooldown tracker
func NewDispatchCooldown() *DispatchCooldown {
	return &DispatchCooldown{
		last: make(map[string]time.Time),
	}
}

// Ready reports whether the key is outside its cooldown window. It does not
// record anything; call Mark once the dispatch actually happens.
func (c *DispatchCooldown) Ready(key string, window time.Duration) bool {
	if window <= 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	last, exists := c.last[key]
	if !exists {
		return true
	}
	return time.Since(last) >= window
}

// Mark records a dispatch for the key at the current time
func (c *DispatchCooldown) Mark(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[key] = time.Now()
}

// Key builds the cooldown key for a rule/contact pair
func (c *DispatchCooldown) Key(ruleID, contactID string) string {
	return ruleID + "\x00" + contactID
}
