// Package notify holds the transient user-facing status message. A single
// slot is kept per Center: a new push replaces whatever was showing, and a
// message expires on read once its deadline passes. Expiry is a timestamp
// comparison rather than a background timer, so a Center needs no goroutine
// and no teardown.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 4 * time.Second

type Notification struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Center struct {
	mutex   sync.Mutex
	current Notification
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// NewCenterAt is NewCenter with an injected clock, for tests.
func NewCenterAt(ttl time.Duration, now func() time.Time) *Center {
	c := NewCenter(ttl)
	c.now = now
	return c
}

// Push replaces the current message and restarts its expiry window.
func (c *Center) Push(message string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	c.current = Notification{Message: message, CreatedAt: now}
	c.expires = now.Add(c.ttl)
}

// Current returns the active message, or ok=false if none is showing
// or the last one has expired.
func (c *Center) Current() (Notification, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.current.Message == "" || !c.now().Before(c.expires) {
		return Notification{}, false
	}
	return c.current, true
}

// Clear drops the current message immediately.
func (c *Center) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.current = Notification{}
	c.expires = time.Time{}
}
