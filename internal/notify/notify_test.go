package notify

import (
	"testing"
	"time"
)

// a pushed message is visible until its TTL passes, then disappears
func TestCenter_ExpiresAfterTTL(t *testing.T) {
	clock := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := NewCenterAt(4*time.Second, func() time.Time { return clock })

	if _, ok := c.Current(); ok {
		t.Fatalf("fresh center should have no notification")
	}

	c.Push("saved")
	n, ok := c.Current()
	if !ok || n.Message != "saved" {
		t.Fatalf("want visible 'saved', got ok=%v n=%+v", ok, n)
	}

	clock = clock.Add(3 * time.Second)
	if _, ok := c.Current(); !ok {
		t.Fatalf("message should still be visible before TTL")
	}

	clock = clock.Add(2 * time.Second)
	if _, ok := c.Current(); ok {
		t.Fatalf("message should have expired")
	}
}

// a second push replaces the first message and restarts the window
func TestCenter_PushReplaces(t *testing.T) {
	clock := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := NewCenterAt(4*time.Second, func() time.Time { return clock })

	c.Push("first")
	clock = clock.Add(3 * time.Second)
	c.Push("second")

	n, ok := c.Current()
	if !ok || n.Message != "second" {
		t.Fatalf("want 'second', got ok=%v n=%+v", ok, n)
	}

	// 3s after the replacement: the original window would have closed,
	// the restarted one has not
	clock = clock.Add(3 * time.Second)
	if n, ok := c.Current(); !ok || n.Message != "second" {
		t.Fatalf("replacement should restart expiry, got ok=%v n=%+v", ok, n)
	}
}

func TestCenter_Clear(t *testing.T) {
	c := NewCenter(0)
	c.Push("something")
	c.Clear()
	if _, ok := c.Current(); ok {
		t.Fatalf("cleared center should have no notification")
	}
}
