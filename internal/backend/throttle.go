package backend

import (
	"sync"
	"time"
)

// throttle spaces successive definition reloads at least interval apart.
type throttle struct {
	interval time.Duration
	sleep    func(time.Duration)

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	t := &throttle{sleep: time.Sleep}
	if interval > 0 {
		t.interval = interval
	}
	return t
}

// wait blocks until the next reload slot and claims it.
func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		wait := time.Until(t.next)
		if wait <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		t.sleep(min(wait, t.interval))
	}
}
