// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"sync"
	"time"
)

// intervalTimer is a single owned timer handle with start-if-absent /
// stop-if-present semantics. It is the only mutable shared resource of the
// reconciliation loop: re-entrant start attempts never create a second live
// timer, and stop is safe to call at any time from any goroutine.
type intervalTimer struct {
	mu   sync.Mutex
	stop chan struct{}
}

// StartIfAbsent starts a goroutine firing tick every interval until the
// timer is stopped. Returns false if a timer is already live.
func (t *intervalTimer) StartIfAbsent(interval time.Duration, tick func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return false
	}

	stop := make(chan struct{})
	t.stop = stop
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
	return true
}

// StopIfPresent cancels the live timer, if any. Returns false if no timer
// was live. Idempotent.
func (t *intervalTimer) StopIfPresent() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return false
	}
	close(t.stop)
	t.stop = nil
	return true
}

// Active reports whether a timer is currently live.
func (t *intervalTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
