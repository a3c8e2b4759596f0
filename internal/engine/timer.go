package engine

import (
	"sync"
	"time"
)

// questionTimer is the single countdown resource a session owns. It delivers
// one tick per interval to the session and can hold one pending grace callback
// (the test-mode auto-advance after expiry). Stop and CancelGrace are
// idempotent; a stopped timer never fires again.
type questionTimer struct {
	interval time.Duration
	onTick   func()

	mu      sync.Mutex
	ticker  *time.Ticker
	done    chan struct{}
	stopped bool
	grace   *time.Timer
}

func newQuestionTimer(interval time.Duration, onTick func()) *questionTimer {
	return &questionTimer{
		interval: interval,
		onTick:   onTick,
		done:     make(chan struct{}),
	}
}

// Start begins ticking. Calling Start on a running or stopped timer is a no-op.
func (t *questionTimer) Start() {
	t.mu.Lock()
	if t.stopped || t.ticker != nil {
		t.mu.Unlock()
		return
	}
	t.ticker = time.NewTicker(t.interval)
	ticker := t.ticker
	done := t.done
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				t.onTick()
			case <-done:
				return
			}
		}
	}()
}

// Reset re-aligns the countdown so the next tick arrives a full interval from now.
func (t *questionTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.ticker == nil {
		return
	}
	t.ticker.Reset(t.interval)
}

// ScheduleGrace arms a one-shot callback after d, replacing any pending one.
func (t *questionTimer) ScheduleGrace(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.grace != nil {
		t.grace.Stop()
	}
	t.grace = time.AfterFunc(d, fn)
}

// CancelGrace drops any pending grace callback. Safe to call when none is armed.
func (t *questionTimer) CancelGrace() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.grace != nil {
		t.grace.Stop()
		t.grace = nil
	}
}

// Stop shuts the timer down for good, including any pending grace callback.
func (t *questionTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	if t.ticker != nil {
		t.ticker.Stop()
	}
	if t.grace != nil {
		t.grace.Stop()
		t.grace = nil
	}
	close(t.done)
}
