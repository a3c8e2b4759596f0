package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestQuestionTimerStopIsIdempotent(t *testing.T) {
	var ticks atomic.Int32
	timer := newQuestionTimer(5*time.Millisecond, func() { ticks.Add(1) })
	timer.Start()

	time.Sleep(30 * time.Millisecond)
	timer.Stop()
	timer.Stop()

	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Fatalf("expected no ticks after stop, got %d -> %d", after, got)
	}
}

func TestGraceCancelBeforeFiring(t *testing.T) {
	var fired atomic.Bool
	timer := newQuestionTimer(time.Second, func() {})
	defer timer.Stop()

	timer.ScheduleGrace(20*time.Millisecond, func() { fired.Store(true) })
	timer.CancelGrace()
	timer.CancelGrace() // cancelling with nothing armed is a no-op

	time.Sleep(50 * time.Millisecond)
	if fired.Load() {
		t.Fatalf("expected cancelled grace callback not to fire")
	}
}

func TestGraceReplacedBySecondSchedule(t *testing.T) {
	var first, second atomic.Bool
	timer := newQuestionTimer(time.Second, func() {})
	defer timer.Stop()

	timer.ScheduleGrace(20*time.Millisecond, func() { first.Store(true) })
	timer.ScheduleGrace(20*time.Millisecond, func() { second.Store(true) })

	time.Sleep(60 * time.Millisecond)
	if first.Load() {
		t.Fatalf("expected replaced grace callback not to fire")
	}
	if !second.Load() {
		t.Fatalf("expected replacement grace callback to fire")
	}
}

func TestStopCancelsPendingGrace(t *testing.T) {
	var fired atomic.Bool
	timer := newQuestionTimer(time.Second, func() {})
	timer.ScheduleGrace(20*time.Millisecond, func() { fired.Store(true) })
	timer.Stop()

	time.Sleep(50 * time.Millisecond)
	if fired.Load() {
		t.Fatalf("expected stop to cancel the pending grace callback")
	}
}
