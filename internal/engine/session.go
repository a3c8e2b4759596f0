package engine

import (
	"sync"
	"time"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

const (
	defaultGraceDelay   = 1500 * time.Millisecond
	defaultTickInterval = time.Second
)

// Config parameterizes a session. TickInterval and GraceDelay exist so tests
// can compress real time; production callers leave them zero.
type Config struct {
	PerQuestionSeconds int
	GraceDelay         time.Duration
	TickInterval       time.Duration
}

// Session is one quiz attempt, from mode selection to completion. All
// operations are synchronous transformations serialized by one mutex; timer
// callbacks take the same lock, so a selection arriving after the final tick
// has been processed is rejected deterministically.
//
// Invalid operations are rejected as no-ops: every operation reports whether
// it was accepted, and rejected calls leave the session unchanged.
type Session struct {
	mu   sync.Mutex
	pool []domain.Question
	cfg  Config

	phase     domain.Phase
	mode      domain.Mode
	current   int
	remaining int
	checked   bool
	expired   bool
	ledger    Ledger
	results   *domain.ResultsSummary

	timer       *questionTimer
	subscribers map[chan Snapshot]struct{}
}

// NewSession builds a session over an immutable, non-empty question pool.
func NewSession(pool []domain.Question, cfg Config) (*Session, error) {
	if len(pool) == 0 {
		return nil, domain.ErrNoQuestions
	}
	if cfg.PerQuestionSeconds <= 0 {
		cfg.PerQuestionSeconds = 30
	}
	if cfg.GraceDelay <= 0 {
		cfg.GraceDelay = defaultGraceDelay
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	s := &Session{
		pool:        pool,
		cfg:         cfg,
		phase:       domain.PhaseModeSelect,
		ledger:      NewLedger(),
		subscribers: make(map[chan Snapshot]struct{}),
	}
	s.timer = newQuestionTimer(cfg.TickInterval, s.handleTick)
	return s, nil
}

// Start begins the attempt in the given mode. Valid only from mode selection.
func (s *Session) Start(mode domain.Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseModeSelect {
		return false
	}
	if mode != domain.ModeTest && mode != domain.ModePractice {
		return false
	}
	s.mode = mode
	s.current = 0
	s.resetQuestionLocked()
	s.phase = domain.PhaseInProgress
	s.timer.Start()
	s.broadcastLocked()
	return true
}

// SelectAnswer records option for the question in view, overwriting any prior
// selection. Rejected once the question is locked by expiry or a practice check.
func (s *Session) SelectAnswer(option string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress {
		return false
	}
	if s.expired || (s.mode == domain.ModePractice && s.checked) {
		return false
	}
	s.ledger.Record(s.pool[s.current].ID, option)
	s.broadcastLocked()
	return true
}

// CheckAnswer commits the current selection in practice mode: correctness and
// explanation become visible, further selection is frozen, and the countdown
// stops. Requires a selection; a second call is a no-op.
func (s *Session) CheckAnswer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress || s.mode != domain.ModePractice {
		return false
	}
	if s.checked || !s.ledger.Has(s.pool[s.current].ID) {
		return false
	}
	s.checked = true
	s.broadcastLocked()
	return true
}

// Advance moves to the next question, or completes the attempt from the last
// one. Test mode requires an answer or an expired timer; practice mode
// requires the current question to have been checked.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress {
		return false
	}
	switch s.mode {
	case domain.ModeTest:
		if !s.ledger.Has(s.pool[s.current].ID) && !s.expired {
			return false
		}
	case domain.ModePractice:
		if !s.checked {
			return false
		}
	}
	s.advanceLocked()
	return true
}

// GoBack returns to the previous question. Recorded answers are preserved, but
// the question re-enters an unchecked, unexpired state with a fresh countdown.
func (s *Session) GoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress || s.current == 0 {
		return false
	}
	s.current--
	s.resetQuestionLocked()
	s.broadcastLocked()
	return true
}

// EndEarly completes the attempt immediately; unanswered questions score as
// incorrect.
func (s *Session) EndEarly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress {
		return false
	}
	s.completeLocked()
	s.broadcastLocked()
	return true
}

// Close tears the session down, cancelling the timer so no stale tick or grace
// callback can mutate it. Idempotent.
func (s *Session) Close() {
	s.timer.Stop()
}

// Results returns the summary once the attempt has completed.
func (s *Session) Results() (domain.ResultsSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return domain.ResultsSummary{}, false
	}
	return *s.results, true
}

// handleTick is the timer callback: one countdown decrement for the question
// in view. Ordering relative to user operations is fixed by the session mutex.
func (s *Session) handleTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress || s.expired {
		return
	}
	if s.mode == domain.ModePractice && s.checked {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.expireLocked()
	}
	s.broadcastLocked()
}

// expireLocked fires when the countdown reaches zero. A question with no
// selection gets the expiry sentinel; test mode then auto-advances after the
// grace delay so the taker sees the expiry state first.
func (s *Session) expireLocked() {
	questionID := s.pool[s.current].ID
	if !s.ledger.Has(questionID) {
		s.ledger.Record(questionID, domain.TimeExpired)
	}
	s.expired = true
	if s.mode == domain.ModeTest {
		s.timer.ScheduleGrace(s.cfg.GraceDelay, s.graceAdvance)
	}
}

func (s *Session) graceAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The taker may have advanced or ended the attempt during the grace window.
	if s.phase != domain.PhaseInProgress || !s.expired {
		return
	}
	s.advanceLocked()
}

func (s *Session) advanceLocked() {
	if s.current == len(s.pool)-1 {
		s.completeLocked()
	} else {
		s.current++
		s.resetQuestionLocked()
	}
	s.broadcastLocked()
}

func (s *Session) resetQuestionLocked() {
	s.remaining = s.cfg.PerQuestionSeconds
	s.checked = false
	s.expired = false
	s.timer.CancelGrace()
	s.timer.Reset()
}

func (s *Session) completeLocked() {
	s.phase = domain.PhaseCompleted
	s.timer.Stop()
	summary := Score(s.pool, s.ledger)
	s.results = &summary
}
