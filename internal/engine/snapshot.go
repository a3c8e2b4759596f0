package engine

import "github.com/Satvikjoshi17/PrepForge/internal/domain"

// QuestionView is the taker-facing projection of the question in view.
// CorrectAnswer and Explanation stay empty until practice mode reveals them.
type QuestionView struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	Options       []string          `json:"options"`
	Difficulty    domain.Difficulty `json:"difficulty,omitempty"`
	Topic         string            `json:"topic,omitempty"`
	CorrectAnswer string            `json:"correctAnswer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// Snapshot is the observable session state pushed to subscribers on every
// accepted transition and countdown decrement.
type Snapshot struct {
	Phase     domain.Phase           `json:"phase"`
	Mode      domain.Mode            `json:"mode,omitempty"`
	Index     int                    `json:"index"`
	Total     int                    `json:"total"`
	Remaining int                    `json:"remaining"`
	Selected  string                 `json:"selected,omitempty"`
	Checked   bool                   `json:"checked"`
	Expired   bool                   `json:"expired"`
	Question  *QuestionView          `json:"question,omitempty"`
	Results   *domain.ResultsSummary `json:"results,omitempty"`
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot now and after every change.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the stale snapshot so a slow consumer never blocks the session.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:     s.phase,
		Mode:      s.mode,
		Index:     s.current,
		Total:     len(s.pool),
		Remaining: s.remaining,
		Checked:   s.checked,
		Expired:   s.expired,
		Results:   s.results,
	}
	if s.phase == domain.PhaseInProgress {
		q := s.pool[s.current]
		view := &QuestionView{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Topic:      q.Topic,
		}
		if s.mode == domain.ModePractice && s.checked {
			view.CorrectAnswer = q.CorrectAnswer
			view.Explanation = q.Explanation
		}
		snap.Question = view
		snap.Selected, _ = s.ledger.Selection(q.ID)
	}
	return snap
}
