package engine

// Ledger maps a question ID to the taker's selection for that question,
// or to domain.TimeExpired when the countdown ran out with no selection.
// Entries are overwritten freely until the question locks (expiry or a
// practice-mode check); the session enforces that, not the ledger.
type Ledger map[string]string

func NewLedger() Ledger {
	return make(Ledger)
}

// Record stores or overwrites the selection for a question.
func (l Ledger) Record(questionID, selection string) {
	l[questionID] = selection
}

// Selection returns the recorded selection, if any.
func (l Ledger) Selection(questionID string) (string, bool) {
	selection, ok := l[questionID]
	return selection, ok
}

// Has reports whether any selection (including the expiry sentinel) is recorded.
func (l Ledger) Has(questionID string) bool {
	_, ok := l[questionID]
	return ok
}
