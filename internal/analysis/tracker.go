package analysis

import "sync"

// Ticket identifies one selection. A response fetched for a ticket is only
// displayed while the ticket is still the scope's current selection.
type Ticket struct {
	Scope      string
	DocumentID int64
	Generation uint64
}

type selection struct {
	documentID int64
	generation uint64
}

// Tracker records the selected document per scope with a generation counter.
type Tracker struct {
	mu     sync.Mutex
	scopes map[string]selection
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{scopes: make(map[string]selection)}
}

// Select makes documentID the current selection for scope and returns its ticket.
// Every call starts a new generation, even when re-selecting the same document.
func (t *Tracker) Select(scope string, documentID int64) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.scopes[scope]
	next := selection{documentID: documentID, generation: cur.generation + 1}
	t.scopes[scope] = next
	return Ticket{Scope: scope, DocumentID: documentID, Generation: next.generation}
}

// Current returns the scope's current ticket.
func (t *Tracker) Current(scope string) (Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.scopes[scope]
	if !ok {
		return Ticket{}, false
	}
	return Ticket{Scope: scope, DocumentID: cur.documentID, Generation: cur.generation}, true
}

// IsCurrent reports whether tk is still the scope's selection.
func (t *Tracker) IsCurrent(tk Ticket) bool {
	cur, ok := t.Current(tk.Scope)
	return ok && cur == tk
}

// Forget drops the scope's selection (e.g. on logout).
func (t *Tracker) Forget(scope string) {
	t.mu.Lock()
	delete(t.scopes, scope)
	t.mu.Unlock()
}
