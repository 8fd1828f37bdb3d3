package lessons

import "sync/atomic"

// Sequencer issues monotonically increasing request tickets. A result is
// applied only if its ticket is still the latest one issued, so a slow
// response can never overwrite a newer request's outcome.
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a new ticket, invalidating every earlier one.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// IsCurrent reports whether ticket is the most recent one issued.
func (s *Sequencer) IsCurrent(ticket uint64) bool {
	return ticket != 0 && s.last.Load() == ticket
}

// Invalidate discards the outstanding ticket without starting a request.
func (s *Sequencer) Invalidate() {
	s.last.Add(1)
}
