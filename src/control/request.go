package control

import (
	"omweso/src/base"
	"sync/atomic"
)

// Listener receives the move a user entered for an outstanding request.
type Listener interface {
	MoveEntered(mv base.Move)
}

type ListenerFunc func(mv base.Move)

func (f ListenerFunc) MoveEntered(mv base.Move) { f(mv) }

// Ticket identifies one registration; see RequestSlot.Withdraw.
type Ticket struct {
	listener Listener
}

// RequestSlot holds at most one pending listener. Registering replaces
// the previous one silently; taking empties the slot in the same atomic
// step, so a listener is notified at most once.
type RequestSlot struct {
	pending atomic.Pointer[Ticket]
}

func (s *RequestSlot) RequestMove(l Listener) *Ticket {
	if l == nil {
		s.pending.Store(nil)
		return nil
	}
	t := &Ticket{listener: l}
	s.pending.Store(t)
	return t
}

// safe to call any number of times, pending or not
func (s *RequestSlot) CancelMoveRequest() {
	s.pending.Store(nil)
}

// Withdraw clears the slot only if t is still the pending request, so a
// requester never cancels a newer registration.
func (s *RequestSlot) Withdraw(t *Ticket) bool {
	if t == nil {
		return false
	}
	return s.pending.CompareAndSwap(t, nil)
}

func (s *RequestSlot) Pending() bool {
	return s.pending.Load() != nil
}

func (s *RequestSlot) take() Listener {
	t := s.pending.Swap(nil)
	if t == nil {
		return nil
	}
	return t.listener
}
