// Package human bridges a front end's controller to the player contract.
package human

import (
	"context"
	"errors"
	"omweso/src/base"
	"omweso/src/control"
	"omweso/src/engine"
	"time"
)

var ErrCanceled = errors.New("move request canceled")

// HandoffWait bounds the wait for a move that was taken from the
// controller just as the context ended.
const HandoffWait = 100 * time.Millisecond

// Requester is the part of the controller a human player talks to.
type Requester interface {
	RequestMove(l control.Listener) *control.Ticket
	Withdraw(t *control.Ticket) bool
}

// Human waits for the user to enter a move through the controller.
type Human struct {
	name string
	req  Requester
}

func New(name string, req Requester) *Human {
	if name == "" {
		name = "human"
	}
	return &Human{name: name, req: req}
}

func (h *Human) Name() string { return h.name }

// ChooseMove registers a request and blocks until the controller delivers
// or ctx ends. On ctx end the request is withdrawn unless a newer one
// replaced it.
func (h *Human) ChooseMove(ctx context.Context, _ engine.BoardState) (base.Move, error) {
	moves := make(chan base.Move, 1)
	ticket := h.req.RequestMove(control.ListenerFunc(func(mv base.Move) {
		select {
		case moves <- mv:
		default:
		}
	}))

	select {
	case mv := <-moves:
		return mv, nil
	case <-ctx.Done():
		if !h.req.Withdraw(ticket) {
			// Either the controller took the request and is about to call
			// the listener outside its lock, or a newer request replaced
			// ours and nothing will come.
			timer := time.NewTimer(HandoffWait)
			defer timer.Stop()
			select {
			case mv := <-moves:
				return mv, nil
			case <-timer.C:
			}
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return base.Move{}, ErrCanceled
		}
		return base.Move{}, ctx.Err()
	}
}
