// Package control turns pointer input on the board into seed placements
// and moves, and hands finished moves to whoever requested one.
package control

import (
	"omweso/src/base"
	"omweso/src/logx"
	"sync"
)

type InputKind int

const (
	InputIncrease InputKind = iota // primary button
	InputDecrease                  // secondary button
)

type Mode int

const (
	ModePlacing Mode = iota
	ModePlaying
	ModeFinished
)

func (m Mode) String() string {
	switch m {
	case ModePlacing:
		return "placing"
	case ModePlaying:
		return "playing"
	default:
		return "finished"
	}
}

// Result tells a front end what a press did.
type Result int

const (
	Ignored   Result = iota
	Placed           // a seed count changed
	Delivered        // a move went to the pending listener
)

// Board is what the controller needs from the game.
type Board interface {
	Size() int
	Status() base.GameStatus
	IsInitialized() bool
	Turn() base.PlayerID
	SeedsRemaining() int
	AddSeed(p base.PlayerID, pit int) int
	RemoveSeed(p base.PlayerID, pit int) int
	InitMove() base.Move
	IsLegal(mv base.Move) bool
}

type Controller struct {
	mu     sync.Mutex
	board  Board
	layout Layout
	slot   RequestSlot
	logger logx.Logger
}

func NewController(b Board, logger logx.Logger) *Controller {
	return &Controller{
		board:  b,
		layout: NewLayout(b.Size(), 0, 0),
		logger: logger,
	}
}

// ---- move requests ----

func (c *Controller) RequestMove(l Listener) *Ticket {
	return c.slot.RequestMove(l)
}

func (c *Controller) CancelMoveRequest() {
	c.slot.CancelMoveRequest()
}

func (c *Controller) Withdraw(t *Ticket) bool {
	return c.slot.Withdraw(t)
}

func (c *Controller) Pending() bool {
	return c.slot.Pending()
}

// ---- layout ----

func (c *Controller) Resize(width, height float64) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.layout.Width != width || c.layout.Height != height {
		c.layout = NewLayout(c.board.Size(), width, height)
	}
	return c.layout
}

func (c *Controller) Layout() Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout
}

func (c *Controller) Mode() Mode {
	return modeOf(c.board)
}

func modeOf(b Board) Mode {
	switch {
	case b.Status().Finished():
		return ModeFinished
	case !b.IsInitialized():
		return ModePlacing
	default:
		return ModePlaying
	}
}

// ---- input ----

// Press handles a pointer event at (x, y) in viewport pixels.
func (c *Controller) Press(x, y float64, kind InputKind) Result {
	c.mu.Lock()
	visual, ok := c.layout.HitTest(x, y)
	if !ok {
		c.mu.Unlock()
		return Ignored
	}
	res, l, mv := c.pressPit(visual, kind)
	c.mu.Unlock()
	return c.deliver(res, l, mv)
}

// PressPit handles input that already names a visual pit.
func (c *Controller) PressPit(visual int, kind InputKind) Result {
	c.mu.Lock()
	res, l, mv := c.pressPit(visual, kind)
	c.mu.Unlock()
	return c.deliver(res, l, mv)
}

// listener is called outside the lock so it may register the next
// request or press again
func (c *Controller) deliver(res Result, l Listener, mv base.Move) Result {
	if res != Delivered {
		return res
	}
	c.logger.Infof("deliver %v", mv)
	l.MoveEntered(mv)
	return Delivered
}

func (c *Controller) pressPit(visual int, kind InputKind) (Result, Listener, base.Move) {
	// nobody waits for a move, e.g. an engine is thinking
	if !c.slot.Pending() {
		return Ignored, nil, base.Move{}
	}
	pit, err := base.ConvVisualToPit(c.board.Size(), visual)
	if err != nil {
		return Ignored, nil, base.Move{}
	}
	if pit.Player != c.board.Turn() {
		c.logger.Debugf("press on %v ignored: %v to move", pit, c.board.Turn())
		return Ignored, nil, base.Move{}
	}

	switch modeOf(c.board) {
	case ModePlacing:
		before := c.board.SeedsRemaining()
		var left int
		if kind == InputIncrease {
			left = c.board.AddSeed(pit.Player, pit.Index)
		} else {
			left = c.board.RemoveSeed(pit.Player, pit.Index)
		}
		switch {
		case left == before && left != 0:
			return Ignored, nil, base.Move{}
		case left != 0:
			return Placed, nil, base.Move{}
		}
		mv := c.board.InitMove()
		if l := c.slot.take(); l != nil {
			return Delivered, l, mv
		}
		// request withdrawn between the check and the last seed
		c.logger.Warnf("initial assignment of %v complete but no request pending", pit.Player)
		return Placed, nil, base.Move{}
	case ModePlaying:
		mv := base.NewPlayMove(pit.Player, pit.Index)
		if !c.board.IsLegal(mv) {
			c.logger.Debugf("illegal move %v ignored", mv)
			return Ignored, nil, base.Move{}
		}
		if l := c.slot.take(); l != nil {
			return Delivered, l, mv
		}
		return Ignored, nil, base.Move{}
	default:
		return Ignored, nil, base.Move{}
	}
}
