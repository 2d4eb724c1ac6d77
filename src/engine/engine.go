package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"omweso/src/base"
	"time"
)

// time a player may take before the server forfeits it; the cushion
// absorbs scheduling jitter
const (
	DefaultTimeout          = 2 * time.Second
	DefaultTimeoutCushion   = 1 * time.Second
	FirstMoveTimeout        = 30 * time.Second
	FirstMoveTimeoutCushion = 1 * time.Second
)

var ErrNoLegalMoves = errors.New("no legal moves")

// BoardState is the read-only view a player decides on.
type BoardState interface {
	Size() int
	Pool() int
	IsInitialized() bool
	Turn() base.PlayerID
	SeedsRemaining() int
	NumSeeds(p base.PlayerID, pit int) int
	LegalMoves() []base.Move
	Board() base.Board
}

// Player chooses one move per call: a complete initial assignment while
// the board is not initialized, one of LegalMoves afterwards.
type Player interface {
	Name() string
	ChooseMove(ctx context.Context, bs BoardState) (base.Move, error)
}

type Timing struct {
	Timeout      time.Duration
	Cushion      time.Duration
	FirstTimeout time.Duration
	FirstCushion time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Timeout:      DefaultTimeout,
		Cushion:      DefaultTimeoutCushion,
		FirstTimeout: FirstMoveTimeout,
		FirstCushion: FirstMoveTimeoutCushion,
	}
}

// Budget is the hard limit for one decision; first is a player's
// initial assignment.
func (t Timing) Budget(first bool) time.Duration {
	if first {
		return t.FirstTimeout + t.FirstCushion
	}
	return t.Timeout + t.Cushion
}

// MinDelay waits d or until ctx is done, whichever comes first.
func MinDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type paced struct {
	Player
	perMove   time.Duration
	firstMove time.Duration
}

// WithMinLatency makes p take at least perMove per decision, and at
// least firstMove for its initial assignment. The wait follows the
// decision and holds no game lock.
func WithMinLatency(p Player, perMove, firstMove time.Duration) Player {
	if perMove <= 0 && firstMove <= 0 {
		return p
	}
	return &paced{Player: p, perMove: perMove, firstMove: firstMove}
}

func (p *paced) ChooseMove(ctx context.Context, bs BoardState) (base.Move, error) {
	start := time.Now()
	wait := p.perMove
	if !bs.IsInitialized() {
		wait = p.firstMove
	}
	mv, err := p.Player.ChooseMove(ctx, bs)
	if err != nil {
		return mv, err
	}
	if err := MinDelay(ctx, wait-time.Since(start)); err != nil {
		return base.Move{}, err
	}
	return mv, nil
}

// ---- initial assignments ----

// every seed of the pool in pit 0
func PileInitMove(bs BoardState) base.Move {
	seeds := make([]int, 2*bs.Size())
	seeds[0] = bs.Pool()
	return base.NewInitMove(bs.Turn(), seeds)
}

// pool dropped seed by seed into random pits
func SpreadInitMove(bs BoardState, rng *rand.Rand) base.Move {
	seeds := make([]int, 2*bs.Size())
	for i := 0; i < bs.Pool(); i++ {
		seeds[rng.IntN(len(seeds))]++
	}
	return base.NewInitMove(bs.Turn(), seeds)
}

// ---- search levels ----

type SearchParams struct {
	MaxDepth  int
	MaxTimeMs int64 // 0 = bounded by the context only
}

type LevelAnalyze int

const (
	LevelOne LevelAnalyze = iota + 1
	LevelTwo
	LevelThree
	LevelFour
	LevelFive
	LevelInvalid
)

func LevelToParams(lvl LevelAnalyze) SearchParams {
	switch lvl {
	case LevelOne:
		return SearchParams{MaxDepth: 1, MaxTimeMs: 200}
	case LevelTwo:
		return SearchParams{MaxDepth: 2, MaxTimeMs: 400}
	case LevelThree:
		return SearchParams{MaxDepth: 3, MaxTimeMs: 800}
	case LevelFour:
		return SearchParams{MaxDepth: 4, MaxTimeMs: 1200}
	default:
		return SearchParams{MaxDepth: 6, MaxTimeMs: 1500}
	}
}
