// Package players holds the built-in automatic players.
package players

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"omweso/src/base"
	"omweso/src/engine"
	"omweso/src/engine/myengine"
	"sync"
	"time"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Random spreads its pool at random and plays a random legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	if err := ctx.Err(); err != nil {
		return base.Move{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !bs.IsInitialized() {
		return engine.SpreadInitMove(bs, r.rng), nil
	}
	return r.pick(bs.LegalMoves())
}

func (r *Random) pick(legal []base.Move) (base.Move, error) {
	if len(legal) == 0 {
		return base.Move{}, engine.ErrNoLegalMoves
	}
	return legal[r.rng.IntN(len(legal))], nil
}

// Slow piles its pool into the first pit, then thinks for half the
// cushion past the normal timeout before every move. It stays within
// the hard limit.
type Slow struct {
	random *Random
	delay  time.Duration
}

func NewSlow(seed uint64, timing engine.Timing) *Slow {
	return &Slow{random: NewRandom(seed), delay: timing.Timeout + timing.Cushion/2}
}

func (s *Slow) Name() string { return "slow" }

func (s *Slow) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	if !bs.IsInitialized() {
		return engine.PileInitMove(bs), nil
	}
	if err := engine.MinDelay(ctx, s.delay); err != nil {
		return base.Move{}, err
	}
	return s.random.ChooseMove(ctx, bs)
}

// VerySlowStart waits past the whole first-move budget before placing,
// so it always forfeits its initial assignment.
type VerySlowStart struct {
	random *Random
	delay  time.Duration
}

func NewVerySlowStart(seed uint64, timing engine.Timing) *VerySlowStart {
	return &VerySlowStart{random: NewRandom(seed), delay: timing.FirstTimeout + timing.FirstCushion}
}

func (v *VerySlowStart) Name() string { return "veryslow" }

func (v *VerySlowStart) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	if !bs.IsInitialized() {
		if err := engine.MinDelay(ctx, v.delay); err != nil {
			return base.Move{}, err
		}
		return engine.PileInitMove(bs), nil
	}
	return v.random.ChooseMove(ctx, bs)
}

// Names lists what New accepts besides "human", which front ends wire
// themselves.
func Names() []string {
	return []string{"random", "slow", "veryslow", "greedy"}
}

func New(name string, seed uint64, lvl engine.LevelAnalyze, timing engine.Timing) (engine.Player, error) {
	switch name {
	case "random":
		return NewRandom(seed), nil
	case "slow":
		return NewSlow(seed, timing), nil
	case "veryslow":
		return NewVerySlowStart(seed, timing), nil
	case "greedy":
		return myengine.NewGreedy(engine.LevelToParams(lvl), seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
}
