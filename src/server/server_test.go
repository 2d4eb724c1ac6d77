package server

import (
	"context"
	"errors"
	"omweso/src"
	"omweso/src/base"
	"omweso/src/engine"
	"omweso/src/engine/players"
	"omweso/src/logx"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortTiming() engine.Timing {
	return engine.Timing{
		Timeout:      30 * time.Millisecond,
		Cushion:      10 * time.Millisecond,
		FirstTimeout: 30 * time.Millisecond,
		FirstCushion: 10 * time.Millisecond,
	}
}

// scripted answers with a fixed move or error
type scripted struct {
	mv  base.Move
	err error
}

func (p scripted) Name() string { return "scripted" }

func (p scripted) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	return p.mv, p.err
}

// hung never answers and ignores its context
type hung struct{ release chan struct{} }

func (p hung) Name() string { return "hung" }

func (p hung) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	<-p.release
	return base.Move{}, nil
}

// waits for the context, like a human nobody answers for
type waiting struct{}

func (waiting) Name() string { return "waiting" }

func (waiting) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	<-ctx.Done()
	return base.Move{}, ctx.Err()
}

func newGame(t *testing.T) *src.Game {
	t.Helper()
	g, err := src.NewGame(4, 8, logx.Nop())
	require.NoError(t, err)
	return g
}

func TestRandomMatchFinishes(t *testing.T) {
	g := newGame(t)
	s := New(g, players.NewRandom(1), players.NewRandom(2), engine.DefaultTiming(), logx.Nop())
	events := make(chan Event, 4096)
	unsubscribe := s.Subscribe(events)
	defer unsubscribe()

	status, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Finished())

	st, reason := s.Result()
	assert.Equal(t, status, st)
	assert.Equal(t, NoForfeit, reason)
	assert.Contains(t, g.Record(), `[P0 "random"]`)

	moves := 0
	var last Event
	for len(events) > 0 {
		last = <-events
		if last.Kind == EventMove {
			moves++
		}
	}
	assert.Equal(t, EventGameOver, last.Kind)
	assert.Equal(t, g.CountMoves(), moves)
}

func TestVerySlowStartForfeitsOnTime(t *testing.T) {
	g := newGame(t)
	tm := shortTiming()
	slower := tm
	slower.FirstCushion += 50 * time.Millisecond
	s := New(g, players.NewVerySlowStart(1, slower), players.NewRandom(2), tm, logx.Nop())

	status, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, base.PlayerOneWon, status)
	_, reason := s.Result()
	assert.Equal(t, ForfeitTimeout, reason)
	assert.Equal(t, base.PlayerOneWon, g.Status())
	assert.Zero(t, g.CountMoves())
}

func TestHungPlayerForfeits(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	tm := shortTiming()
	s := New(newGame(t), players.NewRandom(1), hung{release}, tm, logx.Nop())

	start := time.Now()
	status, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, base.PlayerZeroWon, status)
	_, reason := s.Result()
	assert.Equal(t, ForfeitTimeout, reason)
}

func TestForfeitReasons(t *testing.T) {
	cases := []struct {
		name   string
		player engine.Player
		reason ForfeitReason
	}{
		{"error", scripted{err: errors.New("boom")}, ForfeitError},
		{"rejected", scripted{mv: base.NewPlayMove(base.PlayerZero, 0)}, ForfeitIllegal},
		{"wrong player", scripted{mv: base.NewInitMove(base.PlayerOne, []int{8, 0, 0, 0, 0, 0, 0, 0})}, ForfeitIllegal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t)
			s := New(g, tc.player, players.NewRandom(1), shortTiming(), logx.Nop())
			events := make(chan Event, 8)
			s.Subscribe(events)

			status, err := s.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, base.PlayerOneWon, status)

			ev := <-events
			assert.Equal(t, EventForfeit, ev.Kind)
			assert.Equal(t, base.PlayerZero, ev.Player)
			assert.Equal(t, tc.reason, ev.Reason)
			assert.Error(t, ev.Err)
			assert.Equal(t, EventGameOver, (<-events).Kind)
		})
	}
}

func TestStoppedMatchHasNoLoser(t *testing.T) {
	g := newGame(t)
	s := New(g, waiting{}, waiting{}, engine.DefaultTiming(), logx.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	status, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, base.Initializing, status)
	assert.Equal(t, base.Initializing, g.Status())
}

func TestRunWithoutPlayer(t *testing.T) {
	_, err := New(newGame(t), nil, players.NewRandom(1), shortTiming(), logx.Nop()).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestFinishedGameReturnsAtOnce(t *testing.T) {
	g, err := src.NewGameFromPosition("2,0,2,0,2,0,2,0/1,1,1,1,1,1,1,1 1 p 0 8 7", logx.Nop())
	require.NoError(t, err)
	s := New(g, waiting{}, waiting{}, engine.DefaultTiming(), logx.Nop())
	status, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, base.PlayerZeroWon, status)
}
