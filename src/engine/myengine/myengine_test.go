package myengine

import (
	"context"
	"omweso/src"
	"omweso/src/base"
	"omweso/src/engine"
	"omweso/src/logx"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyTakesCapture(t *testing.T) {
	// pit 2 ends in inner pit 4 facing 3 and 2 seeds; pit 0 relays without capture
	g, err := src.NewGameFromPosition("2,0,2,0,1,0,0,0/2,0,0,0,2,0,0,3 0 p 0 6 0", logx.Nop())
	require.NoError(t, err)

	e := NewGreedy(engine.SearchParams{MaxDepth: 1}, 1)
	mv, err := e.ChooseMove(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, base.NewPlayMove(base.PlayerZero, 2), mv)
}

func TestGreedyPlaysWholeGame(t *testing.T) {
	g, err := src.NewGame(4, 16, logx.Nop())
	require.NoError(t, err)
	e := NewGreedy(engine.SearchParams{MaxDepth: 2, MaxTimeMs: 20}, 3)

	for i := 0; !g.Status().Finished() && i < 300; i++ {
		mv, err := e.ChooseMove(context.Background(), g)
		require.NoError(t, err)
		require.True(t, g.IsLegal(mv), "%v on %s", mv, g.Position())
		_, err = g.ApplyMove(mv)
		require.NoError(t, err)
	}
	assert.Equal(t, 32, g.Board().TotalSeeds())
}

func TestGreedyPublishesDepths(t *testing.T) {
	g, err := src.NewGameFromPosition("2,0,2,0,1,0,0,0/2,0,0,0,2,0,0,3 0 p 0 6 0", logx.Nop())
	require.NoError(t, err)
	e := NewGreedy(engine.SearchParams{MaxDepth: 2}, 1)
	ch := make(chan AnalysisInfo, 8)
	unsubscribe := e.Subscribe(ch)

	_, err = e.ChooseMove(context.Background(), g)
	require.NoError(t, err)
	unsubscribe()

	require.NotEmpty(t, ch)
	first := <-ch
	assert.Equal(t, 1, first.Depth)
	assert.Positive(t, first.Nodes)
}

func TestGreedyStopsOnContext(t *testing.T) {
	g, err := src.NewGameFromPosition("2,0,2,0,1,0,0,0/2,0,0,0,2,0,0,3 0 p 0 6 0", logx.Nop())
	require.NoError(t, err)
	e := NewGreedy(engine.SearchParams{MaxDepth: 64}, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	mv, err := e.ChooseMove(ctx, g)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, g.IsLegal(mv))
}

func TestEvaluate(t *testing.T) {
	b := base.NewBoard(4, 0)
	b.Initialized = true
	b.Pits[0] = []int{3, 0, 0, 0, 0, 0, 0, 0}
	b.Pits[1] = []int{1, 0, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, 4*2+1, evaluate(b))
	b.Turn = base.PlayerOne
	assert.Equal(t, -(4*2 + 1), evaluate(b))
}
