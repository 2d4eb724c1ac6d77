package moves

import (
	"omweso/src/base"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initialized size-4 board with the given pits, player 0 to move
func playBoard(p0, p1 []int) *base.Board {
	b := base.NewBoard(4, 8)
	copy(b.Pits[0], p0)
	copy(b.Pits[1], p1)
	b.Initialized = true
	b.Placed = [2]bool{true, true}
	b.SeedsRemaining = 0
	return b
}

func TestAddRemoveSeed(t *testing.T) {
	b := base.NewBoard(4, 3)

	assert.Equal(t, 2, AddSeed(b, base.PlayerZero, 5))
	assert.Equal(t, 1, AddSeed(b, base.PlayerZero, 5))
	assert.Equal(t, 2, b.Pits[0][5])

	// wrong player, bad pit
	assert.Equal(t, 1, AddSeed(b, base.PlayerOne, 5))
	assert.Equal(t, 1, AddSeed(b, base.PlayerZero, 8))
	assert.Equal(t, 0, b.Pits[1][5])

	assert.Equal(t, 0, AddSeed(b, base.PlayerZero, 0))
	// pool empty
	assert.Equal(t, 0, AddSeed(b, base.PlayerZero, 1))
	assert.Equal(t, 0, b.Pits[0][1])

	assert.Equal(t, 1, RemoveSeed(b, base.PlayerZero, 0))
	// already empty
	assert.Equal(t, 1, RemoveSeed(b, base.PlayerZero, 0))
	assert.Equal(t, 0, b.Pits[0][0])
}

func TestApplyInitSequence(t *testing.T) {
	b := base.NewBoard(4, 8)

	p0 := []int{8, 0, 0, 0, 0, 0, 0, 0}
	require.NoError(t, ApplyInit(b, base.NewInitMove(base.PlayerZero, p0)))
	assert.False(t, b.Initialized)
	assert.Equal(t, base.PlayerOne, b.Turn)
	assert.Equal(t, 8, b.SeedsRemaining)
	assert.Equal(t, p0, b.Pits[0])

	p1 := []int{1, 1, 1, 1, 1, 1, 1, 1}
	require.NoError(t, ApplyInit(b, base.NewInitMove(base.PlayerOne, p1)))
	assert.True(t, b.Initialized)
	assert.Equal(t, base.PlayerZero, b.Turn)
	assert.Equal(t, 0, b.SeedsRemaining)
	assert.Equal(t, 16, b.TotalSeeds())

	// no way back
	assert.ErrorIs(t, ApplyInit(b, base.NewInitMove(base.PlayerZero, p0)), ErrWrongPhase)
}

func TestCheckInitRejects(t *testing.T) {
	b := base.NewBoard(4, 8)
	cases := []struct {
		name string
		mv   base.Move
		err  error
	}{
		{"wrong player", base.NewInitMove(base.PlayerOne, []int{8, 0, 0, 0, 0, 0, 0, 0}), ErrWrongTurn},
		{"short vector", base.NewInitMove(base.PlayerZero, []int{8, 0, 0, 0}), ErrIllegalMove},
		{"wrong sum", base.NewInitMove(base.PlayerZero, []int{7, 0, 0, 0, 0, 0, 0, 0}), ErrIllegalMove},
		{"negative", base.NewInitMove(base.PlayerZero, []int{9, -1, 0, 0, 0, 0, 0, 0}), ErrIllegalMove},
		{"play move", base.NewPlayMove(base.PlayerZero, 0), ErrWrongPhase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, CheckInit(b, tc.mv), tc.err)
		})
	}
}

func TestGenerateLegalMoves(t *testing.T) {
	b := playBoard([]int{2, 1, 0, 3, 0, 0, 0, 2}, []int{1, 1, 1, 1, 1, 1, 1, 1})
	got := GenerateLegalMoves(b)
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 3, 7}, []int{got[0].Pit, got[1].Pit, got[2].Pit})

	assert.NoError(t, CheckPlay(b, base.NewPlayMove(base.PlayerZero, 3)))
	assert.ErrorIs(t, CheckPlay(b, base.NewPlayMove(base.PlayerZero, 1)), ErrIllegalMove)
	assert.ErrorIs(t, CheckPlay(b, base.NewPlayMove(base.PlayerOne, 0)), ErrWrongTurn)
	assert.ErrorIs(t, CheckPlay(base.NewBoard(4, 8), base.NewPlayMove(base.PlayerZero, 0)), ErrWrongPhase)
}

func TestSowSimple(t *testing.T) {
	b := playBoard([]int{2, 0, 0, 0, 0, 0, 0, 0}, []int{2, 0, 0, 0, 0, 0, 0, 0})
	res, err := ApplyPlay(b, base.NewPlayMove(base.PlayerZero, 0))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 1, 0, 0, 0, 0, 0}, b.Pits[0])
	assert.Equal(t, SowResult{Captured: 0, Laps: 0, LastPit: 2}, res)
	assert.Equal(t, base.PlayerOne, b.Turn)
	assert.Equal(t, 1, b.PlayTurns)
}

func TestSowWrapsAround(t *testing.T) {
	b := playBoard([]int{0, 0, 0, 0, 0, 0, 0, 3}, []int{2, 0, 0, 0, 0, 0, 0, 0})
	res, err := ApplyPlay(b, base.NewPlayMove(base.PlayerZero, 7))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 0, 0, 0}, b.Pits[0])
	assert.Equal(t, 2, res.LastPit)
}

func TestSowRelay(t *testing.T) {
	// last seed lands on an occupied outer pit: picked up and sown on
	b := playBoard([]int{2, 0, 1, 0, 0, 0, 0, 0}, []int{2, 0, 0, 0, 0, 0, 0, 0})
	res, err := ApplyPlay(b, base.NewPlayMove(base.PlayerZero, 0))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 0, 1, 1, 0, 0, 0}, b.Pits[0])
	assert.Equal(t, 1, res.Laps)
	assert.Equal(t, 4, res.LastPit)
	assert.Zero(t, res.Captured)
}

func TestSowCapture(t *testing.T) {
	// pit 4 is inner and faces player 1's pits 7 (inner) and 0 (outer)
	b := playBoard([]int{0, 0, 2, 0, 1, 0, 0, 0}, []int{2, 0, 0, 0, 2, 0, 0, 3})
	res, err := ApplyPlay(b, base.NewPlayMove(base.PlayerZero, 2))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Captured)
	// captured seeds are sown again from the starting pit
	assert.Equal(t, []int{0, 0, 1, 2, 3, 1, 1, 0}, b.Pits[0])
	assert.Equal(t, []int{0, 0, 0, 0, 2, 0, 0, 0}, b.Pits[1])
	assert.Equal(t, 6, res.LastPit)
	assert.Equal(t, 10, b.TotalSeeds())
}

func TestSowNoCaptureWhenOneFacingPitEmpty(t *testing.T) {
	b := playBoard([]int{0, 0, 2, 0, 1, 0, 0, 0}, []int{0, 0, 0, 0, 2, 0, 0, 3})
	res, err := ApplyPlay(b, base.NewPlayMove(base.PlayerZero, 2))
	require.NoError(t, err)

	assert.Zero(t, res.Captured)
	// relay from pit 4 instead
	assert.Equal(t, []int{0, 0, 0, 1, 0, 1, 1, 0}, b.Pits[0])
	assert.Equal(t, []int{0, 0, 0, 0, 2, 0, 0, 3}, b.Pits[1])
}

func TestSowConservesSeeds(t *testing.T) {
	b := playBoard([]int{3, 2, 4, 1, 2, 5, 0, 3}, []int{2, 2, 2, 2, 2, 2, 2, 2})
	total := b.TotalSeeds()
	for i := 0; i < 40; i++ {
		legal := GenerateLegalMoves(b)
		if len(legal) == 0 {
			break
		}
		res, err := ApplyPlay(b, legal[0])
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Laps, MaxLaps)
		require.Equal(t, total, b.TotalSeeds())
		for p := 0; p < 2; p++ {
			for _, s := range b.Pits[p] {
				require.GreaterOrEqual(t, s, 0)
			}
		}
	}
}
