package rules

import (
	"omweso/src/base"
	"testing"

	"github.com/stretchr/testify/assert"
)

func board(turn base.PlayerID, p0, p1 []int) *base.Board {
	b := base.NewBoard(4, 8)
	copy(b.Pits[0], p0)
	copy(b.Pits[1], p1)
	b.Initialized = true
	b.Placed = [2]bool{true, true}
	b.SeedsRemaining = 0
	b.Turn = turn
	return b
}

func TestGameStatusOf(t *testing.T) {
	full := []int{1, 1, 1, 1, 1, 1, 1, 1}
	some := []int{2, 0, 2, 0, 2, 0, 2, 0}

	assert.Equal(t, base.InvalidGame, GameStatusOf(nil))
	assert.Equal(t, base.Initializing, GameStatusOf(base.NewBoard(4, 8)))
	assert.Equal(t, base.Playing, GameStatusOf(board(base.PlayerZero, some, full)))

	// side to move has only single seeds
	assert.Equal(t, base.PlayerZeroWon, GameStatusOf(board(base.PlayerOne, some, full)))
	assert.Equal(t, base.PlayerOneWon, GameStatusOf(board(base.PlayerZero, full, some)))

	b := board(base.PlayerZero, some, some)
	b.PlayTurns = MaxPlayTurns
	assert.Equal(t, base.Draw, GameStatusOf(b))

	b.Turn = base.NoPlayer
	assert.Equal(t, base.InvalidGame, GameStatusOf(b))
}

func TestIsLegalMove(t *testing.T) {
	fresh := base.NewBoard(4, 8)
	assert.True(t, IsLegalMove(fresh, base.NewInitMove(base.PlayerZero, []int{0, 0, 0, 0, 0, 0, 0, 8})))
	assert.False(t, IsLegalMove(fresh, base.NewPlayMove(base.PlayerZero, 0)))

	b := board(base.PlayerZero, []int{2, 0, 2, 0, 2, 0, 2, 0}, []int{2, 0, 2, 0, 2, 0, 2, 0})
	assert.True(t, IsLegalMove(b, base.NewPlayMove(base.PlayerZero, 2)))
	assert.False(t, IsLegalMove(b, base.NewPlayMove(base.PlayerZero, 1)))
	assert.False(t, IsLegalMove(b, base.NewPlayMove(base.PlayerOne, 2)))
	assert.Len(t, LegalMoves(b), 4)

	b.PlayTurns = MaxPlayTurns
	assert.False(t, IsLegalMove(b, base.NewPlayMove(base.PlayerZero, 2)))
	assert.Empty(t, LegalMoves(b))
}
