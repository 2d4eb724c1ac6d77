package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshot(b *Board) Board { return *b.Clone() }

func TestBoardSnapshotCounts(t *testing.T) {
	b := NewBoard(4, 8)
	b.Pits[PlayerZero][0] = 5
	b.Pits[PlayerOne][7] = 3

	// read-only helpers work on a returned copy
	assert.Equal(t, 8, snapshot(b).TotalSeeds())
	assert.Equal(t, 5, snapshot(b).SeedsOf(PlayerZero))
	assert.Equal(t, 3, snapshot(b).NumSeeds(PlayerOne, 7))
	assert.Zero(t, snapshot(b).NumSeeds(PlayerOne, 8))
	assert.Zero(t, snapshot(b).SeedsOf(NoPlayer))
	assert.Equal(t, 8, snapshot(b).PitsPerPlayer())
	assert.False(t, snapshot(b).IsValidPit(PlayerZero, -1))
}

func TestBoardCloneIsDeep(t *testing.T) {
	b := NewBoard(4, 8)
	cp := b.Clone()
	cp.Pits[PlayerZero][2] = 4
	assert.Zero(t, b.Pits[PlayerZero][2])
}
