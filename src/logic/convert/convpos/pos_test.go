package convpos

import (
	"omweso/src/base"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBoardToPos(t *testing.T) {
	b := base.NewBoard(4, 8)
	assert.Equal(t, "0,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 8 8 0", ConvertBoardToPos(*b))

	b.Pits[0] = []int{2, 0, 2, 0, 2, 0, 2, 0}
	b.Pits[1] = []int{1, 1, 1, 1, 1, 1, 1, 1}
	b.Initialized = true
	b.SeedsRemaining = 0
	b.Turn = base.PlayerOne
	b.PlayTurns = 7
	assert.Equal(t, "2,0,2,0,2,0,2,0/1,1,1,1,1,1,1,1 1 p 0 8 7", ConvertBoardToPos(*b))
}

func TestConvertPosToBoard(t *testing.T) {
	cases := []string{
		"0,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 8 8 0",
		"3,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 5 8 0",
		"8,0,0,0,0,0,0,0/0,0,0,1,0,0,0,0 1 i 7 8 0",
		"2,0,2,0,2,0,2,0/1,1,1,1,1,1,1,1 1 p 0 8 7",
	}
	for _, pos := range cases {
		b, err := ConvertPosToBoard(pos)
		require.NoError(t, err, pos)
		assert.Equal(t, pos, ConvertBoardToPos(*b))
	}

	b, err := ConvertPosToBoard(cases[3])
	require.NoError(t, err)
	assert.True(t, b.Initialized)
	assert.Equal(t, [2]bool{true, true}, b.Placed)

	b, err = ConvertPosToBoard(cases[2])
	require.NoError(t, err)
	assert.False(t, b.Initialized)
	assert.True(t, b.Placed[base.PlayerZero])
}

func TestConvertPosToBoardRejects(t *testing.T) {
	cases := map[string]string{
		"fields":       "0,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 8 8",
		"no slash":     "0,0,0,0,0,0,0,0 0 i 8 8 0",
		"uneven":       "0,0,0,0,0,0,0,0/0,0,0,0,0,0 0 i 8 8 0",
		"too small":    "0,0,0,0/0,0,0,0 0 i 8 8 0",
		"turn":         "0,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 2 i 8 8 0",
		"phase":        "0,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 x 8 8 0",
		"negative":     "0,0,0,0,0,0,0,-1/0,0,0,0,0,0,0,0 0 i 8 8 0",
		"pool":         "1,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 8 8 0",
		"p1 early":     "0,0,0,0,0,0,0,0/1,0,0,0,0,0,0,0 0 i 8 8 0",
		"p0 not done":  "7,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 1 i 8 8 0",
		"lost seeds":   "2,0,2,0,2,0,2,0/1,1,1,1,1,1,1,0 1 p 0 8 7",
		"turns early":  "0,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 8 8 3",
		"not a number": "a,0,0,0,0,0,0,0/0,0,0,0,0,0,0,0 0 i 8 8 0",
	}
	for name, pos := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ConvertPosToBoard(pos)
			assert.ErrorIs(t, err, ErrInvalidPosition)
		})
	}
}

func TestMoveText(t *testing.T) {
	mv := base.NewInitMove(base.PlayerOne, []int{8, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, "init 8,0,0,0,0,0,0,0", ConvertMoveToText(mv))
	got, err := ConvertTextToMove(base.PlayerOne, "init 8,0,0,0,0,0,0,0")
	require.NoError(t, err)
	assert.True(t, mv.Equal(got))

	assert.Equal(t, "play 3", ConvertMoveToText(base.NewPlayMove(base.PlayerZero, 3)))
	got, err = ConvertTextToMove(base.PlayerZero, " play  3 ")
	require.NoError(t, err)
	assert.Equal(t, base.NewPlayMove(base.PlayerZero, 3), got)

	for _, bad := range []string{"", "play", "play x", "play -1", "jump 3", "init 1,,2"} {
		_, err := ConvertTextToMove(base.PlayerZero, bad)
		assert.ErrorIs(t, err, ErrInvalidPosition, bad)
	}
}
