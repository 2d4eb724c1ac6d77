package control

import (
	"omweso/src/base"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutKeepsSquareCells(t *testing.T) {
	for _, vp := range [][2]float64{{800, 300}, {300, 800}, {760, 356}} {
		l := NewLayout(8, vp[0], vp[1])
		require.Len(t, l.Centres, base.NumVisualPits(8))
		gameHeight := float64(base.NumRows) + BarrierHeight
		assert.InDelta(t, l.W/l.H, 8/gameHeight, 1e-9, "viewport %v", vp)
		assert.LessOrEqual(t, l.XOff+l.W, vp[0]-BorderX+1e-9)
		assert.LessOrEqual(t, l.YOff+l.H, vp[1]-BorderY+1e-9)
	}
}

func TestLayoutHitTestCentres(t *testing.T) {
	l := NewLayout(6, 640, 400)
	for v := 0; v < base.NumVisualPits(6); v++ {
		c, ok := l.Centre(v)
		require.True(t, ok)
		got, ok := l.HitTest(c.X, c.Y)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := l.HitTest(0, 0)
	assert.False(t, ok)
	_, ok = l.Centre(24)
	assert.False(t, ok)
}

func TestLayoutTooSmall(t *testing.T) {
	l := NewLayout(8, 10, 10)
	_, ok := l.HitTest(5, 5)
	assert.False(t, ok)
	assert.Len(t, l.Centres, 32)
}
