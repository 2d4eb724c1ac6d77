package control

import (
	"math"
	"omweso/src/base"
)

// board geometry, in pixels and grid units
const (
	BorderX       = 16.0
	BorderY       = 30.0
	PitOffset     = 2.0
	BarrierHeight = 0.7 // gap between the two halves, in grid cells
)

type Point struct {
	X, Y float64
}

// Layout places the 4N pits of a board inside a viewport. Centres are
// indexed by visual pit id.
type Layout struct {
	Size    int
	Width   float64 // viewport
	Height  float64
	XOff    float64 // top-left of the board area
	YOff    float64
	W       float64 // board area
	H       float64
	Grid    float64
	Radius  float64
	Centres []Point
}

// NewLayout fits four rows of size pits plus the barrier into the
// viewport, keeping cells square and centring the board.
func NewLayout(size int, width, height float64) Layout {
	l := Layout{Size: size, Width: width, Height: height, XOff: BorderX, YOff: BorderY}
	if size < 1 {
		return l
	}
	gameHeight := float64(base.NumRows) + BarrierHeight

	l.W = width - 2*BorderX
	l.H = height - 2*BorderY
	if l.W <= 0 || l.H <= 0 {
		l.W, l.H = 0, 0
		l.Centres = make([]Point, base.NumVisualPits(size))
		return l
	}

	if l.W/l.H > float64(size)/gameHeight {
		wPrime := l.H * float64(size) / gameHeight
		l.XOff += (l.W - wPrime) / 2
		l.W = wPrime
	} else {
		hPrime := l.W * gameHeight / float64(size)
		l.YOff += (l.H - hPrime) / 2
		l.H = hPrime
	}

	l.Grid = math.Floor(l.H / gameHeight)
	l.Radius = math.Floor((l.Grid - 2*PitOffset) / 2)

	l.Centres = make([]Point, base.NumVisualPits(size))
	for row := 0; row < base.NumRows; row++ {
		y := l.YOff + float64(row)*l.Grid
		if row > base.RowInnerZero {
			y += BarrierHeight * l.Grid
		}
		for col := 0; col < size; col++ {
			x := l.XOff + float64(col)*l.Grid
			l.Centres[row*size+col] = Point{
				X: x + PitOffset + l.Radius,
				Y: y + PitOffset + l.Radius,
			}
		}
	}
	return l
}

func (l Layout) Centre(visual int) (Point, bool) {
	if visual < 0 || visual >= len(l.Centres) {
		return Point{}, false
	}
	return l.Centres[visual], true
}

// HitTest returns the first pit, in visual order, whose circle contains
// the point.
func (l Layout) HitTest(x, y float64) (int, bool) {
	if l.Radius <= 0 {
		return -1, false
	}
	r2 := l.Radius * l.Radius
	for i, c := range l.Centres {
		dx, dy := c.X-x, c.Y-y
		if dx*dx+dy*dy < r2 {
			return i, true
		}
	}
	return -1, false
}
