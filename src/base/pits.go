package base

import (
	"errors"
	"fmt"
)

var ErrInvalidPit = errors.New("invalid pit")

// Pit is a logical pit: player plus the pit index in [0, 2N) as seen by
// the rules engine.
type Pit struct {
	Player PlayerID
	Index  int
}

func (p Pit) String() string {
	return fmt.Sprintf("%s:%d", p.Player, p.Index)
}

// Visual rows, top to bottom. Rows 0 and 1 are player 0's half, rows 2
// and 3 player 1's. Rows 0 and 2 run right to left in logical order so
// that every player's pits 0..2N-1 form one loop around their half.
const (
	RowOuterZero = 0
	RowInnerZero = 1
	RowInnerOne  = 2
	RowOuterOne  = 3
	NumRows      = 4
)

func NumVisualPits(size int) int {
	return NumRows * size
}

func VisualRow(size, visual int) int {
	return visual / size
}

func VisualColumn(size, visual int) int {
	return visual % size
}

// ConvVisualToPit maps a row-major visual pit id in [0, 4N) to the
// player and logical pit that own it.
func ConvVisualToPit(size, visual int) (Pit, error) {
	if size < 1 || visual < 0 || visual >= NumVisualPits(size) {
		return Pit{Player: NoPlayer, Index: -1}, fmt.Errorf("visual pit %d on size %d: %w", visual, size, ErrInvalidPit)
	}
	col := visual % size
	switch visual / size {
	case RowOuterZero:
		return Pit{Player: PlayerZero, Index: size - 1 - col}, nil
	case RowInnerZero:
		return Pit{Player: PlayerZero, Index: size + col}, nil
	case RowInnerOne:
		return Pit{Player: PlayerOne, Index: 2*size - 1 - col}, nil
	default: // RowOuterOne
		return Pit{Player: PlayerOne, Index: col}, nil
	}
}

// ConvPitToVisual is the inverse of ConvVisualToPit.
func ConvPitToVisual(size int, p Pit) (int, error) {
	if size < 1 || !p.Player.IsValid() || p.Index < 0 || p.Index >= 2*size {
		return -1, fmt.Errorf("pit %s on size %d: %w", p, size, ErrInvalidPit)
	}
	outer := p.Index < size
	switch {
	case p.Player == PlayerZero && outer:
		return RowOuterZero*size + (size - 1 - p.Index), nil
	case p.Player == PlayerZero:
		return RowInnerZero*size + (p.Index - size), nil
	case outer:
		return RowOuterOne*size + p.Index, nil
	default:
		return RowInnerOne*size + (2*size - 1 - p.Index), nil
	}
}

func IsInnerPit(size, index int) bool {
	return index >= size && index < 2*size
}

// OppositePits returns the opponent's inner and outer pit facing the
// inner pit index. ok is false for outer pits.
func OppositePits(size, index int) (inner, outer int, ok bool) {
	if !IsInnerPit(size, index) {
		return -1, -1, false
	}
	return 3*size - 1 - index, index - size, true
}

// label drawn next to a visual pit: the logical index of that pit
func PitLabel(size, visual int) string {
	p, err := ConvVisualToPit(size, visual)
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%d", p.Index)
}
