package history

import (
	"errors"
	"fmt"
	"omweso/src/base"
	"omweso/src/logic/rules"
	"omweso/src/logic/rules/moves"
	"strings"
)

// append-only record of accepted moves
type History struct {
	info  *InfoGame
	moves []MoveEntry
}

type MoveEntry struct {
	Move     base.Move
	Captured int
	Board    base.Board // copy board after the move
}

func NewHistory() *History {
	return &History{moves: make([]MoveEntry, 0), info: NewInfoGame()}
}

func (h *History) Len() int { return len(h.moves) }

func (h *History) Moves() []MoveEntry {
	out := make([]MoveEntry, len(h.moves))
	copy(out, h.moves)
	return out
}

// Check move, apply it to the board and push to history
func (h *History) PushMove(b *base.Board, mv base.Move) (MoveEntry, error) {
	if b == nil {
		return MoveEntry{}, errors.New("nil board")
	}
	if rules.GameStatusOf(b).Finished() {
		return MoveEntry{}, fmt.Errorf("%w: game is over", moves.ErrWrongPhase)
	}

	entry := MoveEntry{Move: mv}
	if mv.IsInit() {
		if err := moves.ApplyInit(b, mv); err != nil {
			return MoveEntry{}, err
		}
	} else {
		res, err := moves.ApplyPlay(b, mv)
		if err != nil {
			return MoveEntry{}, err
		}
		entry.Captured = res.Captured
	}
	entry.Board = *b.Clone()
	h.moves = append(h.moves, entry)
	return entry, nil
}

// board after the last move, nil for an empty history
func (h *History) Last() *base.Board {
	if h.Len() == 0 {
		return nil
	}
	return h.moves[h.Len()-1].Board.Clone()
}

// returned string with all moves, one per line
// example: "1. P0 init 32,0,0,...\n2. P1 init ...\n3. P0 play 0 (+4)"
func (h *History) MovesAsRecord() string {
	if h == nil || h.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range h.moves {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, e.Move))
		if e.Captured > 0 {
			b.WriteString(fmt.Sprintf(" (+%d)", e.Captured))
		}
		if i+1 < h.Len() {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// headers followed by the moves
func (h *History) Record() string {
	var b strings.Builder
	for _, tag := range h.info.Tags() {
		b.WriteString(fmt.Sprintf("[%s %q]\n", tag, h.info.Get(tag)))
	}
	if h.info.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(h.MovesAsRecord())
	return b.String()
}

func (h *History) InfoGame() *InfoGame {
	return h.info
}
