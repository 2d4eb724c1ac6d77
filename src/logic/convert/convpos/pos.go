package convpos

import (
	"errors"
	"fmt"
	"omweso/src/base"
	"strconv"
	"strings"
)

// position string:
//
//	<p0 pits>/<p1 pits> <turn> <phase> <remaining> <pool> <play turns>
//
// pits are comma separated logical counts 0..2N-1, phase is "i" while
// seeds are being placed and "p" afterwards.
// example: "4,4,0,...,0/2,2,...,2 0 p 0 32 17"

var ErrInvalidPosition = errors.New("invalid position")

const (
	phaseInit = "i"
	phasePlay = "p"
)

func ConvertBoardToPos(board base.Board) string {
	var b strings.Builder
	for p := 0; p < 2; p++ {
		for i, s := range board.Pits[p] {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(s))
		}
		if p == 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(board.Turn)))
	b.WriteByte(' ')
	if board.Initialized {
		b.WriteString(phasePlay)
	} else {
		b.WriteString(phaseInit)
	}
	b.WriteString(fmt.Sprintf(" %d %d %d", board.SeedsRemaining, board.Pool, board.PlayTurns))
	return b.String()
}

func ConvertPosToBoard(pos string) (*base.Board, error) {
	fields := strings.Fields(pos)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: want 6 fields, got %d", ErrInvalidPosition, len(fields))
	}

	halves := strings.Split(fields[0], "/")
	if len(halves) != 2 {
		return nil, fmt.Errorf("%w: pits need exactly one '/'", ErrInvalidPosition)
	}
	var pits [2][]int
	for p, half := range halves {
		parsed, err := parsePits(half)
		if err != nil {
			return nil, err
		}
		pits[p] = parsed
	}
	if len(pits[0]) != len(pits[1]) || len(pits[0])%2 != 0 {
		return nil, fmt.Errorf("%w: uneven pit rows %d/%d", ErrInvalidPosition, len(pits[0]), len(pits[1]))
	}
	size := len(pits[0]) / 2
	if size < base.MinSize || size > base.MaxSize {
		return nil, fmt.Errorf("%w: board size %d", ErrInvalidPosition, size)
	}

	var turn base.PlayerID
	switch fields[1] {
	case "0":
		turn = base.PlayerZero
	case "1":
		turn = base.PlayerOne
	default:
		return nil, fmt.Errorf("%w: turn %q", ErrInvalidPosition, fields[1])
	}

	nums := make([]int, 3)
	for i, f := range fields[3:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: field %q", ErrInvalidPosition, f)
		}
		nums[i] = n
	}
	remaining, pool, turns := nums[0], nums[1], nums[2]

	b := base.NewBoard(size, pool)
	b.Pits = pits
	b.Turn = turn
	b.SeedsRemaining = remaining
	b.PlayTurns = turns

	switch fields[2] {
	case phaseInit:
		if turns != 0 {
			return nil, fmt.Errorf("%w: play turns during initialization", ErrInvalidPosition)
		}
		if remaining+b.SeedsOf(turn) != pool {
			return nil, fmt.Errorf("%w: %d remaining with %d placed, pool %d", ErrInvalidPosition, remaining, b.SeedsOf(turn), pool)
		}
		if turn == base.PlayerOne {
			if b.SeedsOf(base.PlayerZero) != pool {
				return nil, fmt.Errorf("%w: P0 placed %d of %d", ErrInvalidPosition, b.SeedsOf(base.PlayerZero), pool)
			}
			b.Placed[base.PlayerZero] = true
		} else if b.SeedsOf(base.PlayerOne) != 0 {
			return nil, fmt.Errorf("%w: P1 placed before P0", ErrInvalidPosition)
		}
	case phasePlay:
		if remaining != 0 || b.TotalSeeds() != 2*pool {
			return nil, fmt.Errorf("%w: %d seeds on board, want %d", ErrInvalidPosition, b.TotalSeeds(), 2*pool)
		}
		b.Initialized = true
		b.Placed = [2]bool{true, true}
	default:
		return nil, fmt.Errorf("%w: phase %q", ErrInvalidPosition, fields[2])
	}
	return b, nil
}

func parsePits(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: pit count %q", ErrInvalidPosition, part)
		}
		out[i] = n
	}
	return out, nil
}
