package convpos

import (
	"fmt"
	"omweso/src/base"
	"strconv"
	"strings"
)

// move text, without the player:
//
//	init <c0>,<c1>,...,<c2N-1>
//	play <pit>

func ConvertMoveToText(mv base.Move) string {
	switch mv.Kind {
	case base.InitMove:
		parts := make([]string, len(mv.Seeds))
		for i, s := range mv.Seeds {
			parts[i] = strconv.Itoa(s)
		}
		return "init " + strings.Join(parts, ",")
	case base.PlayMove:
		return "play " + strconv.Itoa(mv.Pit)
	default:
		return "invalid"
	}
}

// ConvertTextToMove parses move text for player p. It checks the shape
// only; legality is up to the rules.
func ConvertTextToMove(p base.PlayerID, text string) (base.Move, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return base.Move{}, fmt.Errorf("%w: move %q", ErrInvalidPosition, text)
	}
	switch fields[0] {
	case "init":
		seeds, err := parsePits(fields[1])
		if err != nil {
			return base.Move{}, err
		}
		return base.NewInitMove(p, seeds), nil
	case "play":
		pit, err := strconv.Atoi(fields[1])
		if err != nil || pit < 0 {
			return base.Move{}, fmt.Errorf("%w: pit %q", ErrInvalidPosition, fields[1])
		}
		return base.NewPlayMove(p, pit), nil
	default:
		return base.Move{}, fmt.Errorf("%w: move kind %q", ErrInvalidPosition, fields[0])
	}
}
