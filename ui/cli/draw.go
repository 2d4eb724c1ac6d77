package cli

import (
	"fmt"
	"io"
	"omweso/src/base"
	"strings"
)

const (
	reset    = "\033[0m"
	cursor   = "\033[7m" // reverse video
	p0F      = "\033[33m"
	p1F      = "\033[36m"
	dimF     = "\033[90m"
	clearScr = "\033[H\033[2J"
)

var rowLetters = [base.NumRows]byte{'a', 'b', 'c', 'd'}

// DrawBoard prints the four rows in visual order with the logical pit
// index under each count. While seeds are being placed the counts of the
// player not placing are hidden. cur < 0 draws no cursor; color false
// drops ANSI codes.
func DrawBoard(w io.Writer, b base.Board, cur int, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	n := b.Size
	header := "   "
	for col := 0; col < n; col++ {
		header += fmt.Sprintf("%4d", col)
	}
	fmt.Fprintln(w, header)

	for row := 0; row < base.NumRows; row++ {
		if row == base.RowInnerOne {
			fmt.Fprintln(w, "   "+strings.Repeat("----", n))
		}
		var cells, labels strings.Builder
		for col := 0; col < n; col++ {
			visual := row*n + col
			pit, err := base.ConvVisualToPit(n, visual)
			if err != nil {
				continue
			}
			text := fmt.Sprintf("%3d", b.NumSeeds(pit.Player, pit.Index))
			if !b.Initialized && pit.Player != b.Turn {
				text = "  ?"
			}
			code := p0F
			if pit.Player == base.PlayerOne {
				code = p1F
			}
			if visual == cur {
				code = cursor
				if !color {
					text = "[" + strings.TrimSpace(text) + "]"
					text = fmt.Sprintf("%3s", text)
				}
			}
			cells.WriteString(" ")
			cells.WriteString(paint(code, text))
			labels.WriteString(fmt.Sprintf("%4d", pit.Index))
		}
		fmt.Fprintf(w, "%c  %s\n", rowLetters[row], cells.String())
		fmt.Fprintf(w, "   %s\n", paint(dimF, labels.String()))
	}
}

// DrawStatus prints whose turn it is, the pool left while placing and
// the result once the game is over.
func DrawStatus(w io.Writer, b base.Board, status base.GameStatus) {
	fmt.Fprintln(w)
	switch {
	case status.Finished():
		fmt.Fprintf(w, "Game over: %s\n", statusString(status))
	case !b.Initialized:
		fmt.Fprintf(w, "%s places seeds. Seeds left: %d\n", b.Turn, b.SeedsRemaining)
	default:
		fmt.Fprintf(w, "%s to move. Seeds: P0 %d, P1 %d\n",
			b.Turn, b.SeedsOf(base.PlayerZero), b.SeedsOf(base.PlayerOne))
	}
}

func statusString(s base.GameStatus) string {
	switch s {
	case base.PlayerZeroWon:
		return "P0 wins"
	case base.PlayerOneWon:
		return "P1 wins"
	case base.Draw:
		return "draw"
	default:
		return s.String()
	}
}
