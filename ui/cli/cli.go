package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"omweso/src"
	"omweso/src/base"
	"omweso/src/control"
	"omweso/src/server"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// escape sequences arrive in one burst; anything slower is a bare Esc
const escapeWait = 50 * time.Millisecond

var (
	ErrQuit       = errors.New("quit")
	ErrBadCommand = errors.New("bad command")
)

// CLI feeds terminal input into the controller and redraws the board
// when the server reports progress.
type CLI struct {
	game   *src.Game
	ctrl   *control.Controller
	events <-chan server.Event
	in     *os.File
	out    io.Writer

	mu     sync.Mutex // output and cursor
	cursor int
	color  bool
}

func NewCLI(game *src.Game, ctrl *control.Controller, events <-chan server.Event) *CLI {
	return &CLI{game: game, ctrl: ctrl, events: events, in: os.Stdin, out: os.Stdout, color: true}
}

// Run uses raw mode when stdin is a terminal:
// - arrows move the cursor
// - '+', space or Enter adds a seed / plays the pit
// - '-' or Backspace takes a seed back
// - 'q' or Ctrl+C quits
func (c *CLI) Run(ctx context.Context) error {
	fd := int(c.in.Fd())
	if !term.IsTerminal(fd) {
		return c.RunLineMode(ctx)
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode(ctx)
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	keys := make(chan byte)
	done := make(chan struct{})
	defer close(done)
	go readBytes(c.in, keys, done)

	c.redraw("arrows move, +/Enter add or play, - remove, q quit")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.redraw("")
			if ev.Kind == server.EventGameOver {
				return nil
			}
		case b, ok := <-keys:
			if !ok {
				return io.EOF
			}
			switch b {
			case 3, 'q', 'Q': // Ctrl+C
				return ErrQuit
			case 0x1b:
				if arrow, ok := readArrow(keys, escapeWait); ok {
					c.moveCursor(arrow)
				}
			case '+', ' ', '\r', '\n':
				c.press(control.InputIncrease)
			case '-', 127, 8:
				c.press(control.InputDecrease)
			}
		}
	}
}

// RunLineMode reads commands like "b3" or "a0-", one per line.
func (c *CLI) RunLineMode(ctx context.Context) error {
	c.color = false
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go readLines(c.in, lines, done)

	c.redraw("enter <row><col>[+|-], e.g. b3 or a0-, q to quit")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.redraw("")
			if ev.Kind == server.EventGameOver {
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				return io.EOF
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "q" || line == "quit" {
				return ErrQuit
			}
			if line == "pos" {
				c.printf("%s\n", c.game.Position())
				continue
			}
			visual, kind, err := ParseCommand(line, c.game.Size())
			if err != nil {
				c.printf("%v\n", err)
				continue
			}
			c.mu.Lock()
			c.cursor = visual
			c.mu.Unlock()
			if c.ctrl.PressPit(visual, kind) == control.Ignored {
				c.printf("ignored: %s\n", line)
				continue
			}
			c.redraw("")
		}
	}
}

// ParseCommand turns "<row letter><column>[+|-]" into a visual pit.
func ParseCommand(s string, size int) (int, control.InputKind, error) {
	kind := control.InputIncrease
	switch {
	case strings.HasSuffix(s, "-"):
		kind = control.InputDecrease
		s = strings.TrimSuffix(s, "-")
	case strings.HasSuffix(s, "+"):
		s = strings.TrimSuffix(s, "+")
	}
	if len(s) < 2 {
		return 0, kind, fmt.Errorf("%w: %q", ErrBadCommand, s)
	}
	row := strings.IndexByte(string(rowLetters[:]), s[0]|0x20)
	if row < 0 {
		return 0, kind, fmt.Errorf("%w: row %q", ErrBadCommand, s[0])
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil || col < 0 || col >= size {
		return 0, kind, fmt.Errorf("%w: column %q", ErrBadCommand, s[1:])
	}
	return row*size + col, kind, nil
}

func (c *CLI) press(kind control.InputKind) {
	c.mu.Lock()
	visual := c.cursor
	c.mu.Unlock()
	if c.ctrl.PressPit(visual, kind) != control.Ignored {
		c.redraw("")
	}
}

func (c *CLI) moveCursor(arrow byte) {
	n := c.game.Size()
	c.mu.Lock()
	row, col := base.VisualRow(n, c.cursor), base.VisualColumn(n, c.cursor)
	switch arrow {
	case 'A':
		row = (row + base.NumRows - 1) % base.NumRows
	case 'B':
		row = (row + 1) % base.NumRows
	case 'C':
		col = (col + 1) % n
	case 'D':
		col = (col + n - 1) % n
	}
	c.cursor = row*n + col
	c.mu.Unlock()
	c.redraw("")
}

func (c *CLI) redraw(hint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sb strings.Builder
	if c.color {
		sb.WriteString(clearScr)
	}
	cur := c.cursor
	if !c.color {
		cur = -1
	}
	DrawBoard(&sb, c.game.Board(), cur, c.color)
	DrawStatus(&sb, c.game.Board(), c.game.Status())
	if hint != "" {
		sb.WriteString(hint + "\n")
	}
	out := sb.String()
	if c.color {
		// raw mode needs explicit carriage returns
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	fmt.Fprint(c.out, out)
}

func (c *CLI) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// readBytes stops at EOF or, once done is closed, after the next key;
// a blocked terminal read cannot be interrupted.
func readBytes(r io.Reader, out chan<- byte, done <-chan struct{}) {
	defer close(out)
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		select {
		case out <- b:
		case <-done:
			return
		}
	}
}

// readArrow reads the rest of "ESC [ X" and returns X. A lone Esc, or a
// sequence that stalls for longer than wait, gives false.
func readArrow(keys <-chan byte, wait time.Duration) (byte, bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	var seq [2]byte
	for i := range seq {
		select {
		case b, ok := <-keys:
			if !ok {
				return 0, false
			}
			seq[i] = b
		case <-timer.C:
			return 0, false
		}
	}
	return seq[1], seq[0] == '['
}

func readLines(r io.Reader, out chan<- string, done <-chan struct{}) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case out <- scanner.Text():
		case <-done:
			return
		}
	}
}
