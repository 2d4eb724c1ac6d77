// Package extern runs a player in a separate process speaking a line
// protocol over stdin/stdout:
//
//	-> omweso                  <- id name <name>, omwesook
//	-> isready                 <- readyok
//	-> position <position>
//	-> go <ms>                 <- move init 32,0,... | move play 3
//	-> quit
//
// Lines starting with "info " are logged and otherwise ignored.
package extern

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"omweso/src/base"
	"omweso/src/engine"
	"omweso/src/logic/convert/convpos"
	"omweso/src/logx"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	HandshakeTimeout = 2 * time.Second
	QuitTimeout      = 2 * time.Second
)

var (
	ErrNotStarted = errors.New("process not started")
	ErrStopped    = errors.New("process stopped")
)

type Process struct {
	path string
	args []string
	name string

	cmd *exec.Cmd
	in  io.WriteCloser
	out io.ReadCloser

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	lines  chan string

	// one decision at a time
	mu   sync.Mutex
	logx logx.Logger
}

// to start the process, call Init
func New(logger logx.Logger, path string, args ...string) *Process {
	return &Process{path: path, args: args, name: path, logx: logger}
}

func (e *Process) Name() string { return e.name }

func (e *Process) Init() error {
	if e.path == "" {
		return errors.New("empty player path")
	}

	cmd := exec.Command(e.path, e.args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("error connect to stdin of %s: %w", e.path, err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("error connect to stdout of %s: %w", e.path, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error start %s: %w", e.path, err)
	}

	e.cmd = cmd
	e.in = in
	e.out = out
	e.lines = make(chan string, 256)
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.wg.Add(1)
	go e.stdoutLoop()

	if err := e.exec("omweso"); err != nil {
		e.Close()
		return err
	}
	for {
		line, err := e.waitLine(e.ctx, HandshakeTimeout)
		if err != nil {
			e.Close()
			return fmt.Errorf("handshake with %s: %w", e.path, err)
		}
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			e.name = strings.TrimSpace(name)
			continue
		}
		if line == "omwesook" {
			break
		}
	}
	if err := e.checkReady(); err != nil {
		e.Close()
		return err
	}
	e.logx.Infof("open player process: %s", e.name)
	return nil
}

// ChooseMove sends the position and waits for a move line until ctx
// ends. The move is parsed for the player to move; legality is checked
// by whoever applies it.
func (e *Process) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	if e.cmd == nil {
		return base.Move{}, ErrNotStarted
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	// answers to an earlier, abandoned go
	e.drain()

	budget := int64(0)
	if dl, ok := ctx.Deadline(); ok {
		budget = time.Until(dl).Milliseconds()
	}
	if err := e.exec("position " + convpos.ConvertBoardToPos(bs.Board())); err != nil {
		return base.Move{}, err
	}
	if err := e.exec(fmt.Sprintf("go %d", budget)); err != nil {
		return base.Move{}, err
	}

	for {
		line, err := e.waitLine(ctx, 0)
		if err != nil {
			return base.Move{}, err
		}
		if text, ok := strings.CutPrefix(line, "move "); ok {
			return convpos.ConvertTextToMove(bs.Turn(), text)
		}
	}
}

func (e *Process) Close() {
	if e.cmd == nil {
		return
	}
	_ = e.exec("quit")
	_ = e.in.Close()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(QuitTimeout):
		if e.cmd.Process != nil {
			_ = e.cmd.Process.Kill()
		}
		<-done
	}
	e.cancel()
	_ = e.cmd.Wait()
	e.cmd = nil
	e.logx.Infof("player process %s terminated", e.name)
}

func (e *Process) exec(cmd string) error {
	if e.in == nil {
		return ErrNotStarted
	}
	e.logx.Debugf("-> %s", cmd)
	_, err := io.WriteString(e.in, cmd+"\n")
	return err
}

func (e *Process) checkReady() error {
	if err := e.exec("isready"); err != nil {
		return err
	}
	for {
		line, err := e.waitLine(e.ctx, HandshakeTimeout)
		if err != nil {
			return fmt.Errorf("error read readyok: %w", err)
		}
		if line == "readyok" {
			return nil
		}
	}
}

// timeout 0 waits on ctx alone
func (e *Process) waitLine(ctx context.Context, timeout time.Duration) (string, error) {
	var expire <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expire = timer.C
	}
	select {
	case line, ok := <-e.lines:
		if !ok {
			return "", ErrStopped
		}
		return line, nil
	case <-expire:
		return "", errors.New("timeout waiting")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (e *Process) drain() {
	for {
		select {
		case _, ok := <-e.lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (e *Process) stdoutLoop() {
	defer e.wg.Done()
	defer close(e.lines)
	scr := bufio.NewScanner(e.out)
	for scr.Scan() {
		line := strings.TrimSpace(scr.Text())
		if line == "" {
			continue
		}
		e.logx.Debugf("<- %s", line)
		if strings.HasPrefix(line, "info ") {
			continue
		}
		select {
		case e.lines <- line:
		default:
			e.logx.Debugf("drop player line (buffer full)")
		}
	}
}
