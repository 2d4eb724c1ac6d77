package src

import (
	"fmt"
	"omweso/src/base"
	"omweso/src/logic/convert/convpos"
	"omweso/src/logic/history"
	"omweso/src/logic/rules"
	"omweso/src/logic/rules/moves"
	"omweso/src/logx"
	"strconv"
	"sync"
)

var (
	ErrWrongPhase  = moves.ErrWrongPhase
	ErrWrongTurn   = moves.ErrWrongTurn
	ErrIllegalMove = moves.ErrIllegalMove
)

// Game is the board phase state of one match. All methods are safe for
// concurrent use; front ends, the controller and the server share one Game.
type Game struct {
	mu      sync.RWMutex
	board   *base.Board
	history *history.History
	status  base.GameStatus
	logger  logx.Logger
}

func NewGame(size, pool int, logger logx.Logger) (*Game, error) {
	if size < base.MinSize || size > base.MaxSize {
		return nil, fmt.Errorf("board size %d out of range [%d, %d]", size, base.MinSize, base.MaxSize)
	}
	if pool < 1 {
		return nil, fmt.Errorf("seed pool must be positive, got %d", pool)
	}
	logger.Debugf("create game size=%d pool=%d", size, pool)
	return newGame(base.NewBoard(size, pool), logger), nil
}

func NewGameFromPosition(pos string, logger logx.Logger) (*Game, error) {
	logger.Debugf("create game by position: %v", pos)
	b, err := convpos.ConvertPosToBoard(pos)
	if err != nil {
		return nil, fmt.Errorf("error parse position: %w", err)
	}
	return newGame(b, logger), nil
}

func newGame(b *base.Board, logger logx.Logger) *Game {
	g := &Game{board: b, history: history.NewHistory(), logger: logger}
	g.status = rules.GameStatusOf(b)
	g.history.InfoGame().Set(history.TagSize, strconv.Itoa(b.Size))
	return g
}

func (g *Game) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Size
}

func (g *Game) Pool() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Pool
}

func (g *Game) IsInitialized() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Initialized
}

func (g *Game) Turn() base.PlayerID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.Turn
}

// 0 once both players placed their seeds
func (g *Game) SeedsRemaining() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.board.Initialized {
		return 0
	}
	return g.board.SeedsRemaining
}

func (g *Game) NumSeeds(p base.PlayerID, pit int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.board.NumSeeds(p, pit)
}

func (g *Game) Status() base.GameStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// NoPlayer until the game is over or drawn
func (g *Game) Winner() base.PlayerID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status.Winner()
}

// ---- initialization phase ----

// AddSeed places one seed from the pool into an own pit of the player to
// move and returns the pool left. Anything else is a no-op.
func (g *Game) AddSeed(p base.PlayerID, pit int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	before := g.board.SeedsRemaining
	left := moves.AddSeed(g.board, p, pit)
	if left == before {
		g.logger.Debugf("add seed ignored: %s pit %d", p, pit)
	}
	return left
}

// RemoveSeed gives one seed back to the pool; never empties below zero.
func (g *Game) RemoveSeed(p base.PlayerID, pit int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	before := g.board.SeedsRemaining
	left := moves.RemoveSeed(g.board, p, pit)
	if left == before {
		g.logger.Debugf("remove seed ignored: %s pit %d", p, pit)
	}
	return left
}

// assignment built so far by the player to move
func (g *Game) InitMove() base.Move {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return moves.InitMoveOf(g.board)
}

// ---- rules ----

func (g *Game) IsLegal(mv base.Move) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return rules.IsLegalMove(g.board, mv)
}

func (g *Game) LegalMoves() []base.Move {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return rules.LegalMoves(g.board)
}

// ApplyMove is the only way a turn advances. Rejected moves leave the
// game untouched.
func (g *Game) ApplyMove(mv base.Move) (base.GameStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, err := g.history.PushMove(g.board, mv)
	if err != nil {
		g.logger.Debugf("reject move %v: %v", mv, err)
		return g.status, err
	}
	g.status = rules.GameStatusOf(g.board)
	if entry.Captured > 0 {
		g.logger.Infof("move %v captured %d", mv, entry.Captured)
	} else {
		g.logger.Infof("move %v", mv)
	}
	if g.status.Finished() {
		g.history.InfoGame().Set(history.TagResult, g.status.String())
		g.logger.Infof("game over: %v", g.status)
	}
	return g.status, nil
}

// Forfeit ends an unfinished game as a loss for p. It returns the final
// status, unchanged if the game was already over.
func (g *Game) Forfeit(p base.PlayerID) base.GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status.Finished() || !p.IsValid() {
		return g.status
	}
	g.status = base.WinStatus(p.Opponent())
	g.history.InfoGame().Set(history.TagResult, g.status.String())
	g.logger.Infof("%s forfeits, game over: %v", p, g.status)
	return g.status
}

// ---- snapshots ----

// copy of the board data
func (g *Game) Board() base.Board {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return *g.board.Clone()
}

// detached copy without history, for agents that search ahead
func (g *Game) Clone() *Game {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return &Game{
		board:   g.board.Clone(),
		history: history.NewHistory(),
		status:  g.status,
		logger:  logx.Nop(),
	}
}

// return position string of this game
func (g *Game) Position() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return convpos.ConvertBoardToPos(*g.board)
}

// headers and all moves
func (g *Game) Record() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.history.Record()
}

func (g *Game) History() []history.MoveEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.history.Moves()
}

func (g *Game) CountMoves() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.history.Len()
}

func (g *Game) SetInfo(tag history.RecordTag, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.history.InfoGame().Set(tag, value)
}
