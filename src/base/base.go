package base

import (
	"fmt"
	"strconv"
	"strings"
)

// default board: 4 rows of 8 pits, 32 seeds per player
const (
	DefaultSize int = 8
	DefaultPool int = 32
	MinSize     int = 4
	MaxSize     int = 16
)

type PlayerID int

const (
	PlayerZero PlayerID = 0
	PlayerOne  PlayerID = 1
	NoPlayer   PlayerID = -1
)

func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerZero:
		return PlayerOne
	case PlayerOne:
		return PlayerZero
	default:
		return NoPlayer
	}
}

func (p PlayerID) IsValid() bool {
	return p == PlayerZero || p == PlayerOne
}

func (p PlayerID) String() string {
	switch p {
	case PlayerZero:
		return "P0"
	case PlayerOne:
		return "P1"
	default:
		return "P?"
	}
}

type GameStatus uint8

const (
	Initializing  GameStatus = 10
	Playing       GameStatus = 11
	PlayerZeroWon GameStatus = 20
	PlayerOneWon  GameStatus = 21
	Draw          GameStatus = 22
	InvalidGame   GameStatus = 88
)

func (gs GameStatus) String() string {
	switch gs {
	case Initializing:
		return "initializing"
	case Playing:
		return "playing"
	case PlayerZeroWon:
		return "P0 won"
	case PlayerOneWon:
		return "P1 won"
	case Draw:
		return "draw"
	default:
		return "invalid"
	}
}

func (gs GameStatus) Finished() bool {
	return gs == PlayerZeroWon || gs == PlayerOneWon || gs == Draw
}

// winner of a finished game, NoPlayer for draw or unfinished
func (gs GameStatus) Winner() PlayerID {
	switch gs {
	case PlayerZeroWon:
		return PlayerZero
	case PlayerOneWon:
		return PlayerOne
	default:
		return NoPlayer
	}
}

func WinStatus(p PlayerID) GameStatus {
	if p == PlayerOne {
		return PlayerOneWon
	}
	return PlayerZeroWon
}

type MoveKind uint8

const (
	InvalidMove MoveKind = iota
	InitMove
	PlayMove
)

// Move is either a complete seed assignment for the mover's 2N pits
// (InitMove) or the logical pit to sow from (PlayMove).
type Move struct {
	Kind   MoveKind
	Player PlayerID
	Pit    int
	Seeds  []int
}

func NewInitMove(p PlayerID, seeds []int) Move {
	cp := make([]int, len(seeds))
	copy(cp, seeds)
	return Move{Kind: InitMove, Player: p, Pit: -1, Seeds: cp}
}

func NewPlayMove(p PlayerID, pit int) Move {
	return Move{Kind: PlayMove, Player: p, Pit: pit}
}

func (m Move) IsInit() bool { return m.Kind == InitMove }
func (m Move) IsPlay() bool { return m.Kind == PlayMove }

func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind || m.Player != o.Player || m.Pit != o.Pit || len(m.Seeds) != len(o.Seeds) {
		return false
	}
	for i := range m.Seeds {
		if m.Seeds[i] != o.Seeds[i] {
			return false
		}
	}
	return true
}

func (m Move) String() string {
	switch m.Kind {
	case InitMove:
		parts := make([]string, len(m.Seeds))
		for i, s := range m.Seeds {
			parts[i] = strconv.Itoa(s)
		}
		return fmt.Sprintf("%s init %s", m.Player, strings.Join(parts, ","))
	case PlayMove:
		return fmt.Sprintf("%s play %d", m.Player, m.Pit)
	default:
		return "invalid move"
	}
}

// Board is the plain game data. Pits[p][i] is the seed count of logical
// pit i of player p.
type Board struct {
	Size           int
	Pool           int
	Pits           [2][]int
	Turn           PlayerID
	Initialized    bool
	SeedsRemaining int
	Placed         [2]bool // player submitted its initial assignment
	PlayTurns      int
}

func NewBoard(size, pool int) *Board {
	b := &Board{
		Size:           size,
		Pool:           pool,
		Turn:           PlayerZero,
		SeedsRemaining: pool,
	}
	b.Pits[0] = make([]int, 2*size)
	b.Pits[1] = make([]int, 2*size)
	return b
}

func (b Board) PitsPerPlayer() int {
	return 2 * b.Size
}

func (b Board) IsValidPit(p PlayerID, pit int) bool {
	return p.IsValid() && pit >= 0 && pit < 2*b.Size
}

func (b Board) NumSeeds(p PlayerID, pit int) int {
	if !b.IsValidPit(p, pit) {
		return 0
	}
	return b.Pits[p][pit]
}

func (b Board) SeedsOf(p PlayerID) int {
	if !p.IsValid() {
		return 0
	}
	total := 0
	for _, s := range b.Pits[p] {
		total += s
	}
	return total
}

func (b Board) TotalSeeds() int {
	return b.SeedsOf(PlayerZero) + b.SeedsOf(PlayerOne)
}

// deep copy
func (b *Board) Clone() *Board {
	cp := *b
	cp.Pits[0] = append([]int(nil), b.Pits[0]...)
	cp.Pits[1] = append([]int(nil), b.Pits[1]...)
	return &cp
}
