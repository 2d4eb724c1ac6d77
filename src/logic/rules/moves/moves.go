package moves

import (
	"errors"
	"fmt"
	"omweso/src/base"
)

// MaxLaps bounds relay sowing; some positions sow forever otherwise.
const MaxLaps = 512

var (
	ErrWrongPhase  = errors.New("move not allowed in this phase")
	ErrWrongTurn   = errors.New("not this player's turn")
	ErrIllegalMove = errors.New("illegal move")
)

type SowResult struct {
	Captured int // seeds taken from the opponent
	Laps     int // relay/capture laps after the first
	LastPit  int
}

// ---- initialization phase ----

// put one seed from the pool into an own pit, return the pool left
func AddSeed(b *base.Board, p base.PlayerID, pit int) int {
	if b.Initialized || p != b.Turn || !b.IsValidPit(p, pit) || b.SeedsRemaining <= 0 {
		return b.SeedsRemaining
	}
	b.Pits[p][pit]++
	b.SeedsRemaining--
	return b.SeedsRemaining
}

// take one seed back into the pool, never below zero
func RemoveSeed(b *base.Board, p base.PlayerID, pit int) int {
	if b.Initialized || p != b.Turn || !b.IsValidPit(p, pit) || b.Pits[p][pit] == 0 {
		return b.SeedsRemaining
	}
	b.Pits[p][pit]--
	b.SeedsRemaining++
	return b.SeedsRemaining
}

// current assignment of the player to move
func InitMoveOf(b *base.Board) base.Move {
	if !b.Turn.IsValid() {
		return base.Move{Kind: base.InvalidMove, Player: base.NoPlayer, Pit: -1}
	}
	return base.NewInitMove(b.Turn, b.Pits[b.Turn])
}

func CheckInit(b *base.Board, mv base.Move) error {
	if b.Initialized || !mv.IsInit() {
		return ErrWrongPhase
	}
	if mv.Player != b.Turn {
		return ErrWrongTurn
	}
	if len(mv.Seeds) != b.PitsPerPlayer() {
		return fmt.Errorf("%w: %d pit counts, want %d", ErrIllegalMove, len(mv.Seeds), b.PitsPerPlayer())
	}
	total := 0
	for i, s := range mv.Seeds {
		if s < 0 {
			return fmt.Errorf("%w: negative count in pit %d", ErrIllegalMove, i)
		}
		total += s
	}
	if total != b.Pool {
		return fmt.Errorf("%w: %d seeds placed, want %d", ErrIllegalMove, total, b.Pool)
	}
	return nil
}

// store the assignment and hand the pool to the next player; after both
// players placed the board switches to play, player 0 first
func ApplyInit(b *base.Board, mv base.Move) error {
	if err := CheckInit(b, mv); err != nil {
		return err
	}
	copy(b.Pits[mv.Player], mv.Seeds)
	b.Placed[mv.Player] = true
	next := mv.Player.Opponent()
	if b.Placed[next] {
		b.Initialized = true
		b.SeedsRemaining = 0
		b.Turn = base.PlayerZero
		return nil
	}
	b.Turn = next
	b.SeedsRemaining = b.Pool - b.SeedsOf(next)
	return nil
}

// ---- play phase ----

// pits of the side to move holding at least two seeds, ascending
func GenerateLegalMoves(b *base.Board) []base.Move {
	if !b.Initialized || !b.Turn.IsValid() {
		return nil
	}
	out := make([]base.Move, 0, b.PitsPerPlayer())
	for pit, s := range b.Pits[b.Turn] {
		if s >= 2 {
			out = append(out, base.NewPlayMove(b.Turn, pit))
		}
	}
	return out
}

func CheckPlay(b *base.Board, mv base.Move) error {
	if !b.Initialized || !mv.IsPlay() {
		return ErrWrongPhase
	}
	if mv.Player != b.Turn {
		return ErrWrongTurn
	}
	if !b.IsValidPit(mv.Player, mv.Pit) {
		return fmt.Errorf("%w: pit %d", ErrIllegalMove, mv.Pit)
	}
	if b.Pits[mv.Player][mv.Pit] < 2 {
		return fmt.Errorf("%w: pit %d holds %d seeds", ErrIllegalMove, mv.Pit, b.Pits[mv.Player][mv.Pit])
	}
	return nil
}

// sow the move and pass the turn
func ApplyPlay(b *base.Board, mv base.Move) (SowResult, error) {
	if err := CheckPlay(b, mv); err != nil {
		return SowResult{}, err
	}
	res := Sow(b, mv.Player, mv.Pit)
	b.Turn = mv.Player.Opponent()
	b.PlayTurns++
	return res, nil
}

// Sow empties pit and sows its seeds one by one in ascending logical
// order around the player's two rows. A last seed landing in an occupied
// inner pit whose two facing pits are both occupied captures them; the
// capture is sown again from the starting pit. Otherwise a last seed in
// an occupied pit relays: that pit is picked up and sowing goes on.
func Sow(b *base.Board, p base.PlayerID, pit int) SowResult {
	n := b.PitsPerPlayer()
	own := b.Pits[p]
	opp := b.Pits[p.Opponent()]

	hand := own[pit]
	own[pit] = 0
	pos := pit
	res := SowResult{LastPit: pit}

	for {
		for ; hand > 0; hand-- {
			pos = (pos + 1) % n
			own[pos]++
		}
		res.LastPit = pos
		if own[pos] == 1 || res.Laps >= MaxLaps {
			return res
		}
		res.Laps++
		if inner, outer, ok := base.OppositePits(b.Size, pos); ok && opp[inner] > 0 && opp[outer] > 0 {
			hand = opp[inner] + opp[outer]
			opp[inner], opp[outer] = 0, 0
			res.Captured += hand
			// first captured seed goes into the starting pit
			pos = (pit - 1 + n) % n
			continue
		}
		hand = own[pos]
		own[pos] = 0
	}
}
