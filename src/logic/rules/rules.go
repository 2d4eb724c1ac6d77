package rules

import (
	"omweso/src/base"
	"omweso/src/logic/rules/moves"
)

// play turns after which the game is declared drawn
const MaxPlayTurns = 1000

// checks legal move for current board
func IsLegalMove(b *base.Board, mv base.Move) bool {
	if b == nil {
		return false
	}
	if GameStatusOf(b).Finished() {
		return false
	}
	if mv.IsInit() {
		return moves.CheckInit(b, mv) == nil
	}
	return moves.CheckPlay(b, mv) == nil
}

func LegalMoves(b *base.Board) []base.Move {
	if b == nil || GameStatusOf(b).Finished() {
		return nil
	}
	return moves.GenerateLegalMoves(b)
}

// return status: Initializing, Playing or the result
func GameStatusOf(b *base.Board) base.GameStatus {
	if b == nil || !b.Turn.IsValid() {
		return base.InvalidGame
	}
	if !b.Initialized {
		return base.Initializing
	}
	if b.PlayTurns >= MaxPlayTurns {
		return base.Draw
	}
	// side to move without a pit of two or more seeds loses
	if len(moves.GenerateLegalMoves(b)) == 0 {
		return base.WinStatus(b.Turn.Opponent())
	}
	return base.Playing
}
