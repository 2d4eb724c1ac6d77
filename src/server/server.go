// Package server runs a match: it asks the player to move for a
// decision under a deadline and applies the answer to the game.
package server

import (
	"context"
	"errors"
	"fmt"
	"omweso/src"
	"omweso/src/base"
	"omweso/src/engine"
	"omweso/src/logic/history"
	"omweso/src/logx"
	"sync"
	"time"
)

var ErrNoPlayer = errors.New("player not set")

type ForfeitReason int

const (
	NoForfeit ForfeitReason = iota
	ForfeitTimeout
	ForfeitError
	ForfeitIllegal
)

func (r ForfeitReason) String() string {
	switch r {
	case ForfeitTimeout:
		return "timeout"
	case ForfeitError:
		return "error"
	case ForfeitIllegal:
		return "illegal move"
	default:
		return "none"
	}
}

type EventKind int

const (
	EventMove EventKind = iota
	EventForfeit
	EventGameOver
)

// Event is published after every applied move, a forfeit and the end of
// the game.
type Event struct {
	Kind    EventKind
	Player  base.PlayerID
	Move    base.Move
	Status  base.GameStatus
	Reason  ForfeitReason
	Err     error
	Elapsed time.Duration
}

type Server struct {
	game    *src.Game
	players [2]engine.Player
	timing  engine.Timing
	logger  logx.Logger

	mu      sync.Mutex
	status  base.GameStatus
	forfeit ForfeitReason

	subsMu    sync.Mutex
	subs      map[int]chan<- Event
	nextSubID int
}

func New(game *src.Game, p0, p1 engine.Player, timing engine.Timing, logger logx.Logger) *Server {
	s := &Server{
		game:    game,
		players: [2]engine.Player{p0, p1},
		timing:  timing,
		logger:  logger,
		status:  game.Status(),
		subs:    make(map[int]chan<- Event),
	}
	if p0 != nil && p1 != nil {
		game.SetInfo(history.TagP0, p0.Name())
		game.SetInfo(history.TagP1, p1.Name())
	}
	return s
}

func (s *Server) Game() *src.Game { return s.game }

// Subscribe delivers events without blocking the match; a full channel
// misses them.
func (s *Server) Subscribe(ch chan<- Event) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.subsMu.Unlock()
	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Server) publish(ev Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Result is the final status and, if the game ended by forfeit, why.
func (s *Server) Result() (base.GameStatus, ForfeitReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.forfeit
}

// Run plays until the game is finished or ctx ends. A player that
// misses its deadline, fails or answers with a rejected move loses.
func (s *Server) Run(ctx context.Context) (base.GameStatus, error) {
	if s.players[0] == nil || s.players[1] == nil {
		return base.InvalidGame, ErrNoPlayer
	}
	s.logger.Infof("match %s vs %s", s.players[0].Name(), s.players[1].Name())

	for {
		status := s.game.Status()
		if status.Finished() {
			s.finish(status, NoForfeit)
			return status, nil
		}
		if status == base.InvalidGame {
			return status, fmt.Errorf("game in invalid state")
		}
		if err := ctx.Err(); err != nil {
			return status, err
		}

		turn := s.game.Turn()
		first := !s.game.IsInitialized()
		mv, elapsed, err := s.decide(ctx, s.players[turn], first)
		if err != nil {
			// the match itself was stopped, nobody forfeits
			if ctx.Err() != nil {
				return s.game.Status(), ctx.Err()
			}
			reason := ForfeitError
			if errors.Is(err, context.DeadlineExceeded) {
				reason = ForfeitTimeout
			}
			return s.forfeitBy(turn, reason, err), nil
		}

		if mv.Player != turn {
			return s.forfeitBy(turn, ForfeitIllegal, fmt.Errorf("move %v for the wrong player", mv)), nil
		}
		status, err = s.game.ApplyMove(mv)
		if err != nil {
			return s.forfeitBy(turn, ForfeitIllegal, err), nil
		}
		s.logger.Debugf("%s played %v in %v", s.players[turn].Name(), mv, elapsed)
		s.publish(Event{Kind: EventMove, Player: turn, Move: mv, Status: status, Elapsed: elapsed})
	}
}

// decide runs the player on its own goroutine so an agent that ignores
// its context still cannot hold the match past the budget
func (s *Server) decide(ctx context.Context, p engine.Player, first bool) (base.Move, time.Duration, error) {
	budget := s.timing.Budget(first)
	tctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type answer struct {
		mv  base.Move
		err error
	}
	done := make(chan answer, 1)
	start := time.Now()
	go func() {
		mv, err := p.ChooseMove(tctx, s.game)
		done <- answer{mv, err}
	}()

	select {
	case a := <-done:
		elapsed := time.Since(start)
		if a.err == nil && elapsed > budget {
			return a.mv, elapsed, context.DeadlineExceeded
		}
		return a.mv, elapsed, a.err
	case <-tctx.Done():
		return base.Move{}, time.Since(start), tctx.Err()
	}
}

func (s *Server) forfeitBy(p base.PlayerID, reason ForfeitReason, err error) base.GameStatus {
	s.logger.Warnf("%s (%s) forfeits: %s: %v", p, s.players[p].Name(), reason, err)
	status := s.game.Forfeit(p)
	s.publish(Event{Kind: EventForfeit, Player: p, Status: status, Reason: reason, Err: err})
	s.finish(status, reason)
	return status
}

func (s *Server) finish(status base.GameStatus, reason ForfeitReason) {
	s.mu.Lock()
	s.status, s.forfeit = status, reason
	s.mu.Unlock()
	s.logger.Infof("result: %s", status)
	s.publish(Event{Kind: EventGameOver, Status: status, Reason: reason})
}
