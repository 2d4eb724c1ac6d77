package myengine

import (
	"context"
	"math"
	"math/rand/v2"
	"omweso/src/base"
	"omweso/src/engine"
	"omweso/src/logic/rules"
	"omweso/src/logic/rules/moves"
	"sync"
	"time"
)

const (
	scoreWin  = 1 << 20
	scoreDraw = 0
)

// AnalysisInfo is one snapshot of a running search.
type AnalysisInfo struct {
	Depth  int
	TimeMs int64
	Nodes  int64
	NPS    int64
	Score  int // seeds, from the mover's side
	Best   base.Move
}

// Greedy searches the play phase with alpha-beta over seed difference
// and spreads its pool at random during placement.
type Greedy struct {
	params engine.SearchParams

	rngMu sync.Mutex
	rng   *rand.Rand

	subsMu    sync.Mutex
	subs      map[int]chan<- AnalysisInfo
	nextSubID int
}

func NewGreedy(params engine.SearchParams, seed uint64) *Greedy {
	if params.MaxDepth < 1 {
		params.MaxDepth = 1
	}
	return &Greedy{
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x5eed)),
		subs:   make(map[int]chan<- AnalysisInfo),
	}
}

func (e *Greedy) Name() string { return "greedy" }

// Subscribe receives every completed depth; slow receivers miss updates.
func (e *Greedy) Subscribe(ch chan<- AnalysisInfo) (unsubscribe func()) {
	e.subsMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = ch
	e.subsMu.Unlock()
	return func() {
		e.subsMu.Lock()
		delete(e.subs, id)
		e.subsMu.Unlock()
	}
}

func (e *Greedy) publish(info AnalysisInfo) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- info:
		default:
		}
	}
}

func (e *Greedy) ChooseMove(ctx context.Context, bs engine.BoardState) (base.Move, error) {
	if !bs.IsInitialized() {
		e.rngMu.Lock()
		defer e.rngMu.Unlock()
		return engine.SpreadInitMove(bs, e.rng), nil
	}
	legal := bs.LegalMoves()
	if len(legal) == 0 {
		return base.Move{}, engine.ErrNoLegalMoves
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	if e.params.MaxTimeMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(e.params.MaxTimeMs)*time.Millisecond)
		defer cancel()
	}

	board := bs.Board()
	results := make(chan AnalysisInfo, e.params.MaxDepth)
	var wg sync.WaitGroup
	wg.Add(1)
	go e.searchWorker(ctx, &wg, &board, results)

	best := AnalysisInfo{Best: legal[0]}
	for {
		select {
		case info, ok := <-results:
			if !ok {
				return best.Best, nil
			}
			best = info
		case <-ctx.Done():
			// keep what the last finished depth found
			wg.Wait()
			for info := range results {
				best = info
			}
			return best.Best, nil
		}
	}
}

// iterative deepening; a depth interrupted by ctx is discarded
func (e *Greedy) searchWorker(ctx context.Context, wg *sync.WaitGroup, b *base.Board, out chan<- AnalysisInfo) {
	defer wg.Done()
	defer close(out)

	start := time.Now()
	var nodes int64
	for depth := 1; depth <= e.params.MaxDepth; depth++ {
		mv, score, ok := e.searchRoot(ctx, b, depth, &nodes)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		info := AnalysisInfo{
			Depth:  depth,
			TimeMs: elapsed.Milliseconds(),
			Nodes:  nodes,
			NPS:    computeNPS(nodes, elapsed),
			Score:  score,
			Best:   mv,
		}
		out <- info
		e.publish(info)
		// forced result found, deeper search changes nothing
		if score >= scoreWin || score <= -scoreWin {
			return
		}
	}
}

func (e *Greedy) searchRoot(ctx context.Context, b *base.Board, depth int, nodes *int64) (base.Move, int, bool) {
	alpha, beta := -math.MaxInt32, math.MaxInt32
	var best base.Move
	for _, mv := range moves.GenerateLegalMoves(b) {
		child := b.Clone()
		if _, err := moves.ApplyPlay(child, mv); err != nil {
			continue
		}
		score, ok := e.minimax(ctx, child, depth-1, -beta, -alpha, nodes)
		if !ok {
			return base.Move{}, 0, false
		}
		score = -score
		if best.Kind == base.InvalidMove || score > alpha {
			alpha = score
			best = mv
		}
	}
	return best, alpha, true
}

// negamax with alpha-beta; scores are from the side to move in b
func (e *Greedy) minimax(ctx context.Context, b *base.Board, depth, alpha, beta int, nodes *int64) (int, bool) {
	*nodes++
	if *nodes&1023 == 0 && ctx.Err() != nil {
		return 0, false
	}

	switch st := rules.GameStatusOf(b); {
	case st == base.Draw:
		return scoreDraw, true
	case st.Finished():
		if st.Winner() == b.Turn {
			return scoreWin + depth, true
		}
		return -scoreWin - depth, true
	}
	if depth == 0 {
		return evaluate(b), true
	}

	best := -math.MaxInt32
	for _, mv := range moves.GenerateLegalMoves(b) {
		child := b.Clone()
		if _, err := moves.ApplyPlay(child, mv); err != nil {
			continue
		}
		score, ok := e.minimax(ctx, child, depth-1, -beta, -alpha, nodes)
		if !ok {
			return 0, false
		}
		score = -score
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best, true
}

// seeds of the side to move minus the opponent's, plus a small bonus
// for pits that can be played
func evaluate(b *base.Board) int {
	me, opp := b.Turn, b.Turn.Opponent()
	score := 4 * (b.SeedsOf(me) - b.SeedsOf(opp))
	for _, s := range b.Pits[me] {
		if s >= 2 {
			score++
		}
	}
	for _, s := range b.Pits[opp] {
		if s >= 2 {
			score--
		}
	}
	return score
}

func computeNPS(nodes int64, elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	return int64(float64(nodes) / elapsed.Seconds())
}
