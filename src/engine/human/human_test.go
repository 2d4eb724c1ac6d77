package human

import (
	"context"
	"omweso/src"
	"omweso/src/base"
	"omweso/src/control"
	"omweso/src/logx"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	mv  base.Move
	err error
}

func setup(t *testing.T) (*src.Game, *control.Controller) {
	t.Helper()
	g, err := src.NewGame(4, 2, logx.Nop())
	require.NoError(t, err)
	return g, control.NewController(g, logx.Nop())
}

func choose(ctx context.Context, h *Human, g *src.Game) <-chan answer {
	out := make(chan answer, 1)
	go func() {
		mv, err := h.ChooseMove(ctx, g)
		out <- answer{mv, err}
	}()
	return out
}

func TestHumanReceivesEnteredMove(t *testing.T) {
	g, ctrl := setup(t)
	h := New("", ctrl)
	assert.Equal(t, "human", h.Name())

	res := choose(context.Background(), h, g)
	require.Eventually(t, ctrl.Pending, time.Second, time.Millisecond)

	v, err := base.ConvPitToVisual(4, base.Pit{Player: base.PlayerZero, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, control.Placed, ctrl.PressPit(v, control.InputIncrease))
	assert.Equal(t, control.Delivered, ctrl.PressPit(v, control.InputIncrease))

	select {
	case a := <-res:
		require.NoError(t, a.err)
		assert.Equal(t, []int{0, 2, 0, 0, 0, 0, 0, 0}, a.mv.Seeds)
		assert.True(t, g.IsLegal(a.mv))
	case <-time.After(time.Second):
		t.Fatal("no move delivered")
	}
}

func TestHumanCanceled(t *testing.T) {
	g, ctrl := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	res := choose(ctx, New("alice", ctrl), g)
	require.Eventually(t, ctrl.Pending, time.Second, time.Millisecond)
	cancel()

	a := <-res
	assert.ErrorIs(t, a.err, ErrCanceled)
	assert.False(t, ctrl.Pending())
}

func TestHumanTimeout(t *testing.T) {
	g, ctrl := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	mv, err := New("bob", ctrl).ChooseMove(ctx, g)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, base.InvalidMove, mv.Kind)
	assert.False(t, ctrl.Pending())
}

func TestHumanKeepsNewerRequest(t *testing.T) {
	g, ctrl := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	res := choose(ctx, New("a", ctrl), g)
	require.Eventually(t, ctrl.Pending, time.Second, time.Millisecond)

	// someone else registers before the first request gives up
	ctrl.RequestMove(control.ListenerFunc(func(base.Move) {}))
	cancel()
	<-res
	assert.True(t, ctrl.Pending())
}

// lateRequester loses every Withdraw; after delay it delivers the move
// unless mv is invalid.
type lateRequester struct {
	delay time.Duration
	mv    base.Move
	l     control.Listener
}

func (r *lateRequester) RequestMove(l control.Listener) *control.Ticket {
	r.l = l
	return &control.Ticket{}
}

func (r *lateRequester) Withdraw(*control.Ticket) bool {
	if r.mv.Kind != base.InvalidMove {
		go func() {
			time.Sleep(r.delay)
			r.l.MoveEntered(r.mv)
		}()
	}
	return false
}

func TestHumanKeepsMoveTakenAtDeadline(t *testing.T) {
	g, _ := setup(t)
	want := base.NewPlayMove(base.PlayerZero, 3)
	req := &lateRequester{delay: 10 * time.Millisecond, mv: want}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mv, err := New("late", req).ChooseMove(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, want, mv)
}

func TestHumanGivesUpWhenReplaced(t *testing.T) {
	g, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := New("replaced", &lateRequester{}).ChooseMove(ctx, g)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.GreaterOrEqual(t, time.Since(start), HandoffWait)
}
