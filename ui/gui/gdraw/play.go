package gdraw

import (
	"fmt"
	"image/color"
	"omweso/src/base"
	"omweso/src/control"
	"omweso/src/server"
	"omweso/ui/gui/gbase"
	"omweso/ui/gui/gctx"
	"omweso/ui/gui/ghelper"
	"omweso/ui/gui/ghelper/gclipboard"
	"omweso/ui/gui/ghelper/gdialog"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// GUIPlayDrawer draws the board and turns clicks into controller input:
// left button adds a seed or plays, right button takes a seed back.
type GUIPlayDrawer struct {
	pits ghelper.PitCache

	buttons []*gbase.Button
	idxCopy int
	idxSave int
	btnW    int // window width the buttons were laid out for

	flash  string // last notice in the status panel
	result string // set once the game is over
}

func NewGUIPlayDrawer(ctx *gctx.GUIGameContext) *GUIPlayDrawer {
	pd := &GUIPlayDrawer{}
	pd.recalcLayout(ctx)
	return pd
}

func (pd *GUIPlayDrawer) recalcLayout(ctx *gctx.GUIGameContext) {
	w, h := ctx.Window.W, ctx.Window.H
	ctx.Ctrl.Resize(float64(w), float64(h-gbase.PanelH))
	if pd.btnW != w {
		pd.makeLayoutButtons(ctx)
		pd.btnW = w
	}
}

func (pd *GUIPlayDrawer) makeLayoutButtons(ctx *gctx.GUIGameContext) {
	pd.buttons = pd.buttons[:0]
	addBtn := func(label string, x, y int) int {
		img := ghelper.RenderRoundedRect(gbase.ButtonW, gbase.ButtonH, 10, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 2)
		pd.buttons = append(pd.buttons, &gbase.Button{
			Label: label, X: x, Y: y, W: gbase.ButtonW, H: gbase.ButtonH, Image: img,
		})
		return len(pd.buttons) - 1
	}
	y := ctx.Window.H - gbase.PanelH + (gbase.PanelH-gbase.ButtonH)/2
	x := ctx.Window.W - 2*(gbase.ButtonW+gbase.ButtonGap)
	pd.idxCopy = addBtn("Copy (C)", x, y)
	pd.idxSave = addBtn("Save (S)", x+gbase.ButtonW+gbase.ButtonGap, y)
}

func (pd *GUIPlayDrawer) Update(ctx *gctx.GUIGameContext) (SceneType, error) {
	pd.recalcLayout(ctx)

	if pd.drainEvents(ctx) {
		return SceneResult, nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return SceneNotChanged, gbase.ErrExit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		pd.copyPosition(ctx)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		pd.saveRecord(ctx)
	}

	mx, my := ebiten.CursorPosition()
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	for i, b := range pd.buttons {
		if !b.HandleInput(mx, my, left) {
			continue
		}
		switch i {
		case pd.idxCopy:
			pd.copyPosition(ctx)
		case pd.idxSave:
			pd.saveRecord(ctx)
		}
		return SceneNotChanged, nil
	}

	switch {
	case left:
		pd.press(ctx, float64(mx), float64(my), control.InputIncrease)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		pd.press(ctx, float64(mx), float64(my), control.InputDecrease)
	}
	return SceneNotChanged, nil
}

func (pd *GUIPlayDrawer) press(ctx *gctx.GUIGameContext, x, y float64, kind control.InputKind) {
	if ctx.Ctrl.Press(x, y, kind) == control.Delivered {
		pd.flash = ""
	}
}

// reports whether the game just ended
func (pd *GUIPlayDrawer) drainEvents(ctx *gctx.GUIGameContext) bool {
	for {
		select {
		case ev := <-ctx.Events:
			switch ev.Kind {
			case server.EventForfeit:
				pd.flash = fmt.Sprintf("%s forfeits: %s", ev.Player, ev.Reason)
			case server.EventGameOver:
				if pd.result != "" {
					continue
				}
				pd.result = resultText(ev.Status, pd.flash)
				msg := pd.result
				go gdialog.Notice("omweso", msg)
				return true
			}
		default:
			return false
		}
	}
}

func (pd *GUIPlayDrawer) copyPosition(ctx *gctx.GUIGameContext) {
	pos := ctx.Game.Position()
	if err := gclipboard.WriteAll(pos); err != nil {
		ctx.Logx.Warnf("copy position: %v", err)
		pd.flash = "clipboard not available"
		return
	}
	pd.flash = "position copied"
}

func (pd *GUIPlayDrawer) saveRecord(ctx *gctx.GUIGameContext) {
	record := ctx.Game.Record()
	logger := ctx.Logx
	go func() {
		path, err := gdialog.SaveText("Save game record", record)
		if err != nil {
			logger.Errorf("save record: %v", err)
			return
		}
		if path != "" {
			logger.Infof("record saved to %s", path)
		}
	}()
}

// ---- drawing ----

func (pd *GUIPlayDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	l := ctx.Ctrl.Layout()
	if l.Grid <= 0 {
		return
	}
	board := ctx.Game.Board()
	finished := ctx.Game.Status().Finished()

	ghelper.EbitenutilDrawRect(screen, l.XOff, l.YOff, l.W, l.H, ctx.Theme.Board)
	ghelper.EbitenutilDrawRect(screen, l.XOff, l.YOff+2*l.Grid+l.Grid*control.BarrierHeight/4,
		l.W, l.Grid*control.BarrierHeight/2, ctx.Theme.Barrier)

	r := int(l.Radius)
	for visual, c := range l.Centres {
		pit, err := base.ConvVisualToPit(board.Size, visual)
		if err != nil {
			continue
		}
		fill := ctx.Theme.PitFill
		if pit.Player == board.Turn && !finished {
			fill = ctx.Theme.PitActive
		}
		img := pd.pits.Get(r, fill, ctx.Theme.PitStroke)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(c.X-float64(r+1), c.Y-float64(r+1))
		screen.DrawImage(img, op)

		count := strconv.Itoa(board.NumSeeds(pit.Player, pit.Index))
		if !board.Initialized && pit.Player != board.Turn {
			count = "?"
		}
		drawCentred(ctx, screen, count, c.X, c.Y, ctx.Theme.Seeds)
		if r >= 16 {
			drawCentred(ctx, screen, base.PitLabel(board.Size, visual), c.X, c.Y+l.Radius*0.6, ctx.Theme.Label)
		}
	}

	status := pd.flash
	if status == "" {
		status = statusLine(board, ctx.Game.Status())
	}
	text.Draw(screen, status, ctx.Face, gbase.ButtonGap, ctx.Window.H-gbase.PanelH/2+4, ctx.Theme.Label)
	for _, b := range pd.buttons {
		b.Draw(screen, ctx.Face, ctx.Theme)
	}
}

func drawCentred(ctx *gctx.GUIGameContext, screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	bounds := text.BoundString(ctx.Face, s)
	text.Draw(screen, s, ctx.Face, int(x)-bounds.Dx()/2, int(y)+bounds.Dy()/2, clr)
}

func statusLine(b base.Board, status base.GameStatus) string {
	switch {
	case status.Finished():
		return resultText(status, "")
	case !b.Initialized:
		return fmt.Sprintf("%s places seeds. Seeds left: %d", b.Turn, b.SeedsRemaining)
	default:
		return fmt.Sprintf("%s to move   P0 %d : %d P1", b.Turn,
			b.SeedsOf(base.PlayerZero), b.SeedsOf(base.PlayerOne))
	}
}

func resultText(status base.GameStatus, reason string) string {
	var s string
	switch status {
	case base.PlayerZeroWon:
		s = "P0 wins"
	case base.PlayerOneWon:
		s = "P1 wins"
	case base.Draw:
		s = "Draw"
	default:
		s = status.String()
	}
	if reason != "" {
		s += " (" + reason + ")"
	}
	return s
}

func justClicked() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}
