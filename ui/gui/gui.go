package gui

import (
	"errors"
	"omweso/ui/gui/gbase"
	"omweso/ui/gui/gctx"
	"omweso/ui/gui/gdraw"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	current gdraw.Scene
	play    *gdraw.GUIPlayDrawer
	ctx     *gctx.GUIGameContext
}

func NewGUI(ctx *gctx.GUIGameContext) *GUIProcessing {
	play := gdraw.NewGUIPlayDrawer(ctx)
	return &GUIProcessing{current: play, play: play, ctx: ctx}
}

// Run blocks on the calling goroutine until the window closes. Closing
// the window or pressing Esc is not an error.
func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.ctx.Window.W, gp.ctx.Window.H)
	ebiten.SetWindowTitle("Omweso")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(gp); err != nil && !errors.Is(err, gbase.ErrExit) {
		return err
	}
	return nil
}

func (gp *GUIProcessing) Update() error {
	next, err := gp.current.Update(gp.ctx)
	if err != nil {
		return err
	}
	gp.current = next.ToScene(gp.current, gp.play)
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.current.Draw(gp.ctx, screen)
}

// the board is laid out in window pixels, so the logical screen follows
// the window
func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	gp.ctx.Window.W, gp.ctx.Window.H = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
