package gdraw

import (
	"image/color"
	"omweso/ui/gui/gctx"
	"omweso/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// ---- Scene ----

type Scene interface {
	Update(ctx *gctx.GUIGameContext) (SceneType, error)
	Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image)
}

type SceneType int

const (
	ScenePlay SceneType = iota
	SceneResult
	SceneNotChanged
)

// ToScene keeps s for SceneNotChanged and reuses play for both scenes
// that show the board.
func (t SceneType) ToScene(s Scene, play *GUIPlayDrawer) Scene {
	switch t {
	case ScenePlay:
		return play
	case SceneResult:
		return NewGUIResultDrawer(play)
	default:
		return s
	}
}

func DrawModal(ctx *gctx.GUIGameContext, message string, screen *ebiten.Image) {
	w, h := ctx.Window.W, ctx.Window.H
	ghelper.EbitenutilDrawRect(screen, 0, 0, float64(w), float64(h), ctx.Theme.ModalBg)

	bounds := text.BoundString(ctx.Face, message)
	mw := bounds.Dx() + 64
	mh := bounds.Dy() + 80
	mx := (w - mw) / 2
	my := (h - mh) / 2

	modalImg := ghelper.RenderRoundedRect(mw, mh, 16, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 3)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx), float64(my))
	screen.DrawImage(modalImg, op)

	text.Draw(screen, message, ctx.Face, mx+32, my+40, ctx.Theme.ButtonText)
	text.Draw(screen, "click to close", ctx.Face, mx+32, my+mh-20, color.Gray{Y: 0x80})
}

// ---- Result ----

// GUIResultDrawer shows the final board under a message until clicked.
type GUIResultDrawer struct {
	play *GUIPlayDrawer
}

func NewGUIResultDrawer(play *GUIPlayDrawer) *GUIResultDrawer {
	return &GUIResultDrawer{play: play}
}

func (rd *GUIResultDrawer) Update(ctx *gctx.GUIGameContext) (SceneType, error) {
	if justClicked() {
		return ScenePlay, nil
	}
	return SceneNotChanged, nil
}

func (rd *GUIResultDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	rd.play.Draw(ctx, screen)
	DrawModal(ctx, rd.play.result, screen)
}
