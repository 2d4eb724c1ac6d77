package gbase

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

var ErrExit = errors.New("exit request")

const (
	PanelH    = 64 // status and buttons under the board
	ButtonW   = 120
	ButtonH   = 32
	ButtonGap = 12
)

// ---- palettes ----

type Palette struct {
	Bg           color.RGBA
	Board        color.RGBA
	Barrier      color.RGBA
	PitFill      color.RGBA
	PitStroke    color.RGBA
	PitActive    color.RGBA // pits of the player to move
	Seeds        color.RGBA
	Label        color.RGBA
	ButtonFill   color.RGBA
	ButtonStroke color.RGBA
	ButtonText   color.RGBA
	ModalBg      color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	if p == "dark" {
		return DarkPalette
	}
	return LightPalette
}

var LightPalette = Palette{
	Bg:           color.RGBA{0xf4, 0xee, 0xe1, 0xff},
	Board:        color.RGBA{0xb9, 0x85, 0x4f, 0xff},
	Barrier:      color.RGBA{0x6b, 0x45, 0x22, 0xff},
	PitFill:      color.RGBA{0x8a, 0x5a, 0x2b, 0xff},
	PitStroke:    color.RGBA{0x4a, 0x2e, 0x12, 0xff},
	PitActive:    color.RGBA{0xe0, 0xb0, 0x40, 0xff},
	Seeds:        color.RGBA{0xff, 0xff, 0xff, 0xff},
	Label:        color.RGBA{0x22, 0x22, 0x22, 0xff},
	ButtonFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	ButtonStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	ButtonText:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x88},
}

var DarkPalette = Palette{
	Bg:           color.RGBA{0x12, 0x12, 0x12, 0xff},
	Board:        color.RGBA{0x3a, 0x2a, 0x1c, 0xff},
	Barrier:      color.RGBA{0x1e, 0x14, 0x0c, 0xff},
	PitFill:      color.RGBA{0x26, 0x1a, 0x10, 0xff},
	PitStroke:    color.RGBA{0x8c, 0x6c, 0x4c, 0xff},
	PitActive:    color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
	Seeds:        color.RGBA{0xee, 0xee, 0xee, 0xff},
	Label:        color.RGBA{0xcc, 0xcc, 0xcc, 0xff},
	ButtonFill:   color.RGBA{0x20, 0x20, 0x20, 0xff},
	ButtonStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	ButtonText:   color.RGBA{0xee, 0xee, 0xee, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x99},
}

// ---- UI elements ----

type Button struct {
	Label      string
	X, Y, W, H int
	Image      *ebiten.Image // pre-rendered rounded rect with stroke
	Hover      bool
}

func (b *Button) Contains(px, py int) bool {
	return px >= b.X && px < b.X+b.W && py >= b.Y && py < b.Y+b.H
}

// returns true if the click landed on the button
func (b *Button) HandleInput(px, py int, justClicked bool) bool {
	b.Hover = b.Contains(px, py)
	return justClicked && b.Hover
}

func (b *Button) Draw(screen *ebiten.Image, face font.Face, theme Palette) {
	if b.Image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if b.Hover {
		op.ColorScale.Scale(0.92, 0.92, 0.92, 1)
	}
	op.GeoM.Translate(float64(b.X), float64(b.Y))
	screen.DrawImage(b.Image, op)

	bounds := text.BoundString(face, b.Label)
	tx := b.X + (b.W-bounds.Dx())/2
	ty := b.Y + (b.H+bounds.Dy())/2
	text.Draw(screen, b.Label, face, tx, ty, theme.ButtonText)
}
