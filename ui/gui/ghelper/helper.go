package ghelper

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

func RenderRoundedRect(w, h, radius int, fill color.RGBA, stroke color.RGBA, strokeW float64) *ebiten.Image {
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(radius))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

// RenderPit draws an anti-aliased pit of the given radius; the image is
// 2*radius+2 pixels wide, centre at radius+1.
func RenderPit(radius int, fill, stroke color.RGBA, strokeW float64) *ebiten.Image {
	size := 2*radius + 2
	dc := gg.NewContext(size, size)
	c := float64(radius + 1)
	dc.DrawCircle(c, c, float64(radius)-strokeW/2)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

var whitePixel *ebiten.Image

func EbitenutilDrawRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w < 1 || h < 1 {
		return
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(whitePixel, op)
}

// PitCache keeps one rendered pit per radius and fill.
type PitCache struct {
	radius int
	images map[color.RGBA]*ebiten.Image
}

func (pc *PitCache) Get(radius int, fill, stroke color.RGBA) *ebiten.Image {
	if radius != pc.radius || pc.images == nil {
		pc.radius = radius
		pc.images = make(map[color.RGBA]*ebiten.Image)
	}
	img, ok := pc.images[fill]
	if !ok {
		img = RenderPit(radius, fill, stroke, 2)
		pc.images[fill] = img
	}
	return img
}
