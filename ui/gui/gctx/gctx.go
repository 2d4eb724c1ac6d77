package gctx

import (
	"omweso/src"
	"omweso/src/control"
	"omweso/src/logx"
	"omweso/src/server"
	"omweso/ui/gconf"
	"omweso/ui/gui/gbase"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ---- GUI Context ----

type GUIGameContext struct {
	Game   *src.Game
	Ctrl   *control.Controller
	Events <-chan server.Event
	Config *gconf.Config
	Theme  gbase.Palette
	Face   font.Face
	Logx   logx.Logger
	Window struct{ W, H int }
}

func NewGUIGameContext(g *src.Game, ctrl *control.Controller, ev <-chan server.Event, c *gconf.Config, l logx.Logger) *GUIGameContext {
	ctx := &GUIGameContext{
		Game:   g,
		Ctrl:   ctrl,
		Events: ev,
		Config: c,
		Theme:  gbase.PaletteFromString(c.Theme),
		Face:   basicfont.Face7x13,
		Logx:   l,
	}
	ctx.Window.W, ctx.Window.H = c.WindowW, c.WindowH
	return ctx
}
