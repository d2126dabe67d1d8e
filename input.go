package main

import (
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wavelab/internal/pointer"
)

// canvasElement is the primary canvas as placed by the last Layout.
type canvasElement struct {
	rect          image.Rectangle
	width, height int
}

func (e canvasElement) BoundingRect() pointer.Rect {
	return pointer.Rect{
		Left:   float64(e.rect.Min.X),
		Top:    float64(e.rect.Min.Y),
		Width:  float64(e.rect.Dx()),
		Height: float64(e.rect.Dy()),
	}
}

func (e canvasElement) CanvasSize() (int, int) { return e.width, e.height }

func (g *Game) element() canvasElement {
	w, h := g.session.Dimensions()
	return canvasElement{rect: g.canvasRect, width: w, height: h}
}

// button is a clickable panel control. rect is refreshed by Layout.
type button struct {
	label  func(g *Game) string
	action func(g *Game)
	rect   image.Rectangle
}

func (g *Game) newButtons() []button {
	return []button{
		{label: func(g *Game) string { return g.panel.runLabel }, action: (*Game).toggleRun},
		{label: func(*Game) string { return "Step" }, action: (*Game).singleStep},
		{label: func(*Game) string { return "Debug" }, action: (*Game).triggerDebug},
		{label: intensityLabel, action: (*Game).toggleIntensity},
	}
}

func intensityLabel(g *Game) string {
	if g.session.IntensityOnly() {
		return "Amplitude"
	}
	return "Intensity"
}

func (g *Game) toggleRun() { g.session.ToggleRun() }

func (g *Game) singleStep() {
	if !g.session.SingleStep() {
		g.log.Debug("step ignored while running")
	}
}

func (g *Game) triggerDebug() {
	// Logged by the session; the loop carries on either way.
	_ = g.session.TriggerDebug()
}

func (g *Game) toggleIntensity() {
	on := g.session.ToggleIntensity()
	g.log.Debug("intensity only", slog.Bool("on", on))
}

// handleKeys maps keyboard shortcuts onto the panel buttons.
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggleRun()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.singleStep()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.triggerDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.toggleIntensity()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustForceMode(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustForceMode(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showStats = !g.showStats
	}
}

// handlePointer routes presses to the canvas or a button and feeds moves
// over the canvas to the color inspector.
func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	pt := image.Pt(x, y)
	onCanvas := pt.In(g.canvasRect)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if onCanvas {
			g.session.PointerDown(float64(x), float64(y), g.element())
		} else {
			for _, b := range g.buttons {
				if pt.In(b.rect) {
					b.action(g)
					break
				}
			}
		}
	}

	if onCanvas && (x != g.lastX || y != g.lastY) {
		g.session.PointerMove(float64(x), float64(y), g.element(), g.canvas)
	}
	g.lastX, g.lastY = x, y
}
