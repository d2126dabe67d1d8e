package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelFont   = text.NewGoXFace(basicfont.Face7x13)
	background  = color.RGBA{16, 16, 24, 255}
	panelColor  = color.RGBA{28, 30, 40, 255}
	buttonColor = color.RGBA{60, 64, 84, 255}
	labelColor  = color.RGBA{220, 220, 230, 255}
)

// Layout keeps the logical screen equal to the window and fits the canvas
// into the space left of the panel without stretching it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH {
		g.outsideW, g.outsideH = outsideWidth, outsideHeight
		g.layoutCanvas()
		g.layoutButtons()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) layoutCanvas() {
	w, h := g.session.Dimensions()
	availW := max(1, g.outsideW-panelWidth)
	availH := max(1, g.outsideH)
	scale := min(float64(availW)/float64(w), float64(availH)/float64(h))
	cw := max(1, int(float64(w)*scale))
	ch := max(1, int(float64(h)*scale))
	x0 := (availW - cw) / 2
	y0 := (availH - ch) / 2
	g.canvasRect = image.Rect(x0, y0, x0+cw, y0+ch)
}

func (g *Game) layoutButtons() {
	x0 := g.outsideW - panelWidth + panelPad
	y := panelPad
	for i := range g.buttons {
		g.buttons[i].rect = image.Rect(x0, y, x0+buttonWidth, y+buttonHeight)
		y += buttonHeight + panelPad/2
	}
}

// Draw paints the canvas, the panel, and the debug canvas once painted.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	op := &ebiten.DrawImageOptions{}
	w, h := g.session.Dimensions()
	op.GeoM.Scale(float64(g.canvasRect.Dx())/float64(w), float64(g.canvasRect.Dy())/float64(h))
	op.GeoM.Translate(float64(g.canvasRect.Min.X), float64(g.canvasRect.Min.Y))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.canvas, op)

	g.drawPanel(screen)

	if g.showStats {
		msg := fmt.Sprintf("TPS: %.1f\nForce mode: %d (+/-)\nNorm: %.5f",
			ebiten.ActualTPS(), g.session.ForceMode(), g.session.Norm())
		ebitenutil.DebugPrintAt(screen, msg, g.canvasRect.Min.X+4, g.canvasRect.Min.Y+4)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	px := g.outsideW - panelWidth
	vector.DrawFilledRect(screen, float32(px), 0, panelWidth, float32(g.outsideH), panelColor, false)

	for i, b := range g.buttons {
		fill := color.Color(buttonColor)
		if i == 0 {
			fill = g.panel.runColor
		}
		r := b.rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
		drawLabel(screen, b.label(g), r.Min.X+panelPad/2, r.Min.Y+(buttonHeight-lineHeight)/2)
	}

	x := px + panelPad
	y := panelPad
	if n := len(g.buttons); n > 0 {
		y = g.buttons[n-1].rect.Max.Y + panelPad
	}
	drawLabel(screen, fmt.Sprintf("FPS: %d", g.panel.fps), x, y)
	y += lineHeight
	drawLabel(screen, fmt.Sprintf("Frame: %d", g.panel.frames), x, y)
	y += lineHeight
	drawLabel(screen, fmt.Sprintf("Norm: %.5f", g.session.Norm()), x, y)
	y += lineHeight + panelPad/2

	if g.panel.swatchOK {
		vector.DrawFilledRect(screen, float32(x), float32(y), swatchSize, swatchSize, g.panel.swatch, false)
	}
	drawLabel(screen, g.panel.hueText, x+swatchSize+panelPad/2, y+(swatchSize-lineHeight)/2)
	y += swatchSize + debugGap

	if g.session.DebugShown() {
		w, h := g.session.Dimensions()
		s := min(float64(buttonWidth)/float64(w), float64(g.outsideH-y-panelPad)/float64(h))
		if s > 0 {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(s, s)
			op.GeoM.Translate(float64(x), float64(y))
			op.Filter = ebiten.FilterNearest
			screen.DrawImage(g.debug, op)
		}
	}
}

func drawLabel(screen *ebiten.Image, s string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(labelColor)
	text.Draw(screen, s, panelFont, op)
}
