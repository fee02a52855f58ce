package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/scratchoff"
)

// debugGlyph is the cell size of ebitenutil's debug font.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

var whitePixel *ebiten.Image

func whiteImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// fillRect draws a solid rectangle by scaling a 1x1 white image.
func fillRect(dst *ebiten.Image, r scratchoff.Rect, c color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(whiteImage(), op)
}

// drawImageInRect stretches img over r.
func drawImageInRect(dst, img *ebiten.Image, r scratchoff.Rect) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func drawButton(dst *ebiten.Image, r scratchoff.Rect, label string) {
	fillRect(dst, r, colorButton)
	x := r.X + (r.Width-float64(len(label)*debugGlyphW))/2
	y := r.Y + (r.Height-debugGlyphH)/2
	ebitenutil.DebugPrintAt(dst, label, int(x), int(y))
}
