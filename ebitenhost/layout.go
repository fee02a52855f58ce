package ebitenhost

import (
	"math"

	"github.com/phanxgames/scratchoff"
)

const (
	margin        = 24.0
	buttonHeight  = 32.0
	buttonWidth   = 140.0
	arrowWidth    = 40.0
	indicatorSize = 12.0
	indicatorGap  = 8.0
)

// region identifies a hit area of the host layout.
type region uint8

const (
	regionNone region = iota
	regionSurface
	regionReveal
	regionPrev
	regionNext
	regionIndicator
)

// layout holds the screen rectangles of every interactive element, in
// logical pixels. The scratch card takes the top half, the carousel strip
// the bottom half.
type layout struct {
	surface    scratchoff.Rect
	reveal     scratchoff.Rect
	strip      scratchoff.Rect
	prev       scratchoff.Rect
	next       scratchoff.Rect
	indicators []scratchoff.Rect
}

// computeLayout arranges the host for a w×h screen. item is the size of one
// carousel card; the strip shows exactly one card.
func computeLayout(w, h float64, item scratchoff.Size, cards int) layout {
	var l layout
	half := math.Floor(h / 2)

	l.surface = scratchoff.Rect{
		X:      margin,
		Y:      margin,
		Width:  math.Max(0, w-2*margin),
		Height: math.Max(0, half-2*margin-buttonHeight),
	}
	l.reveal = scratchoff.Rect{
		X:      (w - buttonWidth) / 2,
		Y:      l.surface.Y + l.surface.Height + margin/2,
		Width:  buttonWidth,
		Height: buttonHeight,
	}

	sw := math.Min(item.Width, math.Max(0, w-2*(margin+arrowWidth+margin)))
	sh := math.Min(item.Height, math.Max(0, h-half-2*margin-indicatorSize-margin))
	l.strip = scratchoff.Rect{X: (w - sw) / 2, Y: half + margin, Width: sw, Height: sh}

	arrowY := l.strip.Y + (sh-buttonHeight)/2
	l.prev = scratchoff.Rect{X: l.strip.X - margin - arrowWidth, Y: arrowY, Width: arrowWidth, Height: buttonHeight}
	l.next = scratchoff.Rect{X: l.strip.X + sw + margin, Y: arrowY, Width: arrowWidth, Height: buttonHeight}

	rowW := float64(cards)*indicatorSize + float64(max(cards-1, 0))*indicatorGap
	x := (w - rowW) / 2
	y := l.strip.Y + sh + margin/2
	l.indicators = make([]scratchoff.Rect, cards)
	for i := range l.indicators {
		l.indicators[i] = scratchoff.Rect{X: x, Y: y, Width: indicatorSize, Height: indicatorSize}
		x += indicatorSize + indicatorGap
	}
	return l
}

// hit returns the region under (x, y) and, for indicators, its index.
func (l *layout) hit(x, y float64) (region, int) {
	switch {
	case l.surface.Contains(x, y):
		return regionSurface, 0
	case l.reveal.Contains(x, y):
		return regionReveal, 0
	case l.prev.Contains(x, y):
		return regionPrev, 0
	case l.next.Contains(x, y):
		return regionNext, 0
	}
	for i, r := range l.indicators {
		if r.Contains(x, y) {
			return regionIndicator, i
		}
	}
	return regionNone, 0
}
