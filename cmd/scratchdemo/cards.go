package main

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

var cardColors = []string{"#3a7bd5", "#e55d87", "#2bc0a4", "#f7971e", "#8e54e9"}

// renderCards draws n numbered placeholder cards: a rounded panel with one
// pip per card position.
func renderCards(n, w, h int) ([]image.Image, error) {
	out := make([]image.Image, n)
	for i := range out {
		dc := gg.NewContext(w, h)
		dc.SetHexColor(cardColors[i%len(cardColors)])
		dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), 12)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("render card %d: %w", i, err)
		}

		dc.SetRGB(1, 1, 1)
		for p := 0; p <= i%10; p++ {
			dc.DrawCircle(20+float64(p)*18, float64(h)-20, 6)
		}
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("render card %d: %w", i, err)
		}
		if err := dc.Close(); err != nil {
			return nil, fmt.Errorf("render card %d: %w", i, err)
		}
		out[i] = dc.Image()
	}
	return out, nil
}

// renderPrize draws the picture hidden under the scratch overlay.
func renderPrize(w, h int) (image.Image, error) {
	dc := gg.NewContext(w, h)
	bg := gg.NewLinearGradientBrush(0, 0, float64(w), float64(h)).
		AddColorStop(0, gg.Hex("#1d976c")).
		AddColorStop(1, gg.Hex("#93f9b9"))
	dc.SetFillBrush(bg)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("render prize: %w", err)
	}

	dc.SetHexColor("#ffd85a")
	dc.DrawCircle(float64(w)/2, float64(h)/2, float64(min(w, h))/4)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("render prize: %w", err)
	}
	if err := dc.Close(); err != nil {
		return nil, fmt.Errorf("render prize: %w", err)
	}
	return dc.Image(), nil
}
