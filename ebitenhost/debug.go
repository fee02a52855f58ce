package ebitenhost

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds per-frame timings. Only populated in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	uploads    int
}

func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"uploads", stats.uploads,
		"coverage", s.surface.LastCoverage(),
		"index", s.carousel.Index(),
	)
}

// drawHUD prints FPS/TPS and the card state in the top-left corner.
func (s *Scene) drawHUD(screen *ebiten.Image) {
	state := "scratching"
	switch {
	case s.surface.SamplingDisabled():
		state = "sampling off"
	case s.surface.Revealed():
		state = "revealed"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f TPS: %.1f\ncoverage: %.0f%% opacity: %.2f %s\ncard: %d/%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.surface.LastCoverage()*100, s.surface.Opacity(), state,
		s.carousel.Index()+1, s.carousel.Len(),
	))
}
