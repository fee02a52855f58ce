package ebitenhost

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Fixed disables window resizing.
	Fixed bool
}

// Run opens a window and runs the scene until the window closes or an
// attached script finishes (see Options.ExitWhenScriptDone).
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if !cfg.Fixed {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(s)
}
