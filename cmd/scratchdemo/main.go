// scratchdemo opens a window with a scratch card above a card carousel.
//
// Usage:
//
//	scratchdemo [flags]
//
// Drag across the card to scratch it; it reveals itself once about a third
// is cleared. R or the Reveal button reveals it at once. Arrow keys, the
// < > buttons, and the dots below the strip move the carousel.
//
// Flags:
//
//	--config <path>     - Config file (default: search ~/.scratchoff, ./configs, built-in)
//	--texture <src>     - Overlay texture file or URL, overrides the config
//	--width, --height   - Window size
//	--cards <n>         - Number of carousel cards
//	--script <path>     - JSON input script; the demo exits when it finishes
//	--screenshots <dir> - Where script screenshots are written
//	--debug             - Frame stats in the log and an on-screen HUD
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/scratchoff"
	"github.com/phanxgames/scratchoff/ebitenhost"
)

const (
	cardW = 220
	cardH = 140
)

var (
	flagConfig      string
	flagTexture     string
	flagWidth       int
	flagHeight      int
	flagCards       int
	flagScript      string
	flagScreenshots string
	flagDebug       bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scratchdemo",
	Short: "Scratch-off card and carousel demo",
	Long: `scratchdemo shows a scratch-off card above a carousel of cards.

Examples:
  scratchdemo
  scratchdemo --texture https://example.com/foil.png --cards 8
  scratchdemo --script scripts/smoke.json --screenshots out`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runDemo,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&flagTexture, "texture", "", "Overlay texture file path or http(s) URL")
	rootCmd.Flags().IntVar(&flagWidth, "width", 640, "Window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 520, "Window height")
	rootCmd.Flags().IntVar(&flagCards, "cards", 5, "Number of carousel cards")
	rootCmd.Flags().StringVar(&flagScript, "script", "", "JSON input script to run")
	rootCmd.Flags().StringVar(&flagScreenshots, "screenshots", "screenshots", "Screenshot output directory")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log frame stats and show the HUD")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if flagCards < 1 {
		return fmt.Errorf("--cards must be at least 1, got %d", flagCards)
	}
	cfg, err := scratchoff.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagTexture != "" {
		cfg.Surface.Texture = flagTexture
	}

	logger := scratchoff.NewLogger(os.Stderr)
	logger.SetLevel(log.InfoLevel)

	var opts []scratchoff.SurfaceOption
	opts = append(opts, scratchoff.WithLogger(logger))
	if cfg.Surface.Texture != "" {
		opts = append(opts, scratchoff.WithTexture(scratchoff.LoadTexture(cmd.Context(), cfg.Surface.Texture)))
	}
	surface := scratchoff.NewSurface(cfg.Surface, opts...)
	surface.OnReveal(func(e scratchoff.Event) {
		logger.Info("card revealed", "coverage", fmt.Sprintf("%.0f%%", e.Coverage*100), "manual", e.Manual)
	})

	cards, err := renderCards(flagCards, cardW, cardH)
	if err != nil {
		return err
	}
	prize, err := renderPrize(flagWidth, flagHeight/2)
	if err != nil {
		return err
	}

	scene, err := ebitenhost.NewScene(ebitenhost.Options{
		Config:             cfg,
		Surface:            surface,
		Prize:              prize,
		Cards:              cards,
		Logger:             logger,
		ScreenshotDir:      flagScreenshots,
		ExitWhenScriptDone: flagScript != "",
	})
	if err != nil {
		return err
	}
	scene.SetDebugMode(flagDebug)

	if flagScript != "" {
		data, err := os.ReadFile(flagScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := ebitenhost.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	return ebitenhost.Run(scene, ebitenhost.RunConfig{
		Title:  "Scratch Off",
		Width:  flagWidth,
		Height: flagHeight,
	})
}
