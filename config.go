package scratchoff

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/scratchoff.yaml
var defaultConfigYAML []byte

// Config holds the tunables for both components.
type Config struct {
	Surface  SurfaceConfig  `yaml:"surface"`
	Carousel CarouselConfig `yaml:"carousel"`
}

// SurfaceConfig configures a Surface.
type SurfaceConfig struct {
	// BrushSize is the erasure diameter in logical pixels.
	BrushSize float64 `yaml:"brush_size"`
	// MaxPixelRatio caps the device pixel ratio to bound backing-store memory.
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
	// RevealThreshold is the erased fraction that completes the reveal.
	RevealThreshold float64 `yaml:"reveal_threshold"`
	// SampleStride samples every Nth pixel's alpha.
	SampleStride int `yaml:"sample_stride"`
	// CheckInterval throttles coverage sampling.
	CheckInterval time.Duration `yaml:"check_interval"`
	// FadeDuration is the opacity transition after reveal.
	FadeDuration time.Duration `yaml:"fade_duration"`
	// DisableDelay is when pointer interaction turns off after reveal.
	DisableDelay time.Duration `yaml:"disable_delay"`
	// ResizeDebounce collapses bursts of resize notifications.
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
	// Texture is the overlay image location (file path or http(s) URL).
	Texture  string         `yaml:"texture"`
	Gradient []GradientStop `yaml:"gradient"`
}

// GradientStop is one colour stop of the fallback overlay gradient.
type GradientStop struct {
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

// CarouselConfig configures a Carousel.
type CarouselConfig struct {
	// Gap is the fixed spacing between items in logical pixels.
	Gap            float64       `yaml:"gap"`
	ScrollDuration time.Duration `yaml:"scroll_duration"`
}

// DefaultConfig returns the built-in configuration. It does not depend on the
// embedded YAML so it is always available.
func DefaultConfig() Config {
	return Config{
		Surface: SurfaceConfig{
			BrushSize:       36,
			MaxPixelRatio:   2,
			RevealThreshold: 0.30,
			SampleStride:    4,
			CheckInterval:   300 * time.Millisecond,
			FadeDuration:    600 * time.Millisecond,
			DisableDelay:    650 * time.Millisecond,
			ResizeDebounce:  120 * time.Millisecond,
			Texture:         "assets/images/gold-texture.jpg",
			Gradient: []GradientStop{
				{Offset: 0, Color: "#b78b2b"},
				{Offset: 0.5, Color: "#ffd85a"},
				{Offset: 1, Color: "#f2c94c"},
			},
		},
		Carousel: CarouselConfig{
			Gap:            16,
			ScrollDuration: 400 * time.Millisecond,
		},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	s := c.Surface
	switch {
	case s.BrushSize <= 0:
		return fmt.Errorf("surface.brush_size must be positive, got %v", s.BrushSize)
	case s.MaxPixelRatio < 1:
		return fmt.Errorf("surface.max_pixel_ratio must be >= 1, got %v", s.MaxPixelRatio)
	case s.RevealThreshold <= 0 || s.RevealThreshold > 1:
		return fmt.Errorf("surface.reveal_threshold must be in (0, 1], got %v", s.RevealThreshold)
	case s.SampleStride < 1:
		return fmt.Errorf("surface.sample_stride must be >= 1, got %d", s.SampleStride)
	case s.CheckInterval < 0 || s.FadeDuration < 0 || s.DisableDelay < 0 || s.ResizeDebounce < 0:
		return errors.New("surface durations must not be negative")
	case len(s.Gradient) == 0:
		return errors.New("surface.gradient needs at least one stop")
	}
	if c.Carousel.Gap < 0 {
		return fmt.Errorf("carousel.gap must not be negative, got %v", c.Carousel.Gap)
	}
	return nil
}

// LoadConfig loads the configuration.
// Search order: customPath -> ~/.scratchoff/config.yaml -> ./configs/scratchoff.yaml -> embedded default
func LoadConfig(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseConfig(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseConfig(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/scratchoff.yaml"); err == nil {
		if cfg, err := parseConfig(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseConfig(defaultConfigYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseConfig overlays data onto the defaults, so partial files only override
// the keys they name.
func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scratchoff", filename)
}
