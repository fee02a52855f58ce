package scratchoff

import "github.com/charmbracelet/log"

// SurfaceOption configures a Surface during creation.
//
// Example:
//
//	s := scratchoff.NewSurface(cfg.Surface,
//		scratchoff.WithTexture(scratchoff.LoadTexture(ctx, cfg.Surface.Texture)),
//		scratchoff.WithLogger(logger))
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	raster  Raster
	sampler CoverageSampler
	clock   Clock
	logger  *log.Logger
	sink    EventSink
	texture *Texture
	ratio   float64
}

// WithRaster replaces the in-memory Canvas backing store.
func WithRaster(r Raster) SurfaceOption {
	return func(o *surfaceOptions) {
		o.raster = r
	}
}

// WithSampler replaces the default StrideSampler.
func WithSampler(s CoverageSampler) SurfaceOption {
	return func(o *surfaceOptions) {
		o.sampler = s
	}
}

// WithClock sets the time source used for throttling, debouncing, and the
// reveal transition.
func WithClock(c Clock) SurfaceOption {
	return func(o *surfaceOptions) {
		o.clock = c
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *log.Logger) SurfaceOption {
	return func(o *surfaceOptions) {
		o.logger = l
	}
}

// WithEventSink forwards surface events to sink.
func WithEventSink(sink EventSink) SurfaceOption {
	return func(o *surfaceOptions) {
		o.sink = sink
	}
}

// WithTexture sets the overlay texture. Until it completes successfully the
// gradient fallback is drawn.
func WithTexture(t *Texture) SurfaceOption {
	return func(o *surfaceOptions) {
		o.texture = t
	}
}

// WithPixelRatio sets the initial device pixel ratio.
func WithPixelRatio(ratio float64) SurfaceOption {
	return func(o *surfaceOptions) {
		o.ratio = ratio
	}
}
