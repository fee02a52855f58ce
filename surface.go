package scratchoff

import (
	"errors"
	"image"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/tanema/gween/ease"
)

// strokeState is the transient per-stroke state. Only one stroke is active at
// a time.
type strokeState struct {
	active  bool
	pointer int
	last    Point
	// lastMid is where the previous smoothed segment ended.
	lastMid Vec2
}

// Surface is a scratch-off overlay: an opaque layer the user erases with
// pointer strokes. Once enough of it has been erased (or ManualReveal is
// called) it fades out and stops accepting input.
//
// All methods must be called from a single goroutine, normally the host's
// update loop.
type Surface struct {
	cfg     SurfaceConfig
	raster  Raster
	sampler CoverageSampler
	clock   Clock
	logger  *log.Logger
	sink    EventSink

	size  Size
	ratio float64
	scale float64

	texture        *Texture
	textureImg     image.Image
	textureSettled bool

	stroke strokeState

	revealed      bool
	lastCheck     time.Time
	lastCoverage  float64
	checkDisabled bool
	trailing      deadline

	opacity     float64
	interactive bool
	fade        *tween
	fadeAt      time.Time
	disable     deadline

	resize        deadline
	pendingBounds Rect

	onReveal []func(Event)
}

// NewSurface creates a Surface with no backing store. Call Resize (or
// RequestResize followed by Update) once the container size is known.
func NewSurface(cfg SurfaceConfig, opts ...SurfaceOption) *Surface {
	o := surfaceOptions{ratio: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.raster == nil {
		o.raster = NewCanvas()
	}
	if o.sampler == nil {
		o.sampler = StrideSampler{Stride: cfg.SampleStride}
	}
	if o.clock == nil {
		o.clock = SystemClock
	}
	if o.logger == nil {
		o.logger = defaultLogger
	}
	return &Surface{
		cfg:         cfg,
		raster:      o.raster,
		sampler:     o.sampler,
		clock:       o.clock,
		logger:      o.logger,
		sink:        o.sink,
		texture:     o.texture,
		ratio:       o.ratio,
		scale:       1,
		opacity:     1,
		interactive: true,
	}
}

// --- Accessors ---

// Size returns the logical size set by the last Resize.
func (s *Surface) Size() Size { return s.size }

// Scale returns the device pixel ratio in effect for the backing store.
func (s *Surface) Scale() float64 { return s.scale }

// Clock returns the time source driving the surface's timers.
func (s *Surface) Clock() Clock { return s.clock }

// Raster returns the backing store.
func (s *Surface) Raster() Raster { return s.raster }

// Revealed reports whether the reveal has completed. It never reverts.
func (s *Surface) Revealed() bool { return s.revealed }

// Opacity returns the current overlay opacity in [0, 1].
func (s *Surface) Opacity() float64 { return s.opacity }

// Interactive reports whether the surface still accepts pointer input.
func (s *Surface) Interactive() bool { return s.interactive }

// Stroking reports whether a stroke is active.
func (s *Surface) Stroking() bool { return s.stroke.active }

// LastCoverage returns the erased fraction from the most recent sample.
func (s *Surface) LastCoverage() float64 { return s.lastCoverage }

// SamplingDisabled reports whether coverage sampling failed and was turned off.
func (s *Surface) SamplingDisabled() bool { return s.checkDisabled }

// SetPixelRatio records the device pixel ratio; it takes effect on the next
// Resize.
func (s *Surface) SetPixelRatio(ratio float64) { s.ratio = ratio }

// SetLogger replaces the logger.
func (s *Surface) SetLogger(l *log.Logger) { s.logger = l }

// SetEventSink sets the optional event sink.
func (s *Surface) SetEventSink(sink EventSink) { s.sink = sink }

// OnReveal registers fn to run once when the reveal completes.
func (s *Surface) OnReveal(fn func(Event)) {
	s.onReveal = append(s.onReveal, fn)
}

// --- Layout ---

// clampRatio bounds the device pixel ratio to [1, MaxPixelRatio].
func (s *Surface) clampRatio() float64 {
	r := s.ratio
	if r < 1 || math.IsNaN(r) {
		r = 1
	}
	if m := max(s.cfg.MaxPixelRatio, 1); r > m {
		r = m
	}
	return r
}

// Resize recreates the backing store for the container bounds and redraws the
// overlay from scratch. Erasure progress does not survive a resize: any
// active stroke ends and the next reveal check samples immediately.
func (s *Surface) Resize(bounds Rect) {
	w := math.Max(0, math.Floor(bounds.Width))
	h := math.Max(0, math.Floor(bounds.Height))
	s.scale = s.clampRatio()
	s.size = Size{Width: w, Height: h}
	s.resize.stop()

	s.raster.Resize(int(math.Floor(w*s.scale)), int(math.Floor(h*s.scale)), s.scale)
	s.stroke = strokeState{}
	s.lastCheck = time.Time{}
	s.lastCoverage = 0
	s.trailing.stop()
	s.DrawOverlay()
	s.emit(Event{Type: EventResized, Size: s.size})
}

// RequestResize schedules a Resize after the debounce window. Each call
// restarts the window; only the latest bounds are applied.
func (s *Surface) RequestResize(bounds Rect) {
	s.pendingBounds = bounds
	s.resize.reset(s.clock.Now(), s.cfg.ResizeDebounce)
}

// --- Overlay ---

// DrawOverlay clears the backing store and paints the overlay texture, or the
// gradient fallback while the texture is unavailable.
func (s *Surface) DrawOverlay() {
	s.settleTexture()
	s.raster.Clear()
	if s.textureImg != nil {
		s.raster.DrawImage(s.textureImg, s.size.Width, s.size.Height)
		return
	}
	s.raster.FillGradient(s.gradient(), s.size.Width, s.size.Height)
}

// gradient builds the horizontal fallback gradient across the logical width.
func (s *Surface) gradient() *gg.LinearGradientBrush {
	g := gg.NewLinearGradientBrush(0, 0, s.size.Width, 0)
	for _, st := range s.cfg.Gradient {
		g.AddColorStop(st.Offset, gg.Hex(st.Color))
	}
	return g
}

// settleTexture resolves a completed texture once. It returns true when a
// usable image just became available.
func (s *Surface) settleTexture() bool {
	if s.texture == nil || s.textureSettled || !s.texture.Ready() {
		return false
	}
	s.textureSettled = true
	img, err := s.texture.Result()
	if err != nil {
		s.logger.Debug("overlay texture unavailable, using gradient", "err", err)
		return false
	}
	s.textureImg = img
	return true
}

// --- Strokes ---

// BeginStroke starts a stroke at p and erases a brush-sized dot there, so a
// tap without movement still scratches.
func (s *Surface) BeginStroke(p Point) {
	s.stroke.active = true
	s.stroke.last = p
	s.stroke.lastMid = p.Vec()
	s.raster.Erase(dotPath(p.Vec()), s.cfg.BrushSize)
	s.emit(Event{Type: EventStrokeBegin, X: p.X, Y: p.Y})
}

// ContinueStroke erases a smoothed segment towards p. The segment is a
// quadratic curve from where the previous one ended, through the previous
// point as control, to the midpoint between the previous point and p. No-op
// without an active stroke.
func (s *Surface) ContinueStroke(p Point) {
	if !s.stroke.active {
		return
	}
	prev := s.stroke.last.Vec()
	mid := prev.Mid(p.Vec())
	s.raster.Erase(quadPath(s.stroke.lastMid, prev, mid), s.cfg.BrushSize)
	s.stroke.lastMid = mid
	s.stroke.last = p
}

// EndStroke finishes the stroke, erasing the remaining tail up to the last
// point. Idempotent.
func (s *Surface) EndStroke() {
	if !s.stroke.active {
		return
	}
	last := s.stroke.last.Vec()
	if last != s.stroke.lastMid {
		s.raster.Erase([]Vec2{s.stroke.lastMid, last}, s.cfg.BrushSize)
	}
	s.stroke = strokeState{}
	s.emit(Event{Type: EventStrokeEnd, X: last.X, Y: last.Y})
}

// CancelStroke drops the stroke without finishing its tail.
func (s *Surface) CancelStroke() {
	if !s.stroke.active {
		return
	}
	s.stroke = strokeState{}
	s.emit(Event{Type: EventStrokeCancel})
}

// --- Pointer routing ---

// PointerDown starts a stroke for pointerID unless a stroke is already active
// or the surface no longer accepts input. The pointer is captured: only it
// can continue or end the stroke.
func (s *Surface) PointerDown(pointerID int, p Point) {
	if !s.interactive || s.stroke.active {
		return
	}
	s.BeginStroke(p)
	s.stroke.pointer = pointerID
}

// PointerMove continues the captured stroke and checks reveal progress.
func (s *Surface) PointerMove(pointerID int, p Point) {
	if !s.owns(pointerID) {
		return
	}
	s.ContinueStroke(p)
	s.CheckRevealProgress()
}

// PointerUp ends the captured stroke and checks reveal progress. p is the
// release position; the stroke already ends at the last move.
func (s *Surface) PointerUp(pointerID int, p Point) {
	if !s.owns(pointerID) {
		return
	}
	s.EndStroke()
	s.CheckRevealProgress()
}

// PointerCancel ends the captured stroke without a reveal check.
func (s *Surface) PointerCancel(pointerID int) {
	if !s.owns(pointerID) {
		return
	}
	s.CancelStroke()
}

func (s *Surface) owns(pointerID int) bool {
	return s.interactive && s.stroke.active && s.stroke.pointer == pointerID
}

// --- Reveal ---

// Coverage samples the erased fraction now, ignoring the throttle.
func (s *Surface) Coverage() (float64, error) {
	return s.sampler.Coverage(s.raster)
}

// CheckRevealProgress samples the erased fraction and completes the reveal
// once it reaches the threshold. Calls within CheckInterval of the previous
// sample are skipped, but the last skipped call is replayed from Update when
// the interval ends. Before the first Resize there is nothing to sample and
// the call does nothing. Any other sampling failure is logged once and
// disables further checks.
func (s *Surface) CheckRevealProgress() {
	if s.revealed || s.checkDisabled {
		return
	}
	now := s.clock.Now()
	if !s.lastCheck.IsZero() && now.Sub(s.lastCheck) < s.cfg.CheckInterval {
		if !s.trailing.pending() {
			s.trailing.reset(s.lastCheck, s.cfg.CheckInterval)
		}
		return
	}
	s.lastCheck = now
	s.trailing.stop()

	frac, err := s.sampler.Coverage(s.raster)
	if errors.Is(err, ErrNoBackingStore) {
		// Not laid out yet; the first Resize starts sampling afresh.
		s.lastCheck = time.Time{}
		return
	}
	if err != nil {
		s.checkDisabled = true
		s.logger.Warn("reveal check failed, disabling coverage detection", "err", err)
		return
	}
	s.lastCoverage = frac
	s.emit(Event{Type: EventCoverageSampled, Coverage: frac})
	if frac >= s.cfg.RevealThreshold {
		s.reveal(false)
	}
}

// RevealComplete fades the overlay out and disables interaction after the
// transition. Calls after the first have no effect.
func (s *Surface) RevealComplete() {
	s.reveal(false)
}

// ManualReveal erases the whole overlay and completes the reveal regardless of
// progress.
func (s *Surface) ManualReveal() {
	s.raster.Clear()
	s.stroke = strokeState{}
	s.lastCoverage = 1
	s.reveal(true)
}

func (s *Surface) reveal(manual bool) {
	if s.revealed {
		return
	}
	s.revealed = true
	s.trailing.stop()

	now := s.clock.Now()
	s.fade = newTween(&s.opacity, 0, s.cfg.FadeDuration, ease.InOutQuad)
	s.fadeAt = now
	s.disable.reset(now, s.cfg.DisableDelay)

	e := Event{Type: EventRevealed, Coverage: s.lastCoverage, Manual: manual}
	s.logger.Debug("revealed", "coverage", s.lastCoverage, "manual", manual)
	s.emit(e)
	for _, fn := range s.onReveal {
		fn(e)
	}
}

// --- Frame update ---

// Update advances the time-driven parts of the surface: texture completion,
// the resize debounce, the trailing reveal check, the fade, and the
// interaction cut-off. Call it once per frame.
func (s *Surface) Update() {
	now := s.clock.Now()

	if s.settleTexture() && !s.revealed {
		s.DrawOverlay()
	}
	if s.resize.expired(now) {
		s.Resize(s.pendingBounds)
	}
	if s.trailing.expired(now) {
		s.CheckRevealProgress()
	}
	if s.fade != nil {
		if s.fade.update(now.Sub(s.fadeAt)) {
			s.fade = nil
		}
		s.fadeAt = now
	}
	if s.disable.expired(now) {
		s.interactive = false
		s.stroke = strokeState{}
	}
}

func (s *Surface) emit(e Event) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
