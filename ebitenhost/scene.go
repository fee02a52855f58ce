package ebitenhost

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scratchoff"
)

// Options configures a Scene.
type Options struct {
	Config scratchoff.Config
	// Surface is the scratch card. Required.
	Surface *scratchoff.Surface
	// Prize is drawn under the overlay. A plain panel is used when nil.
	Prize image.Image
	// Cards are the carousel items. At least one is required; all are drawn
	// at the size of the first.
	Cards  []image.Image
	Logger *log.Logger
	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string
	// ExitWhenScriptDone ends the game loop once an attached TestRunner has
	// finished and its screenshots are written.
	ExitWhenScriptDone bool
}

var (
	colorBackground = color.RGBA{R: 0x1b, G: 0x1d, B: 0x2a, A: 0xff}
	colorPanel      = color.RGBA{R: 0x2d, G: 0x31, B: 0x45, A: 0xff}
	colorButton     = color.RGBA{R: 0x4a, G: 0x52, B: 0x73, A: 0xff}
	colorActive     = color.RGBA{R: 0xff, G: 0xd8, B: 0x5a, A: 0xff}
	colorInactive   = color.RGBA{R: 0x6b, G: 0x70, B: 0x88, A: 0xff}
)

// Scene hosts one scratch card and one carousel inside an Ebitengine game
// loop. It implements ebiten.Game.
type Scene struct {
	surface  *scratchoff.Surface
	carousel *scratchoff.Carousel
	scroller *scratchoff.SmoothScroller
	logger   *log.Logger
	debug    bool

	prize    image.Image
	cards    []image.Image
	itemSize scratchoff.Size
	gap      float64
	prizeImg *ebiten.Image
	cardImgs []*ebiten.Image
	overlay  presenter

	width, height int
	layout        layout
	sized         bool

	// Input state
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	focused      bool

	// Automation
	injectQueue     []syntheticPointerEvent
	keyQueue        []ebiten.Key
	testRunner      *TestRunner
	exitWhenDone    bool
	screenshotQueue []string
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	stats      debugStats
	lastUpdate time.Time
}

// NewScene wires the surface and a new carousel over opts.Cards.
func NewScene(opts Options) (*Scene, error) {
	if opts.Surface == nil {
		return nil, errors.New("ebitenhost: a surface is required")
	}
	if len(opts.Cards) == 0 {
		return nil, scratchoff.ErrNoItems
	}
	b := opts.Cards[0].Bounds()
	item := scratchoff.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}

	scroller := &scratchoff.SmoothScroller{Duration: opts.Config.Carousel.ScrollDuration}
	carousel, err := scratchoff.NewCarousel(len(opts.Cards), item.Width, opts.Config.Carousel.Gap, scroller)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = scratchoff.NewLogger(nil)
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	return &Scene{
		surface:       opts.Surface,
		carousel:      carousel,
		scroller:      scroller,
		logger:        logger,
		prize:         opts.Prize,
		cards:         opts.Cards,
		itemSize:      item,
		gap:           opts.Config.Carousel.Gap,
		focused:       true,
		exitWhenDone:  opts.ExitWhenScriptDone,
		ScreenshotDir: dir,
	}, nil
}

// Surface returns the hosted scratch card.
func (s *Scene) Surface() *scratchoff.Surface { return s.surface }

// Carousel returns the hosted carousel.
func (s *Scene) Carousel() *scratchoff.Carousel { return s.carousel }

// SetDebugMode enables per-frame stats in the log and an on-screen HUD.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.logger.SetLevel(log.DebugLevel)
		s.surface.SetLogger(s.logger)
	}
}

// Update processes input and advances the components. It implements
// ebiten.Game.
func (s *Scene) Update() error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
		if s.exitWhenDone && s.testRunner.Done() && len(s.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	s.processInput()
	s.surface.Update()
	s.stepScroller()

	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}
	return nil
}

// stepScroller advances the carousel animation by the time since the last
// call, measured on the surface's clock so it stays in step with the fade.
func (s *Scene) stepScroller() {
	now := s.surface.Clock().Now()
	if !s.lastUpdate.IsZero() {
		if dt := now.Sub(s.lastUpdate); dt > 0 {
			s.scroller.Update(dt)
		}
	}
	s.lastUpdate = now
}

// Layout tracks the window size. A size change relays out the host and
// schedules a debounced surface resize; the first one resizes immediately.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.resizeTo(outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
	}
	return outsideWidth, outsideHeight
}

func (s *Scene) resizeTo(w, h int, ratio float64) {
	s.width, s.height = w, h
	s.layout = computeLayout(float64(w), float64(h), s.itemSize, s.carousel.Len())
	s.surface.SetPixelRatio(ratio)
	if !s.sized {
		s.sized = true
		s.surface.Resize(s.layout.surface)
		return
	}
	s.surface.RequestResize(s.layout.surface)
}

// Draw renders the prize, the overlay, and the carousel. It implements
// ebiten.Game.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(colorBackground)
	s.drawPrize(screen)
	if p, ok := s.surface.Raster().(scratchoff.Presentable); ok {
		s.overlay.sync(p)
		s.overlay.draw(screen, s.surfaceRect(), s.surface.Scale(), s.surface.Opacity())
	}
	if s.surface.Interactive() {
		drawButton(screen, s.layout.reveal, "Reveal (R)")
	}
	s.drawCarousel(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.uploads = s.overlay.uploads
		s.debugLog(s.stats)
		s.drawHUD(screen)
	}
	s.flushScreenshots(screen)
}

// surfaceRect is where the backing store is drawn: the laid-out origin with
// the surface's own (floored) size, which lags the layout during a debounce.
func (s *Scene) surfaceRect() scratchoff.Rect {
	sz := s.surface.Size()
	return scratchoff.Rect{X: s.layout.surface.X, Y: s.layout.surface.Y, Width: sz.Width, Height: sz.Height}
}

func (s *Scene) drawPrize(screen *ebiten.Image) {
	r := s.surfaceRect()
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	if s.prize == nil {
		fillRect(screen, r, colorPanel)
		return
	}
	if s.prizeImg == nil {
		s.prizeImg = ebiten.NewImageFromImage(s.prize)
	}
	drawImageInRect(screen, s.prizeImg, r)
}

func (s *Scene) drawCarousel(screen *ebiten.Image) {
	if s.cardImgs == nil {
		s.cardImgs = make([]*ebiten.Image, len(s.cards))
		for i, c := range s.cards {
			s.cardImgs[i] = ebiten.NewImageFromImage(c)
		}
	}

	strip := s.layout.strip
	if strip.Width > 0 && strip.Height > 0 {
		view := screen.SubImage(image.Rect(
			int(strip.X), int(strip.Y),
			int(strip.X+strip.Width), int(strip.Y+strip.Height),
		)).(*ebiten.Image)
		step := s.itemSize.Width + s.gap
		for i, img := range s.cardImgs {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(strip.X+float64(i)*step-s.scroller.Offset(), strip.Y)
			view.DrawImage(img, op)
		}
	}

	drawButton(screen, s.layout.prev, "<")
	drawButton(screen, s.layout.next, ">")
	for i, r := range s.layout.indicators {
		c := colorInactive
		if s.carousel.Active(i) {
			c = colorActive
		}
		fillRect(screen, r, c)
	}
}
