package ebitenhost

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scratchoff"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

const (
	screenW = 640
	screenH = 480
	cardW   = 200
	cardH   = 120
	cards   = 5
)

func cardImages(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		img := image.NewRGBA(image.Rect(0, 0, cardW, cardH))
		for p := 3; p < len(img.Pix); p += 4 {
			img.Pix[p-3] = uint8(40 * i)
			img.Pix[p] = 0xff
		}
		out[i] = img
	}
	return out
}

// newTestScene returns a 640x480 scene with five 200x120 cards.
func newTestScene(t *testing.T) (*Scene, *testClock) {
	t.Helper()
	cfg := scratchoff.DefaultConfig()
	clk := &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	surface := scratchoff.NewSurface(cfg.Surface,
		scratchoff.WithClock(clk),
		scratchoff.WithLogger(scratchoff.NewLogger(&bytes.Buffer{})))

	s, err := NewScene(Options{Config: cfg, Surface: surface, Cards: cardImages(cards)})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	s.resizeTo(screenW, screenH, 1)
	return s, clk
}

// drain runs input passes until every injected event is consumed.
func drain(s *Scene) {
	for i := 0; i < 1000 && (len(s.injectQueue) > 0 || len(s.keyQueue) > 0); i++ {
		s.processInput()
	}
}

func center(r scratchoff.Rect) (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func TestNewSceneValidation(t *testing.T) {
	cfg := scratchoff.DefaultConfig()
	if _, err := NewScene(Options{Config: cfg, Cards: cardImages(1)}); err == nil {
		t.Error("expected error without a surface")
	}
	surface := scratchoff.NewSurface(cfg.Surface)
	if _, err := NewScene(Options{Config: cfg, Surface: surface}); !errors.Is(err, scratchoff.ErrNoItems) {
		t.Errorf("err = %v, want ErrNoItems", err)
	}
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(screenW, screenH, scratchoff.Size{Width: cardW, Height: cardH}, cards)

	tests := []struct {
		name string
		got  scratchoff.Rect
		want scratchoff.Rect
	}{
		{"surface", l.surface, scratchoff.Rect{X: 24, Y: 24, Width: 592, Height: 160}},
		{"reveal", l.reveal, scratchoff.Rect{X: 250, Y: 196, Width: 140, Height: 32}},
		{"strip", l.strip, scratchoff.Rect{X: 220, Y: 264, Width: 200, Height: 120}},
		{"prev", l.prev, scratchoff.Rect{X: 156, Y: 308, Width: 40, Height: 32}},
		{"next", l.next, scratchoff.Rect{X: 444, Y: 308, Width: 40, Height: 32}},
		{"first indicator", l.indicators[0], scratchoff.Rect{X: 274, Y: 396, Width: 12, Height: 12}},
		{"last indicator", l.indicators[4], scratchoff.Rect{X: 354, Y: 396, Width: 12, Height: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestLayoutHit(t *testing.T) {
	l := computeLayout(screenW, screenH, scratchoff.Size{Width: cardW, Height: cardH}, cards)
	tests := []struct {
		name   string
		x, y   float64
		region region
		index  int
	}{
		{"surface", 100, 100, regionSurface, 0},
		{"reveal", 300, 210, regionReveal, 0},
		{"prev", 170, 320, regionPrev, 0},
		{"next", 460, 320, regionNext, 0},
		{"indicator 2", 320, 400, regionIndicator, 2},
		{"strip is not a button", 300, 300, regionNone, 0},
		{"outside", 5, 470, regionNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, i := l.hit(tt.x, tt.y)
			if r != tt.region || i != tt.index {
				t.Errorf("hit = (%d, %d), want (%d, %d)", r, i, tt.region, tt.index)
			}
		})
	}
}

func TestSceneFirstLayoutResizesImmediately(t *testing.T) {
	s, clk := newTestScene(t)
	if got := s.Surface().Size(); got != (scratchoff.Size{Width: 592, Height: 160}) {
		t.Fatalf("Size = %v, want 592x160", got)
	}

	s.resizeTo(800, 600, 1)
	if got := s.Surface().Size(); got.Width != 592 {
		t.Fatalf("later resize applied without debounce: %v", got)
	}
	clk.now = clk.now.Add(200 * time.Millisecond)
	s.Surface().Update()
	if got := s.Surface().Size(); got.Width != 752 {
		t.Errorf("Size after debounce = %v, want width 752", got)
	}
}

func TestInjectDragScratches(t *testing.T) {
	s, _ := newTestScene(t)
	s.InjectDrag(40, 100, 600, 100, 12)
	if len(s.injectQueue) != 12 {
		t.Fatalf("expected 12 queued events, got %d", len(s.injectQueue))
	}
	drain(s)

	if s.Surface().Stroking() {
		t.Error("stroke still active after release")
	}
	c, err := s.Surface().Coverage()
	if err != nil {
		t.Fatalf("Coverage: %v", err)
	}
	if c <= 0 {
		t.Error("drag across the card erased nothing")
	}
}

func TestInjectDragLeavingSurfaceKeepsStroke(t *testing.T) {
	s, _ := newTestScene(t)
	s.InjectPress(100, 100)
	s.InjectMove(100, 300)
	drain(s)
	if !s.Surface().Stroking() {
		t.Fatal("stroke ended when the pointer left the card")
	}
	s.InjectRelease(100, 300)
	drain(s)
	if s.Surface().Stroking() {
		t.Error("stroke still active after release outside the card")
	}
}

func TestInjectCancel(t *testing.T) {
	s, _ := newTestScene(t)
	s.InjectPress(100, 100)
	s.InjectMove(150, 100)
	s.InjectCancel()
	drain(s)
	if s.Surface().Stroking() {
		t.Error("stroke still active after cancel")
	}
	if s.pointers[0].down {
		t.Error("pointer still down after cancel")
	}
}

func TestClickButtons(t *testing.T) {
	s, _ := newTestScene(t)
	l := s.layout

	x, y := center(l.next)
	s.InjectClick(x, y)
	drain(s)
	if s.Carousel().Index() != 1 {
		t.Fatalf("Index = %d after next, want 1", s.Carousel().Index())
	}
	if s.scroller.Target() != cardW+16 {
		t.Errorf("scroll target = %f, want %d", s.scroller.Target(), cardW+16)
	}

	x, y = center(l.indicators[3])
	s.InjectClick(x, y)
	drain(s)
	if s.Carousel().Index() != 3 || !s.Carousel().Active(3) || s.Carousel().Active(1) {
		t.Errorf("Index = %d after indicator click, want 3", s.Carousel().Index())
	}

	x, y = center(l.prev)
	s.InjectClick(x, y)
	drain(s)
	if s.Carousel().Index() != 2 {
		t.Errorf("Index = %d after prev, want 2", s.Carousel().Index())
	}
}

func TestClickReleasedElsewhere(t *testing.T) {
	s, _ := newTestScene(t)
	x, y := center(s.layout.next)
	s.InjectPress(x, y)
	s.InjectRelease(5, 470)
	drain(s)
	if s.Carousel().Index() != 0 {
		t.Errorf("Index = %d, want 0 when released off the button", s.Carousel().Index())
	}
}

func TestRevealButtonAndKey(t *testing.T) {
	s, _ := newTestScene(t)
	x, y := center(s.layout.reveal)
	s.InjectClick(x, y)
	drain(s)
	if !s.Surface().Revealed() {
		t.Fatal("reveal button did not reveal")
	}

	k, _ := newTestScene(t)
	k.InjectKey(ebiten.KeyR)
	drain(k)
	if !k.Surface().Revealed() {
		t.Error("R key did not reveal")
	}
}

func TestArrowKeysWrap(t *testing.T) {
	s, _ := newTestScene(t)
	s.InjectKey(ebiten.KeyArrowLeft)
	drain(s)
	if s.Carousel().Index() != cards-1 {
		t.Fatalf("Index = %d after left from 0, want %d", s.Carousel().Index(), cards-1)
	}
	s.InjectKey(ebiten.KeyArrowRight)
	drain(s)
	if s.Carousel().Index() != 0 {
		t.Errorf("Index = %d after right from last, want 0", s.Carousel().Index())
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{64, 32, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}, 3, 1)
	tests := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 127, G: 63, B: 0, A: 128}},
		{1, color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{2, color.NRGBA{}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "unlabeled"},
		{"  after-scratch  ", "after-scratch"},
		{"card 3/5", "card_3_5"},
		{"v1.2", "v1.2"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScrollerFollowsSurfaceClock(t *testing.T) {
	s, clk := newTestScene(t)
	s.stepScroller()

	x, y := center(s.layout.next)
	s.InjectClick(x, y)
	drain(s)

	s.stepScroller()
	if s.scroller.Offset() != 0 {
		t.Fatalf("offset = %f with no elapsed time, want 0", s.scroller.Offset())
	}

	clk.now = clk.now.Add(200 * time.Millisecond)
	s.stepScroller()
	if off := s.scroller.Offset(); off < 100 || off > 116 {
		t.Errorf("offset halfway = %f, want ~108", off)
	}

	clk.now = clk.now.Add(-time.Second)
	s.stepScroller()
	if off := s.scroller.Offset(); off < 100 || off > 116 {
		t.Errorf("clock going backwards moved the scroller to %f", off)
	}

	clk.now = clk.now.Add(time.Second + 200*time.Millisecond)
	s.stepScroller()
	if s.scroller.Offset() != cardW+16 || s.scroller.Scrolling() {
		t.Errorf("offset = %f scrolling %v, want %d at rest", s.scroller.Offset(), s.scroller.Scrolling(), cardW+16)
	}
}
