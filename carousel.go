package scratchoff

import (
	"errors"
	"time"

	"github.com/tanema/gween/ease"
)

// ErrNoItems is returned by NewCarousel for an empty item set.
var ErrNoItems = errors.New("scratchoff: carousel needs at least one item")

// Scroller receives the carousel's scroll instructions.
type Scroller interface {
	// ScrollTo moves the viewport so its left edge sits at offset (logical px).
	ScrollTo(offset float64)
}

// Key is a navigation key understood by Carousel.HandleKey.
type Key uint8

const (
	KeyLeft  Key = iota // previous item
	KeyRight            // next item
)

// Carousel tracks the current item of a fixed, horizontally scrolled strip.
// The index always wraps, so there is no out-of-range state.
type Carousel struct {
	count      int
	index      int
	itemWidth  float64
	gap        float64
	scroller   Scroller
	indicators []bool
	sink       EventSink
}

// NewCarousel creates a carousel over count items. itemWidth is measured once
// from the first item by the caller; gap is the fixed spacing between items.
// scroller may be nil.
func NewCarousel(count int, itemWidth, gap float64, scroller Scroller) (*Carousel, error) {
	if count < 1 {
		return nil, ErrNoItems
	}
	c := &Carousel{
		count:      count,
		itemWidth:  itemWidth,
		gap:        gap,
		scroller:   scroller,
		indicators: make([]bool, count),
	}
	c.indicators[0] = true
	return c, nil
}

// Len returns the number of items.
func (c *Carousel) Len() int { return c.count }

// Index returns the current item index.
func (c *Carousel) Index() int { return c.index }

// Offset returns the scroll offset for the current index.
func (c *Carousel) Offset() float64 {
	return float64(c.index) * (c.itemWidth + c.gap)
}

// Active reports whether indicator i is the active one.
func (c *Carousel) Active(i int) bool {
	return i >= 0 && i < c.count && c.indicators[i]
}

// SetEventSink sets the optional event sink.
func (c *Carousel) SetEventSink(sink EventSink) { c.sink = sink }

// Next advances to the following item, wrapping to the first.
func (c *Carousel) Next() {
	c.index = (c.index + 1) % c.count
	c.scrollTo()
}

// Prev moves to the preceding item, wrapping to the last.
func (c *Carousel) Prev() {
	c.index = (c.index - 1 + c.count) % c.count
	c.scrollTo()
}

// GoTo jumps to item i, as from an indicator click. Indices outside
// [0, Len()) are ignored.
func (c *Carousel) GoTo(i int) {
	if i < 0 || i >= c.count {
		return
	}
	c.index = i
	c.scrollTo()
}

// HandleKey maps the arrow keys to Prev and Next.
func (c *Carousel) HandleKey(k Key) {
	switch k {
	case KeyLeft:
		c.Prev()
	case KeyRight:
		c.Next()
	}
}

// scrollTo issues the scroll instruction for the current index and syncs the
// indicators.
func (c *Carousel) scrollTo() {
	if c.scroller != nil {
		c.scroller.ScrollTo(c.Offset())
	}
	for i := range c.indicators {
		c.indicators[i] = i == c.index
	}
	if c.sink != nil {
		c.sink.EmitEvent(Event{Type: EventCarouselMoved, Index: c.index})
	}
}

// SmoothScroller is a Scroller that animates its offset towards each target.
// Call Update every frame and read Offset when drawing.
type SmoothScroller struct {
	// Duration of each scroll animation.
	Duration time.Duration
	// Ease defaults to ease.InOutQuad when nil.
	Ease ease.TweenFunc

	offset float64
	target float64
	anim   *tween
}

// ScrollTo implements Scroller. A new target replaces any running animation,
// starting from the current offset.
func (s *SmoothScroller) ScrollTo(offset float64) {
	fn := s.Ease
	if fn == nil {
		fn = ease.InOutQuad
	}
	s.target = offset
	s.anim = newTween(&s.offset, offset, s.Duration, fn)
	if s.anim.done {
		s.anim = nil
	}
}

// Update advances the animation by dt.
func (s *SmoothScroller) Update(dt time.Duration) {
	if s.anim == nil {
		return
	}
	if s.anim.update(dt) {
		s.anim = nil
		s.offset = s.target
	}
}

// Offset returns the current animated offset.
func (s *SmoothScroller) Offset() float64 { return s.offset }

// Target returns the offset the scroller is heading to.
func (s *SmoothScroller) Target() float64 { return s.target }

// Scrolling reports whether an animation is running.
func (s *SmoothScroller) Scrolling() bool { return s.anim != nil }
