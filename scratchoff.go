package scratchoff

import "time"

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Mid returns the point halfway between v and o.
func (v Vec2) Mid(o Vec2) Vec2 {
	return Vec2{X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2}
}

// defaultPressure is used when the input device reports no pressure.
const defaultPressure = 0.5

// Point is a pointer sample in logical pixels relative to the surface origin.
type Point struct {
	X, Y     float64
	Pressure float64
}

// NewPoint returns a Point, substituting the default pressure of 0.5 when the
// device reports none (zero or negative).
func NewPoint(x, y, pressure float64) Point {
	if pressure <= 0 {
		pressure = defaultPressure
	}
	return Point{X: x, Y: y, Pressure: pressure}
}

// Vec returns the point's position.
func (p Point) Vec() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Size is a width/height pair in logical pixels.
type Size struct {
	Width, Height float64
}

// EventType identifies a kind of component event published to an EventSink.
type EventType uint8

const (
	EventStrokeBegin     EventType = iota // a stroke started on the surface
	EventStrokeEnd                        // a stroke ended (pointer up)
	EventStrokeCancel                     // a stroke was cancelled
	EventCoverageSampled                  // the erased fraction was sampled
	EventRevealed                         // the surface crossed into the revealed state
	EventResized                          // the backing store was recreated
	EventCarouselMoved                    // the carousel index changed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventStrokeBegin:
		return "stroke-begin"
	case EventStrokeEnd:
		return "stroke-end"
	case EventStrokeCancel:
		return "stroke-cancel"
	case EventCoverageSampled:
		return "coverage-sampled"
	case EventRevealed:
		return "revealed"
	case EventResized:
		return "resized"
	case EventCarouselMoved:
		return "carousel-moved"
	default:
		return "unknown"
	}
}

// Event carries component state changes to an optional EventSink.
type Event struct {
	Type EventType
	// X and Y are the pointer position for stroke events.
	X, Y float64
	// Coverage is the sampled erased fraction (EventCoverageSampled, EventRevealed).
	Coverage float64
	// Manual is true when EventRevealed came from ManualReveal.
	Manual bool
	// Index is the new carousel index (EventCarouselMoved).
	Index int
	// Size is the new logical size (EventResized).
	Size Size
}

// EventSink is the interface for optional event forwarding, e.g. into an ECS
// world.
type EventSink interface {
	EmitEvent(event Event)
}

// Clock supplies the current time. Components read time only through a Clock
// so throttling and timers can be driven deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}
