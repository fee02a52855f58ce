package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/scratchoff"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// pointerState is the per-pointer press tracking. The region is captured at
// press time: a stroke that starts on the surface keeps scratching when the
// pointer leaves it, and buttons only fire when released over the region
// they were pressed on.
type pointerState struct {
	down   bool
	region region
	index  int
	lastX  float64
	lastY  float64
}

// processInput feeds one frame of input to the components. Injected events
// replace real pointer input for the frame they are consumed in.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}

	focused := ebiten.IsFocused()
	if !focused && s.focused {
		s.cancelPointers()
	}
	s.focused = focused
	if !focused {
		return
	}

	s.processKeys()
	s.processMousePointer()
	s.processTouchPointers()
}

// processKeys binds the arrow keys to the carousel and R to the manual
// reveal, globally.
func (s *Scene) processKeys() {
	for _, k := range [...]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyR} {
		if inpututil.IsKeyJustPressed(k) {
			s.handleKey(k)
		}
	}
}

func (s *Scene) handleKey(k ebiten.Key) {
	switch k {
	case ebiten.KeyArrowLeft:
		s.carousel.HandleKey(scratchoff.KeyLeft)
	case ebiten.KeyArrowRight:
		s.carousel.HandleKey(scratchoff.KeyRight)
	case ebiten.KeyR:
		s.surface.ManualReveal()
	}
}

// processMousePointer handles the left mouse button as pointer 0.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	s.processPointer(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/move/release state machine for one pointer
// in screen coordinates.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &s.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.region, ps.index = s.layout.hit(x, y)
		ps.lastX, ps.lastY = x, y
		if ps.region == regionSurface {
			s.surface.PointerDown(pointerID, s.surfacePoint(x, y))
		}

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		ps.lastX, ps.lastY = x, y
		if ps.region == regionSurface {
			s.surface.PointerMove(pointerID, s.surfacePoint(x, y))
		}

	case !pressed && ps.down:
		ps.down = false
		if ps.region == regionSurface {
			s.surface.PointerUp(pointerID, s.surfacePoint(x, y))
			return
		}
		if r, i := s.layout.hit(x, y); r == ps.region && i == ps.index {
			s.activate(r, i)
		}
	}
}

// cancelPointers aborts every press, e.g. when the window loses focus.
func (s *Scene) cancelPointers() {
	for id := range s.pointers {
		ps := &s.pointers[id]
		if !ps.down {
			continue
		}
		ps.down = false
		if ps.region == regionSurface {
			s.surface.PointerCancel(id)
		}
	}
}

// activate runs a button or indicator click.
func (s *Scene) activate(r region, index int) {
	switch r {
	case regionReveal:
		if s.surface.Interactive() {
			s.surface.ManualReveal()
		}
	case regionPrev:
		s.carousel.Prev()
	case regionNext:
		s.carousel.Next()
	case regionIndicator:
		s.carousel.GoTo(index)
	}
}

// surfacePoint converts screen coordinates to surface-local ones. Neither
// mouse nor touch report pressure, so the default applies.
func (s *Scene) surfacePoint(x, y float64) scratchoff.Point {
	return scratchoff.NewPoint(x-s.layout.surface.X, y-s.layout.surface.Y, 0)
}
