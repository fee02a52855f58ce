package ebitenhost

import "github.com/hajimehoshi/ebiten/v2"

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates (matching what a screenshot shows).
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	cancel           bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's input pass.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectCancel queues a pointer cancellation, as when the window loses focus
// mid-drag.
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames is
// 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press, handled on the next input pass like a real
// key that was just pressed.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.keyQueue = append(s.keyQueue, k)
}

// processInjectedInput handles queued keys and pops one event from the
// inject queue, feeding it through processPointer as pointer 0. Returns true
// if anything was consumed (real input is skipped for that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 && len(s.keyQueue) == 0 {
		return false
	}
	for _, k := range s.keyQueue {
		s.handleKey(k)
	}
	s.keyQueue = s.keyQueue[:0]
	if len(s.injectQueue) == 0 {
		return true
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.cancel {
		s.cancelPointers()
		return true
	}
	s.processPointer(0, evt.screenX, evt.screenY, evt.pressed)
	return true
}
