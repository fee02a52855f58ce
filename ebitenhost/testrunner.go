package ebitenhost

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script. Coordinates are in
// screen pixels.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"drag":       true,
	"scratch":    true,
	"cancel":     true,
	"reveal":     true,
	"next":       true,
	"prev":       true,
	"wait":       true,
}

// TestRunner sequences injected input and screenshots across frames for
// automated visual testing. Attach it to a Scene with SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script. Actions:
//
//	screenshot {label}                 capture the frame
//	click      {x, y}                  press and release
//	drag       {fromX, fromY, toX, toY, frames}
//	scratch    {fromX, fromY, toX, toY, frames}   drag relative to the card
//	cancel                             cancel the active press
//	reveal | next | prev               keyboard shortcuts R, →, ←
//	wait       {frames}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. Its step method runs
// from Scene.Update before input each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 || len(s.keyQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "scratch":
		o := s.layout.surface
		s.InjectDrag(o.X+st.FromX, o.Y+st.FromY, o.X+st.ToX, o.Y+st.ToY, max(st.Frames, 2))
	case "cancel":
		s.InjectCancel()
	case "reveal":
		s.InjectKey(ebiten.KeyR)
	case "next":
		s.InjectKey(ebiten.KeyArrowRight)
	case "prev":
		s.InjectKey(ebiten.KeyArrowLeft)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 && len(s.keyQueue) == 0 {
		r.done = true
	}
}
