package ebitenhost

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "scratch", "fromX": 10, "fromY": 50, "toX": 500, "toY": 50, "frames": 8},
			{"action": "wait", "frames": 3},
			{"action": "next"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if st := runner.steps[1]; st.Action != "scratch" || st.ToX != 500 || st.Frames != 8 {
		t.Error("step 1 mismatch")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"no steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "explode"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// runScript steps the runner and drains input like the game loop would,
// without the real input pass.
func runScript(t *testing.T, s *Scene, r *TestRunner) {
	t.Helper()
	for i := 0; i < 1000 && !r.Done(); i++ {
		r.step(s)
		s.processInjectedInput()
	}
	if !r.Done() {
		t.Fatal("script did not finish")
	}
}

func TestRunnerScratchAndNavigate(t *testing.T) {
	s, _ := newTestScene(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "scratch", "fromX": 10, "fromY": 80, "toX": 580, "toY": 80, "frames": 10},
		{"action": "next"},
		{"action": "next"},
		{"action": "prev"},
		{"action": "wait", "frames": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	runScript(t, s, runner)

	if c, _ := s.Surface().Coverage(); c <= 0 {
		t.Error("scratch step erased nothing")
	}
	if s.Carousel().Index() != 1 {
		t.Errorf("Index = %d, want 1", s.Carousel().Index())
	}
}

func TestRunnerReveal(t *testing.T) {
	s, _ := newTestScene(t)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "reveal"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, runner)
	if !s.Surface().Revealed() {
		t.Error("reveal step did not reveal")
	}
}

func TestRunnerScreenshotQueues(t *testing.T) {
	s, _ := newTestScene(t)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "start"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "start" {
		t.Errorf("screenshot queue = %v, want [start]", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner not done after its last step")
	}
}
