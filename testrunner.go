package valentime

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	DeltaY  float64 `json:"deltaY,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Section int     `json:"section,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// scriptTarget is what a TestRunner drives. *Experience implements it.
type scriptTarget interface {
	inputQueue() *InputQueue
	pointerTracker() *PointerTracker
	ScrollToSection(index int, duration float32)
	ToggleMute() bool
	Screenshot(label string)
}

// TestRunner sequences injected scroll input, clicks, navigation and
// screenshots across frames for automated visual testing. Attach to an
// Experience via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"wheel":      true,
	"drag":       true,
	"navigate":   true,
	"mute":       true,
	"wait":       true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Experience via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Experience.Update
// before input is polled.
func (r *TestRunner) step(t scriptTarget) {
	if r.done {
		return
	}
	q := t.inputQueue()
	// Wait for pending injections to drain before advancing.
	if q.Pending() > 0 {
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
		t.Screenshot(st.Label)
	case "click":
		t.pointerTracker().InjectClick(st.X, st.Y)
	case "wheel":
		q.InjectWheel(st.DeltaY)
	case "drag":
		q.InjectTouchDrag(st.FromY, st.ToY, st.Frames)
	case "navigate":
		t.ScrollToSection(st.Section, 0)
	case "mute":
		t.ToggleMute()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && q.Pending() == 0 {
		r.done = true
	}
}
