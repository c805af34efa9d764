package valentime

import "testing"

type fakeScriptTarget struct {
	queue       InputQueue
	pointer     PointerTracker
	screenshots []string
	navigated   []int
	muted       bool
}

func (f *fakeScriptTarget) inputQueue() *InputQueue { return &f.queue }
func (f *fakeScriptTarget) pointerTracker() *PointerTracker { return &f.pointer }
func (f *fakeScriptTarget) Screenshot(label string) { f.screenshots = append(f.screenshots, label) }

func (f *fakeScriptTarget) ScrollToSection(index int, _ float32) {
	f.navigated = append(f.navigated, index)
}

func (f *fakeScriptTarget) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "wheel", "deltaY": 300},
			{"action": "wait", "frames": 3},
			{"action": "navigate", "section": 4}
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
	if runner.steps[1].Action != "wheel" || runner.steps[1].DeltaY != 300 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Section != 4 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "teleport"}]}`))
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	target := &fakeScriptTarget{}
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 60}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(target)
	p := target.pointer.Poll()
	if !p.Clicked || p.X != 50 || p.Y != 60 {
		t.Errorf("pointer = %+v, want click at (50, 60)", p)
	}
	if !runner.Done() {
		t.Error("runner should be done after its only step")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	target := &fakeScriptTarget{}
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1 executes the wait, frames 2 and 3 count it down.
	for i := 0; i < 3; i++ {
		runner.step(target)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i+1)
		}
	}

	runner.step(target)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(target.screenshots) != 1 || target.screenshots[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", target.screenshots)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	target := &fakeScriptTarget{}
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromY": 500, "toY": 100, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(target)
	if target.queue.Pending() != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", target.queue.Pending())
	}
	if runner.Done() {
		t.Error("runner should not be done while the queue has events")
	}
}

func TestRunnerWaitsForInputQueue(t *testing.T) {
	target := &fakeScriptTarget{}
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wheel", "deltaY": 100},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(target)
	if target.queue.Pending() != 1 {
		t.Fatalf("expected 1 event, got %d", target.queue.Pending())
	}

	runner.step(target)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	target.queue.Poll(&recordingHandler{})

	runner.step(target)
	if len(target.screenshots) != 1 || target.screenshots[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", target.screenshots)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerNavigateAndMute(t *testing.T) {
	target := &fakeScriptTarget{}
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "navigate", "section": 2},
		{"action": "mute"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(target)
	runner.step(target)
	if len(target.navigated) != 1 || target.navigated[0] != 2 {
		t.Errorf("navigated = %v, want [2]", target.navigated)
	}
	if !target.muted {
		t.Error("mute step did not toggle")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
