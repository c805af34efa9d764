package valentime

import (
	"math"
	"testing"
)

func newTestOverlay() *Overlay {
	return NewOverlay(DefaultConfig().Sections, nil, 800, 600)
}

func TestOverlayStartsHidden(t *testing.T) {
	o := newTestOverlay()
	for i := 0; i < 5; i++ {
		title, body, button, ok := o.Block(i)
		if !ok {
			t.Fatalf("block %d missing", i)
		}
		if title.Alpha != 0 || body.Alpha != 0 || button.Alpha != 0 {
			t.Errorf("block %d visible before any change", i)
		}
		if title.OffsetY != fadeRise {
			t.Errorf("block %d offset = %f, want %f", i, title.OffsetY, fadeRise)
		}
	}
	if _, ok := o.ButtonRect(); ok {
		t.Error("button reported before any section is active")
	}
}

func TestOverlayFadeInStaggered(t *testing.T) {
	o := newTestOverlay()
	o.HandleChange(SectionChange{Index: 0, Previous: -1})

	o.Update(0.2)
	title, body, _, _ := o.Block(0)
	if title.Alpha <= 0 {
		t.Error("title did not start fading in")
	}
	if body.Alpha != 0 {
		t.Errorf("body alpha = %f during its delay, want 0", body.Alpha)
	}

	o.Update(0.8)
	title, body, _, _ = o.Block(0)
	if title.Alpha != 1 || title.OffsetY != 0 {
		t.Errorf("title = %+v, want alpha 1 offset 0", title)
	}
	if body.Alpha <= 0 || body.Alpha >= 1 {
		t.Errorf("body alpha = %f, want mid-fade", body.Alpha)
	}

	o.Update(0.5)
	_, body, _, _ = o.Block(0)
	if body.Alpha != 1 || body.OffsetY != 0 {
		t.Errorf("body = %+v, want alpha 1 offset 0", body)
	}
	if o.Animating() {
		t.Error("still animating after every fade finished")
	}
}

func TestOverlayPreviousFadesOut(t *testing.T) {
	o := newTestOverlay()
	o.HandleChange(SectionChange{Index: 0, Previous: -1})
	o.Update(2)

	o.HandleChange(SectionChange{Index: 1, Previous: 0})
	o.Update(0.5)
	title, _, _, _ := o.Block(0)
	if title.Alpha <= 0 || title.Alpha >= 1 {
		t.Errorf("leaving title alpha = %f, want mid-fade", title.Alpha)
	}
	o.Update(2)
	title, body, _, _ := o.Block(0)
	if title.Alpha != 0 || body.Alpha != 0 {
		t.Errorf("section 0 still visible: title %f body %f", title.Alpha, body.Alpha)
	}
	if title.OffsetY != fadeRise {
		t.Errorf("leaving offset = %f, want %f", title.OffsetY, fadeRise)
	}
	title, _, _, _ = o.Block(1)
	if title.Alpha != 1 {
		t.Errorf("section 1 title alpha = %f, want 1", title.Alpha)
	}
}

func TestOverlayRestartButton(t *testing.T) {
	o := newTestOverlay()
	o.HandleChange(SectionChange{Index: 3, Previous: -1})
	o.Update(2)
	if _, ok := o.ButtonRect(); ok {
		t.Error("section without restart action exposes a button")
	}

	o.HandleChange(SectionChange{Index: 4, Previous: 3})
	o.Update(0.5)
	if _, ok := o.ButtonRect(); ok {
		t.Error("button clickable during its delay")
	}
	o.Update(2)
	r, ok := o.ButtonRect()
	if !ok {
		t.Fatal("restart button missing on final section")
	}
	wantW := 2 * buttonPadX
	if r.Width != wantW || math.Abs(r.X-(800-wantW)/2) > epsilon {
		t.Errorf("button rect = %+v, want centered width %f", r, wantW)
	}
	if !r.Contains(r.X+1, r.Y+1) {
		t.Error("button rect does not contain its own corner")
	}
}

func TestOverlayIgnoresOutOfRange(t *testing.T) {
	o := newTestOverlay()
	o.HandleChange(SectionChange{Index: 9, Previous: 7})
	if o.Animating() {
		t.Error("out-of-range change started fades")
	}
	if _, _, _, ok := o.Block(9); ok {
		t.Error("Block(9) reported ok")
	}
}
