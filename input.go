package valentime

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DeviceInput is the InputSource backed by Ebitengine's wheel and touch
// state. Only the first finger down is tracked; further fingers are ignored
// until it lifts.
type DeviceInput struct {
	// WheelScale converts wheel offset units into scroll pixels.
	WheelScale float64

	touchIDs    []ebiten.TouchID
	primary     ebiten.TouchID
	hasPrimary  bool
	lastTouchY  float64
	lastWheelOK bool
}

// NewDeviceInput returns a DeviceInput using scale pixels per wheel unit.
func NewDeviceInput(scale float64) *DeviceInput {
	if scale <= 0 {
		scale = DefaultConfig().Scroll.WheelScale
	}
	return &DeviceInput{WheelScale: scale}
}

// Poll reads this frame's wheel offset and primary touch, and forwards
// them to h.
func (d *DeviceInput) Poll(h InputHandler) {
	d.pollWheel(h)
	d.pollTouch(h)
}

func (d *DeviceInput) pollWheel(h InputHandler) {
	_, yoff := ebiten.Wheel()
	if yoff == 0 || math.IsNaN(yoff) {
		return
	}
	// Ebitengine reports wheel-up as positive; scrolling forward is wheel-down.
	h.OnWheel(-yoff * d.WheelScale)
}

func (d *DeviceInput) pollTouch(h InputHandler) {
	if d.hasPrimary {
		if inpututil.IsTouchJustReleased(d.primary) {
			d.hasPrimary = false
			h.OnTouchEnd()
			return
		}
		_, ty := ebiten.TouchPosition(d.primary)
		if y := float64(ty); y != d.lastTouchY {
			d.lastTouchY = y
			h.OnTouchMove(y)
		}
		return
	}

	d.touchIDs = inpututil.AppendJustPressedTouchIDs(d.touchIDs[:0])
	if len(d.touchIDs) == 0 {
		return
	}
	d.primary = d.touchIDs[0]
	d.hasPrimary = true
	_, ty := ebiten.TouchPosition(d.primary)
	d.lastTouchY = float64(ty)
	h.OnTouchStart(d.lastTouchY)
}

// Pointer is the UI pointer state for one frame: mouse cursor, or the
// first touch on touch devices.
type Pointer struct {
	X, Y float64
	// Clicked is true on the frame a mouse button or a finger was released
	// over the same spot it went down, within tapSlop pixels.
	Clicked bool
	// Present is false when no cursor or finger position is known.
	Present bool
}

const tapSlop = 8.0

// PointerTracker polls the mouse and the first touch each frame and
// reduces them to a Pointer for hover and click handling.
type PointerTracker struct {
	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	injected []Pointer
}

// InjectClick queues a synthetic click at screen (x, y). It is returned by
// the next Poll instead of device state.
func (t *PointerTracker) InjectClick(x, y float64) {
	t.injected = append(t.injected, Pointer{X: x, Y: y, Clicked: true, Present: true})
}

// Poll returns this frame's pointer.
func (t *PointerTracker) Poll() Pointer {
	if len(t.injected) > 0 {
		p := t.injected[0]
		copy(t.injected, t.injected[1:])
		t.injected = t.injected[:len(t.injected)-1]
		return p
	}

	if p, ok := t.pollTouch(); ok {
		return p
	}

	mx, my := ebiten.CursorPosition()
	return Pointer{
		X:       float64(mx),
		Y:       float64(my),
		Clicked: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Present: true,
	}
}

func (t *PointerTracker) pollTouch() (Pointer, bool) {
	if !t.touching {
		t.touchIDs = inpututil.AppendJustPressedTouchIDs(t.touchIDs[:0])
		if len(t.touchIDs) == 0 {
			return Pointer{}, false
		}
		t.touch = t.touchIDs[0]
		t.touching = true
		x, y := ebiten.TouchPosition(t.touch)
		t.startX, t.startY = float64(x), float64(y)
		t.lastX, t.lastY = t.startX, t.startY
		return Pointer{X: t.lastX, Y: t.lastY, Present: true}, true
	}
	if inpututil.IsTouchJustReleased(t.touch) {
		t.touching = false
		dx, dy := t.lastX-t.startX, t.lastY-t.startY
		tap := dx*dx+dy*dy <= tapSlop*tapSlop
		return Pointer{X: t.lastX, Y: t.lastY, Clicked: tap, Present: true}, true
	}
	x, y := ebiten.TouchPosition(t.touch)
	t.lastX, t.lastY = float64(x), float64(y)
	return Pointer{X: t.lastX, Y: t.lastY, Present: true}, true
}
