package valentime

import "math"

type syntheticKind uint8

const (
	syntheticWheel syntheticKind = iota
	syntheticTouchStart
	syntheticTouchMove
	syntheticTouchEnd
	syntheticResize
)

// syntheticEvent represents a single injected input event.
type syntheticEvent struct {
	kind  syntheticKind
	value float64
}

// InputQueue is an InputSource fed by code instead of devices. Scripted
// runs and tests use it to drive a ScrollEngine frame by frame.
// Each Poll delivers exactly one queued event, so a queued drag plays out
// over consecutive frames the way a real finger would.
type InputQueue struct {
	events []syntheticEvent
}

// InjectWheel queues a wheel event. Positive deltaY scrolls forward.
func (q *InputQueue) InjectWheel(deltaY float64) {
	q.events = append(q.events, syntheticEvent{kind: syntheticWheel, value: deltaY})
}

// InjectTouchStart queues a finger press at screen y.
func (q *InputQueue) InjectTouchStart(y float64) {
	q.events = append(q.events, syntheticEvent{kind: syntheticTouchStart, value: y})
}

// InjectTouchMove queues a finger move to screen y.
func (q *InputQueue) InjectTouchMove(y float64) {
	q.events = append(q.events, syntheticEvent{kind: syntheticTouchMove, value: y})
}

// InjectTouchEnd queues a finger release.
func (q *InputQueue) InjectTouchEnd() {
	q.events = append(q.events, syntheticEvent{kind: syntheticTouchEnd})
}

// InjectResize queues a viewport re-measure.
func (q *InputQueue) InjectResize() {
	q.events = append(q.events, syntheticEvent{kind: syntheticResize})
}

// InjectTouchDrag queues a full drag: press at fromY, linearly interpolated
// moves over frames-2 intermediate frames, a move to toY and a release.
// Minimum frames is 3 (press, move, release).
func (q *InputQueue) InjectTouchDrag(fromY, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	q.InjectTouchStart(fromY)
	steps := frames - 3
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.InjectTouchMove(fromY + (toY-fromY)*t)
	}
	q.InjectTouchMove(toY)
	q.InjectTouchEnd()
}

// Pending returns the number of queued events.
func (q *InputQueue) Pending() int {
	return len(q.events)
}

// Clear drops every queued event.
func (q *InputQueue) Clear() {
	q.events = q.events[:0]
}

// Poll pops one event from the queue and delivers it to h. Events with a
// non-finite value are dropped.
func (q *InputQueue) Poll(h InputHandler) {
	if len(q.events) == 0 {
		return
	}
	evt := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]

	if math.IsNaN(evt.value) || math.IsInf(evt.value, 0) {
		return
	}
	switch evt.kind {
	case syntheticWheel:
		h.OnWheel(evt.value)
	case syntheticTouchStart:
		h.OnTouchStart(evt.value)
	case syntheticTouchMove:
		h.OnTouchMove(evt.value)
	case syntheticTouchEnd:
		h.OnTouchEnd()
	case syntheticResize:
		h.OnResize()
	}
}
