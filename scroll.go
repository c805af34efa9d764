package valentime

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Measurer reports the extent of a viewport or content region along the
// scroll axis. A zero or negative extent means "not measured yet".
type Measurer interface {
	Extent() float64
}

// Offsetter is implemented by content that wants the scroll offset applied
// to it every frame. The engine resets the offset to zero when it stops.
type Offsetter interface {
	SetScrollOffset(offset float64)
}

// InputHandler receives discrete input events. ScrollEngine implements it;
// input sources deliver events to it from Poll.
type InputHandler interface {
	OnWheel(deltaY float64)
	OnTouchStart(y float64)
	OnTouchMove(y float64)
	OnTouchEnd()
	OnResize()
}

// InputSource is polled once per frame, before integration. Every event it
// delivers runs to completion before the engine advances.
type InputSource interface {
	Poll(h InputHandler)
}

// ScrollAxisState is a read-only snapshot of the engine's axis.
type ScrollAxisState struct {
	CurrentPosition  float64
	TargetPosition   float64
	VelocityEstimate float64
	ContentExtent    float64
	ViewportExtent   float64
}

// MaxScroll returns the upper clamp bound, never negative.
func (s ScrollAxisState) MaxScroll() float64 {
	return math.Max(0, s.ContentExtent-s.ViewportExtent)
}

// Progress returns CurrentPosition normalized to [0, 1]. Degenerate extents
// yield 0.
func (s ScrollAxisState) Progress() float64 {
	max := s.ContentExtent - s.ViewportExtent
	if max <= 0 {
		return 0
	}
	return clamp01(s.CurrentPosition / max)
}

type scrollListener struct {
	id uint32
	fn func(progress float64)
}

// ListenerHandle removes a progress listener registered with AddListener.
type ListenerHandle struct {
	id     uint32
	engine *ScrollEngine
}

// Remove unregisters the listener. Removing twice, or removing a zero
// handle, is a no-op.
func (h ListenerHandle) Remove() {
	if h.engine == nil {
		return
	}
	h.engine.RemoveListener(h)
}

// scrollTween drives both positions during a programmatic ScrollTo.
type scrollTween struct {
	current *gween.Tween
	target  *gween.Tween
	to      float64
}

// Subscription is returned by ScrollEngine.Start. Closing it is the only
// way to unbind the engine's input sources and stop its frame loop.
type Subscription struct {
	engine *ScrollEngine
	closed bool
}

// Close unbinds input sources, cancels any in-flight tween, resets the
// content offset and stops listener notification. Safe to call repeatedly.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	if s.engine != nil {
		s.engine.teardown(s)
	}
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}

// ScrollEngine turns bursty wheel and touch input into a smoothly damped
// position along an abstract content axis, and broadcasts normalized
// progress to listeners once per Tick.
//
// The input path only writes the target and the velocity estimate. Tick is
// the only writer of the current position, except while a ScrollTo tween
// owns both fields.
type ScrollEngine struct {
	cfg    ScrollConfig
	now    func() time.Time
	logger *zap.Logger

	state ScrollAxisState

	viewport Measurer
	content  Measurer
	sources  []InputSource
	sub      *Subscription

	listeners []scrollListener
	nextID    uint32

	tween *scrollTween

	touching      bool
	lastTouchY    float64
	lastTouchTime time.Time
}

// NewScrollEngine creates a stopped engine. Zero-valued tuning fields fall
// back to the defaults from DefaultConfig.
func NewScrollEngine(cfg ScrollConfig, logger *zap.Logger) *ScrollEngine {
	def := DefaultConfig().Scroll
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = def.Damping
	}
	if cfg.MomentumFactor == 0 {
		cfg.MomentumFactor = def.MomentumFactor
	}
	if cfg.VelocityDecay <= 0 || cfg.VelocityDecay > 1 {
		cfg.VelocityDecay = def.VelocityDecay
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &ScrollEngine{
		cfg:    cfg,
		now:    now,
		logger: orNop(logger).Named("scroll"),
	}
}

// Start measures the viewport and content, binds the input sources and
// starts accepting Ticks. While already started it returns the existing
// subscription unchanged. If either target is nil the call is a no-op and
// the returned subscription is already closed.
func (e *ScrollEngine) Start(viewport, content Measurer, sources ...InputSource) *Subscription {
	if e.Active() {
		return e.sub
	}
	if viewport == nil || content == nil {
		e.logger.Debug("start skipped: scroll targets not mounted")
		return &Subscription{closed: true}
	}
	e.viewport = viewport
	e.content = content
	e.sources = append(e.sources[:0], sources...)
	e.measure()
	e.state.TargetPosition = e.clampPosition(e.state.TargetPosition)
	e.sub = &Subscription{engine: e}
	e.logger.Debug("scroll engine started",
		zap.Float64("content", e.state.ContentExtent),
		zap.Float64("viewport", e.state.ViewportExtent),
		zap.Int("sources", len(sources)))
	return e.sub
}

// Stop closes the current subscription. Safe to call before Start and
// after a previous Stop.
func (e *ScrollEngine) Stop() {
	e.sub.Close()
}

// teardown is reached only through Subscription.Close.
func (e *ScrollEngine) teardown(sub *Subscription) {
	if e.sub != sub {
		return
	}
	e.sub = nil
	e.sources = e.sources[:0]
	e.tween = nil
	e.touching = false
	if o, ok := e.content.(Offsetter); ok {
		o.SetScrollOffset(0)
	}
	e.logger.Debug("scroll engine stopped")
}

// Active reports whether the engine is started and not yet stopped.
func (e *ScrollEngine) Active() bool {
	return e.sub != nil && !e.sub.closed
}

// State returns a snapshot of the axis.
func (e *ScrollEngine) State() ScrollAxisState {
	return e.state
}

// Progress returns the current normalized position in [0, 1].
func (e *ScrollEngine) Progress() float64 {
	return e.state.Progress()
}

// MaxScroll returns the largest valid target position.
func (e *ScrollEngine) MaxScroll() float64 {
	return e.state.MaxScroll()
}

// Config returns the engine's tuning.
func (e *ScrollEngine) Config() ScrollConfig {
	return e.cfg
}

// Scrolling reports whether a ScrollTo tween is in flight.
func (e *ScrollEngine) Scrolling() bool {
	return e.tween != nil
}

func (e *ScrollEngine) clampPosition(p float64) float64 {
	return clamp(p, 0, e.state.MaxScroll())
}

func (e *ScrollEngine) measure() {
	if e.content != nil {
		e.state.ContentExtent = math.Max(0, e.content.Extent())
	}
	if e.viewport != nil {
		e.state.ViewportExtent = math.Max(0, e.viewport.Extent())
	}
}

// addTarget applies an input delta to the target and clamps it.
func (e *ScrollEngine) addTarget(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	e.state.TargetPosition = e.clampPosition(e.state.TargetPosition + delta)
}

// --- Input ---

// OnWheel adds deltaY (positive scrolls forward) to the target position.
// The target is not smoothed; smoothing happens only in Tick.
func (e *ScrollEngine) OnWheel(deltaY float64) {
	e.addTarget(deltaY)
}

// OnTouchStart begins a single-finger drag at screen y.
func (e *ScrollEngine) OnTouchStart(y float64) {
	e.touching = true
	e.lastTouchY = y
	e.lastTouchTime = e.now()
	e.state.VelocityEstimate = 0
}

// OnTouchMove drags the target by the finger's movement since the last
// event and updates the velocity estimate in pixels per millisecond.
// Moves without a preceding OnTouchStart are ignored.
func (e *ScrollEngine) OnTouchMove(y float64) {
	if !e.touching {
		return
	}
	delta := e.lastTouchY - y
	now := e.now()
	elapsed := float64(now.Sub(e.lastTouchTime)) / float64(time.Millisecond)
	if elapsed > 0 {
		e.state.VelocityEstimate = delta / elapsed
	}
	e.addTarget(delta)
	e.lastTouchY = y
	e.lastTouchTime = now
}

// OnTouchEnd projects the release velocity onto the target. This fling
// offset is the only source of momentum.
func (e *ScrollEngine) OnTouchEnd() {
	if !e.touching {
		return
	}
	e.touching = false
	e.addTarget(e.state.VelocityEstimate * e.cfg.MomentumFactor)
}

// OnResize re-measures both extents. Positions are not rescaled, so the
// visible fraction may shift; the target is re-clamped into the new bounds.
func (e *ScrollEngine) OnResize() {
	e.measure()
	e.state.TargetPosition = e.clampPosition(e.state.TargetPosition)
	e.logger.Debug("scroll extents remeasured",
		zap.Float64("content", e.state.ContentExtent),
		zap.Float64("viewport", e.state.ViewportExtent))
}

// --- Programmatic navigation ---

// ScrollTo animates both the target and the current position to position
// over duration seconds with a cubic in-out ease. The damping integrator is
// bypassed until the tween completes. A non-positive duration jumps
// immediately.
func (e *ScrollEngine) ScrollTo(position float64, duration float32) {
	to := e.clampPosition(position)
	if duration <= 0 {
		e.tween = nil
		e.state.TargetPosition = to
		e.state.CurrentPosition = to
		return
	}
	e.tween = &scrollTween{
		current: gween.New(float32(e.state.CurrentPosition), float32(to), duration, ease.InOutCubic),
		target:  gween.New(float32(e.state.TargetPosition), float32(to), duration, ease.InOutCubic),
		to:      to,
	}
}

// --- Listeners ---

// AddListener registers fn to receive progress once per Tick, in
// registration order. The same function may be registered more than once.
func (e *ScrollEngine) AddListener(fn func(progress float64)) ListenerHandle {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, scrollListener{id: id, fn: fn})
	return ListenerHandle{id: id, engine: e}
}

// RemoveListener unregisters the listener behind h. Unknown handles are
// ignored. The listener list is replaced, not edited, so a Tick already
// emitting finishes over the list it started with.
func (e *ScrollEngine) RemoveListener(h ListenerHandle) {
	for i := range e.listeners {
		if e.listeners[i].id == h.id {
			kept := make([]scrollListener, 0, len(e.listeners)-1)
			kept = append(kept, e.listeners[:i]...)
			e.listeners = append(kept, e.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *ScrollEngine) ListenerCount() int {
	return len(e.listeners)
}

// --- Frame loop ---

// Tick advances the engine by one frame of dt seconds: bound input sources
// are polled, the current position chases the target (or the active tween
// advances), and progress is emitted to every listener. No-op while
// stopped.
func (e *ScrollEngine) Tick(dt float64) {
	if !e.Active() {
		return
	}
	for _, src := range e.sources {
		src.Poll(e)
		if !e.Active() {
			return
		}
	}

	if e.tween != nil {
		cur, doneCur := e.tween.current.Update(float32(dt))
		tgt, doneTgt := e.tween.target.Update(float32(dt))
		e.state.CurrentPosition = e.clampPosition(float64(cur))
		e.state.TargetPosition = e.clampPosition(float64(tgt))
		if doneCur && doneTgt {
			// Land exactly on the requested position, not its float32 image.
			e.state.CurrentPosition = e.clampPosition(e.tween.to)
			e.state.TargetPosition = e.state.CurrentPosition
			e.tween = nil
		}
	} else {
		e.state.CurrentPosition += (e.state.TargetPosition - e.state.CurrentPosition) * e.cfg.Damping
	}

	e.state.VelocityEstimate *= e.cfg.VelocityDecay

	if o, ok := e.content.(Offsetter); ok {
		o.SetScrollOffset(-e.state.CurrentPosition)
	}

	p := e.state.Progress()
	for _, l := range e.listeners {
		l.fn(p)
	}
}
