package valentime

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Viewport is the visible window onto the scroll axis.
type Viewport struct {
	Height float64
}

// Extent implements Measurer.
func (v *Viewport) Extent() float64 {
	return v.Height
}

// VirtualContent is the scrollable document: Screens viewport heights
// tall. It has no pixels of its own; the engine's offset is recorded so
// the rest of the frame can read where the document would be.
type VirtualContent struct {
	viewport *Viewport
	Screens  float64
	offset   float64
}

// Extent implements Measurer.
func (c *VirtualContent) Extent() float64 {
	return c.viewport.Height * c.Screens
}

// SetScrollOffset implements Offsetter.
func (c *VirtualContent) SetScrollOffset(y float64) {
	c.offset = y
}

// Offset returns the last offset written by the engine.
func (c *VirtualContent) Offset() float64 {
	return c.offset
}

// silentPlayer stands in when no CuePlayer is supplied.
type silentPlayer struct{ muted bool }

func (p *silentPlayer) Play(Cue) {}
func (p *silentPlayer) Muted() bool { return p.muted }
func (p *silentPlayer) SetMuted(m bool) { p.muted = m }

// Experience wires scrolling, sections, the 3D scene and the UI into an
// ebiten.Game. Scroll progress flows one way: the engine feeds the scene's
// camera and the section tracker; the tracker feeds the overlay, the
// navigation and the section-change cue.
type Experience struct {
	cfg    Config
	logger *zap.Logger
	audio  CuePlayer

	viewport *Viewport
	content  *VirtualContent
	queue    InputQueue
	pointer  PointerTracker
	engine   *ScrollEngine
	sub      *Subscription

	camera   *Camera
	scene    *SceneGraph
	renderer *Renderer
	tracker  *SectionTracker
	overlay  *Overlay
	nav      *Navigation

	fps    *fpsWidget
	stats  *frameStats
	shots  *screenshotter
	runner *TestRunner

	hover         hitTarget
	width, height int
	closed        bool
}

// NewExperience builds and starts an experience from cfg. player may be
// nil. Extra input sources, typically a DeviceInput, are polled after the
// built-in synthetic queue every frame.
func NewExperience(cfg Config, player CuePlayer, logger *zap.Logger, sources ...InputSource) (*Experience, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger = orNop(logger)
	if player == nil {
		player = &silentPlayer{muted: cfg.Audio.Muted}
	}
	fonts, err := LoadDefaultFonts()
	if err != nil {
		return nil, err
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	e := &Experience{
		cfg:      cfg,
		logger:   logger,
		audio:    player,
		viewport: &Viewport{Height: float64(h)},
		width:    w,
		height:   h,
		stats:    newFrameStats(logger),
		shots:    newScreenshotter(cfg.ScreenshotDir, logger),
	}
	e.content = &VirtualContent{viewport: e.viewport, Screens: cfg.Scroll.ContentScreens}

	e.camera = NewCamera(cfg.Scene, w, h)
	e.scene = NewSceneGraph(cfg.Scene, len(cfg.Sections), e.camera, logger)
	e.scene.Initialize()
	e.scene.OnResize(w, h)

	e.renderer = NewRenderer(e.camera, w, h, logger)
	e.renderer.SetClearColor(cfg.Scene.Clear)
	e.renderer.SetDebugMode(cfg.Debug)
	e.renderer.Mount(e.scene)

	e.tracker = NewSectionTracker(cfg.Sections, logger)
	e.overlay = NewOverlay(cfg.Sections, fonts, w, h)
	e.nav = NewNavigation(cfg.Sections, fonts.Small, w, h)
	e.tracker.OnChange(e.overlay.HandleChange)
	e.tracker.OnChange(e.nav.HandleChange)
	e.tracker.OnChange(e.playSectionCue)

	if cfg.Window.ShowFPS {
		e.fps = newFPSWidget()
	}

	e.engine = NewScrollEngine(cfg.Scroll, logger)
	e.engine.AddListener(e.scene.ApplyScrollProgress)
	e.engine.AddListener(e.tracker.Update)
	e.sub = e.engine.Start(e.viewport, e.content, append([]InputSource{&e.queue}, sources...)...)

	logger.Info("experience ready",
		zap.Int("sections", len(cfg.Sections)),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Bool("muted", player.Muted()))
	return e, nil
}

// SetTestRunner attaches a scripted runner. Its steps run at the start of
// every Update, and Update returns ebiten.Termination once the script is
// done and its screenshots are written.
func (e *Experience) SetTestRunner(r *TestRunner) {
	e.runner = r
}

// Update implements ebiten.Game.
func (e *Experience) Update() error {
	if e.closed {
		return ebiten.Termination
	}
	if e.runner != nil {
		if e.runner.Done() && e.shots.pending() == 0 {
			return ebiten.Termination
		}
		e.runner.step(e)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		e.ToggleMute()
	}
	e.frame(1/float64(ebiten.TPS()), e.pointer.Poll())
	return nil
}

// frame advances everything by dt seconds with the pointer state p.
func (e *Experience) frame(dt float64, p Pointer) {
	e.handlePointer(p)
	e.engine.Tick(dt)
	e.scene.Update(dt)
	e.overlay.Update(dt)
	if e.fps != nil {
		e.fps.update(dt)
	}
	if e.cfg.Debug {
		e.stats.observe(dt, e.renderer.Stats(), e.engine.Progress(), e.tracker.Active())
	}
}

// playSectionCue sounds every transition except the first activation.
func (e *Experience) playSectionCue(evt SectionChange) {
	if evt.Previous >= 0 {
		e.audio.Play(CueSectionChange)
	}
}

func (e *Experience) hitTest(x, y float64) hitTarget {
	if r, ok := e.overlay.ButtonRect(); ok && r.Contains(x, y) {
		return hitTarget{kind: hitRestart}
	}
	return e.nav.HitTest(x, y)
}

func (e *Experience) handlePointer(p Pointer) {
	var target hitTarget
	if p.Present {
		target = e.hitTest(p.X, p.Y)
	}
	if target != e.hover {
		if target.kind != hitNone {
			e.audio.Play(CueHover)
		}
		e.hover = target
		e.nav.SetHover(target)
		e.overlay.SetHover(target.kind == hitRestart)
	}
	if !p.Clicked {
		return
	}
	switch target.kind {
	case hitNavItem:
		e.ScrollToSection(target.index, e.cfg.Scroll.NavigateDuration)
	case hitRestart:
		e.ScrollToSection(0, e.cfg.Scroll.NavigateDuration)
	case hitSound:
		e.ToggleMute()
	}
}

// Draw implements ebiten.Game.
func (e *Experience) Draw(screen *ebiten.Image) {
	e.renderer.Render(screen)
	e.overlay.Draw(screen)
	e.nav.Draw(screen, e.audio.Muted())
	if e.fps != nil {
		e.fps.draw(screen)
	}
	e.shots.flush(screen)
}

// Layout implements ebiten.Game. The logical screen follows the window.
func (e *Experience) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.width || outsideHeight != e.height {
		e.Resize(outsideWidth, outsideHeight)
	}
	return e.width, e.height
}

// Resize propagates a new screen size to every component. The scroll
// engine re-measures without rescaling its position.
func (e *Experience) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	e.viewport.Height = float64(height)
	e.renderer.Resize(width, height)
	e.scene.OnResize(width, height)
	e.overlay.Resize(width, height)
	e.nav.Resize(width, height)
	e.engine.OnResize()
	e.logger.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// ScrollToSection animates to the start of section index over duration
// seconds and plays the transition cue. Out-of-range indices are clamped.
func (e *Experience) ScrollToSection(index int, duration float32) {
	n := e.tracker.Len()
	if n == 0 {
		return
	}
	index = max(0, min(index, n-1))
	e.engine.ScrollTo(sectionPosition(index, n, e.engine.MaxScroll()), duration)
	e.audio.Play(CueTransition)
}

// ToggleMute flips the mute state and returns the new state.
func (e *Experience) ToggleMute() bool {
	muted := !e.audio.Muted()
	e.audio.SetMuted(muted)
	e.logger.Info("audio toggled", zap.Bool("muted", muted))
	return muted
}

// Screenshot queues a labeled capture of the next drawn frame.
func (e *Experience) Screenshot(label string) {
	e.shots.request(label)
}

func (e *Experience) inputQueue() *InputQueue {
	return &e.queue
}

func (e *Experience) pointerTracker() *PointerTracker {
	return &e.pointer
}

// Engine returns the scroll engine.
func (e *Experience) Engine() *ScrollEngine { return e.engine }

// Tracker returns the section tracker.
func (e *Experience) Tracker() *SectionTracker { return e.tracker }

// Scene returns the 3D scene.
func (e *Experience) Scene() *SceneGraph { return e.scene }

// Renderer returns the renderer.
func (e *Experience) Renderer() *Renderer { return e.renderer }

// Close stops scrolling and releases the scene, the renderer and the audio
// player when it is an io.Closer. Safe to call more than once.
func (e *Experience) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.sub.Close()
	e.scene.Dispose()
	e.renderer.Dispose()
	if e.fps != nil {
		e.fps.dispose()
	}
	var errs []error
	if c, ok := e.audio.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close audio: %w", err))
		}
	}
	e.logger.Info("experience closed")
	return errors.Join(errs...)
}

// sectionPosition returns the scroll position where section index of n
// begins. index/n of the range can land a few ulps short of the boundary,
// so the position is stepped up until it maps back to index.
func sectionPosition(index, n int, maxScroll float64) float64 {
	pos := float64(index) / float64(n) * maxScroll
	for pos < maxScroll && MapToSection(pos/maxScroll, n) < index {
		pos = math.Nextafter(pos, maxScroll)
	}
	return pos
}
