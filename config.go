package valentime

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the complete tuning and content description for an Experience.
// Start from DefaultConfig, then overlay a YAML file with LoadConfig and
// environment variables with ApplyEnv.
type Config struct {
	Window   WindowConfig     `yaml:"window"   envPrefix:"VALENTIME_WINDOW_"`
	Scroll   ScrollConfig     `yaml:"scroll"   envPrefix:"VALENTIME_SCROLL_"`
	Scene    SceneConfig      `yaml:"scene"    envPrefix:"VALENTIME_SCENE_"`
	Audio    AudioConfig      `yaml:"audio"    envPrefix:"VALENTIME_AUDIO_"`
	Sections []SectionContent `yaml:"sections"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"VALENTIME_LOG_LEVEL"`
	// Debug enables per-frame stats logging and the FPS overlay.
	Debug bool `yaml:"debug" env:"VALENTIME_DEBUG"`
	// ScreenshotDir is where scripted screenshots are written.
	ScreenshotDir string `yaml:"screenshot_dir" env:"VALENTIME_SCREENSHOT_DIR"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title   string `yaml:"title"    env:"TITLE"`
	Width   int    `yaml:"width"    env:"WIDTH"`
	Height  int    `yaml:"height"   env:"HEIGHT"`
	ShowFPS bool   `yaml:"show_fps" env:"SHOW_FPS"`
}

// ScrollConfig tunes the scroll engine.
type ScrollConfig struct {
	// Damping is the fraction of the remaining distance covered per frame.
	// Must be in (0, 1].
	Damping float64 `yaml:"damping" env:"DAMPING"`
	// MomentumFactor scales the release velocity (pixels per millisecond)
	// into a fling offset.
	MomentumFactor float64 `yaml:"momentum_factor" env:"MOMENTUM_FACTOR"`
	// VelocityDecay multiplies the touch velocity estimate every frame.
	VelocityDecay float64 `yaml:"velocity_decay" env:"VELOCITY_DECAY"`
	// WheelScale converts one wheel notch into pixels of scroll.
	WheelScale float64 `yaml:"wheel_scale" env:"WHEEL_SCALE"`
	// NavigateDuration is the default ScrollTo duration in seconds.
	NavigateDuration float32 `yaml:"navigate_duration" env:"NAVIGATE_DURATION"`
	// ContentScreens is the virtual content height in viewport heights.
	ContentScreens float64 `yaml:"content_screens" env:"CONTENT_SCREENS"`

	// Clock supplies timestamps for touch velocity. Defaults to time.Now.
	Clock func() time.Time `yaml:"-"`
}

// SceneConfig tunes the camera and the 3D content.
type SceneConfig struct {
	InitialDepth   float64 `yaml:"initial_depth"   env:"INITIAL_DEPTH"`
	TotalTravel    float64 `yaml:"total_travel"    env:"TOTAL_TRAVEL"`
	SectionSpacing float64 `yaml:"section_spacing" env:"SECTION_SPACING"`
	// CameraLerp is the per-frame fraction the camera moves toward its
	// target depth. Must be in (0, 1].
	CameraLerp     float64 `yaml:"camera_lerp"     env:"CAMERA_LERP"`
	ParticleCount  int     `yaml:"particle_count"  env:"PARTICLE_COUNT"`
	ParticleRadius float64 `yaml:"particle_radius" env:"PARTICLE_RADIUS"`
	// ParticleDrift is the amplitude of the idle vertical wave.
	ParticleDrift float64 `yaml:"particle_drift" env:"PARTICLE_DRIFT"`
	FOV           float64 `yaml:"fov"            env:"FOV"`
	Near          float64 `yaml:"near"           env:"NEAR"`
	Far           float64 `yaml:"far"            env:"FAR"`
	// Seed makes content generation reproducible. Zero picks a random seed.
	Seed  uint64 `yaml:"seed"  env:"SEED"`
	Clear Color  `yaml:"clear"`
}

// AudioConfig lists the sound assets and the initial mute state.
type AudioConfig struct {
	Dir    string        `yaml:"dir"   env:"DIR"`
	Muted  bool          `yaml:"muted" env:"MUTED"`
	Sounds []SoundConfig `yaml:"sounds"`
}

// SoundConfig describes one cue. The decoder is chosen by file extension
// (.mp3 or .wav).
type SoundConfig struct {
	Name   Cue     `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

// SectionContent is the static text bound to one section.
type SectionContent struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	// Nav is the short label shown next to the navigation dot.
	Nav string `yaml:"nav"`
	// Action, when set to "restart", shows a button that scrolls back to the
	// first section.
	Action string `yaml:"action,omitempty"`
}

// ActionRestart is the SectionContent.Action that shows a "Begin Again" button.
const ActionRestart = "restart"

// DefaultConfig returns the built-in tuning and content.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Valentime",
			Width:  1280,
			Height: 720,
		},
		Scroll: ScrollConfig{
			Damping:          0.1,
			MomentumFactor:   100,
			VelocityDecay:    0.95,
			WheelScale:       100,
			NavigateDuration: 1.5,
			ContentScreens:   5,
		},
		Scene: SceneConfig{
			InitialDepth:   5,
			TotalTravel:    80,
			SectionSpacing: 20,
			CameraLerp:     0.05,
			ParticleCount:  10000,
			ParticleRadius: 50,
			ParticleDrift:  0.5,
			FOV:            75,
			Near:           0.1,
			Far:            1000,
			Clear:          ColorBlack,
		},
		Audio: AudioConfig{
			Dir:   "assets/audio",
			Muted: true,
			Sounds: []SoundConfig{
				{Name: CueAmbient, File: "ambient.mp3", Volume: 0.2, Loop: true},
				{Name: CueTransition, File: "transition.wav", Volume: 0.5},
				{Name: CueSectionChange, File: "section-change.wav", Volume: 0.3},
				{Name: CueHover, File: "hover.wav", Volume: 0.2},
			},
		},
		Sections: []SectionContent{
			{Title: "Begin Your Journey", Body: "Explore the interconnection of love and time through an immersive experience", Nav: "Begin"},
			{Title: "Eternal Connection", Body: "Discover how love transcends the boundaries of space and time", Nav: "Connect"},
			{Title: "Moments That Last", Body: "Every second becomes eternal in the presence of love", Nav: "Moments"},
			{Title: "Beyond Reality", Body: "Experience the dimensions where love creates its own universe", Nav: "Beyond"},
			{Title: "Valentime", Body: "Where love and time become one", Nav: "Finale", Action: ActionRestart},
		},
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig decodes YAML from r on top of base. Fields absent from the
// document keep their base values.
func LoadConfig(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile opens path and decodes it with LoadConfig.
func LoadConfigFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f, base)
}

// ApplyEnv overlays VALENTIME_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	if c.Scroll.Damping <= 0 || c.Scroll.Damping > 1 {
		errs = append(errs, fmt.Errorf("scroll.damping %v not in (0, 1]", c.Scroll.Damping))
	}
	if c.Scroll.VelocityDecay < 0 || c.Scroll.VelocityDecay > 1 {
		errs = append(errs, fmt.Errorf("scroll.velocity_decay %v not in [0, 1]", c.Scroll.VelocityDecay))
	}
	if c.Scroll.ContentScreens < 1 {
		errs = append(errs, fmt.Errorf("scroll.content_screens %v must be at least 1", c.Scroll.ContentScreens))
	}
	if c.Scene.CameraLerp <= 0 || c.Scene.CameraLerp > 1 {
		errs = append(errs, fmt.Errorf("scene.camera_lerp %v not in (0, 1]", c.Scene.CameraLerp))
	}
	if c.Scene.ParticleCount < 0 {
		errs = append(errs, fmt.Errorf("scene.particle_count %d is negative", c.Scene.ParticleCount))
	}
	if c.Scene.FOV <= 0 || c.Scene.FOV >= 180 {
		errs = append(errs, fmt.Errorf("scene.fov %v not in (0, 180)", c.Scene.FOV))
	}
	if c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near {
		errs = append(errs, fmt.Errorf("scene near/far %v/%v invalid", c.Scene.Near, c.Scene.Far))
	}
	if len(c.Sections) == 0 {
		errs = append(errs, errors.New("at least one section is required"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d invalid", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}
