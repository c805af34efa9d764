package valentime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"
)

// Cue names a sound the experience can play.
type Cue string

const (
	CueAmbient       Cue = "ambient"
	CueTransition    Cue = "transition"
	CueSectionChange Cue = "sectionChange"
	CueHover         Cue = "hover"
)

// CuePlayer is the audio surface the experience depends on.
type CuePlayer interface {
	Play(c Cue)
	Muted() bool
	SetMuted(muted bool)
}

// player is the subset of *audio.Player the service drives.
type player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

type sound struct {
	player player
	loop   bool
}

// AudioService owns the decoded sounds and the mute state. It is created
// once by the program and handed to the experience; nothing about it is
// global. A service without an audio context tracks mute state but plays
// nothing.
type AudioService struct {
	ctx    *audio.Context
	sounds map[Cue]*sound
	muted  bool
	closed bool
	logger *zap.Logger
}

// NewAudioService creates a service over ctx. ctx may be nil.
func NewAudioService(ctx *audio.Context, muted bool, logger *zap.Logger) *AudioService {
	return &AudioService{
		ctx:    ctx,
		sounds: make(map[Cue]*sound),
		muted:  muted,
		logger: orNop(logger).Named("audio"),
	}
}

// Load reads and decodes every configured sound from fsys. A sound that
// cannot be read or decoded is skipped; the returned error joins every
// failure.
func (a *AudioService) Load(fsys fs.FS, sounds []SoundConfig) error {
	var errs []error
	for _, sc := range sounds {
		if err := a.load(fsys, sc); err != nil {
			a.logger.Warn("sound skipped", zap.String("cue", string(sc.Name)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *AudioService) load(fsys fs.FS, sc SoundConfig) error {
	data, err := fs.ReadFile(fsys, sc.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", sc.File, err)
	}
	ext := strings.ToLower(path.Ext(sc.File))
	if ext != ".mp3" && ext != ".wav" {
		return fmt.Errorf("sound %s: unsupported format %q", sc.File, ext)
	}
	if a.ctx == nil {
		return nil
	}

	var (
		stream io.ReadSeeker
		length int64
	)
	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(a.ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode %s: %w", sc.File, err)
		}
		stream, length = s, s.Length()
	case ".wav":
		s, err := wav.DecodeWithSampleRate(a.ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode %s: %w", sc.File, err)
		}
		stream, length = s, s.Length()
	}
	if sc.Loop {
		stream = audio.NewInfiniteLoop(stream, length)
	}
	p, err := a.ctx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("player %s: %w", sc.File, err)
	}
	p.SetVolume(sc.Volume)
	a.setSound(sc.Name, p, sc.Loop)
	return nil
}

// setSound registers p for cue c, closing any previous player.
func (a *AudioService) setSound(c Cue, p player, loop bool) {
	if old, ok := a.sounds[c]; ok {
		_ = old.player.Close()
	}
	a.sounds[c] = &sound{player: p, loop: loop}
}

// Loaded reports whether a player exists for c.
func (a *AudioService) Loaded(c Cue) bool {
	_, ok := a.sounds[c]
	return ok
}

// Play starts cue c. One-shot cues restart from the beginning; a looping
// cue that is already playing is left alone. No-op while muted.
func (a *AudioService) Play(c Cue) {
	if a.muted || a.closed {
		return
	}
	s, ok := a.sounds[c]
	if !ok {
		return
	}
	if s.loop {
		if !s.player.IsPlaying() {
			s.player.Play()
		}
		return
	}
	if err := s.player.Rewind(); err != nil {
		a.logger.Debug("rewind failed", zap.String("cue", string(c)), zap.Error(err))
	}
	s.player.Play()
}

// Stop pauses cue c.
func (a *AudioService) Stop(c Cue) {
	if s, ok := a.sounds[c]; ok {
		s.player.Pause()
	}
}

// Muted reports the mute state.
func (a *AudioService) Muted() bool {
	return a.muted
}

// SetMuted changes the mute state. Unmuting starts the ambient loop and
// muting pauses every sound.
func (a *AudioService) SetMuted(muted bool) {
	if a.muted == muted {
		return
	}
	a.muted = muted
	a.logger.Debug("mute changed", zap.Bool("muted", muted))
	if muted {
		for _, s := range a.sounds {
			s.player.Pause()
		}
		return
	}
	a.Play(CueAmbient)
}

// Toggle flips the mute state and returns the new value.
func (a *AudioService) Toggle() bool {
	a.SetMuted(!a.muted)
	return a.muted
}

// Close releases every player. Safe to call more than once.
func (a *AudioService) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	var errs []error
	for c, s := range a.sounds {
		s.player.Pause()
		if err := s.player.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", c, err))
		}
	}
	clear(a.sounds)
	return errors.Join(errs...)
}
