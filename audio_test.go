package valentime

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	playing bool
	plays   int
	rewinds int
	closed  bool
	volume  float64
}

func (p *fakePlayer) Play() { p.playing = true; p.plays++ }
func (p *fakePlayer) Pause() { p.playing = false }
func (p *fakePlayer) Rewind() error { p.rewinds++; return nil }
func (p *fakePlayer) IsPlaying() bool { return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Close() error { p.closed = true; return nil }

func newTestAudio(muted bool) (*AudioService, map[Cue]*fakePlayer) {
	a := NewAudioService(nil, muted, nil)
	fakes := map[Cue]*fakePlayer{}
	for _, c := range []Cue{CueAmbient, CueTransition, CueSectionChange, CueHover} {
		fakes[c] = &fakePlayer{}
		a.setSound(c, fakes[c], c == CueAmbient)
	}
	return a, fakes
}

func TestAudioMutedByDefaultConfig(t *testing.T) {
	require.True(t, DefaultConfig().Audio.Muted)
}

func TestAudioMutedPlaysNothing(t *testing.T) {
	a, fakes := newTestAudio(true)
	a.Play(CueSectionChange)
	a.Play(CueAmbient)
	for c, p := range fakes {
		require.Zero(t, p.plays, "cue %s played while muted", c)
	}
}

func TestAudioUnmuteStartsAmbient(t *testing.T) {
	a, fakes := newTestAudio(true)
	a.SetMuted(false)
	require.False(t, a.Muted())
	require.True(t, fakes[CueAmbient].playing)
	require.Equal(t, 1, fakes[CueAmbient].plays)

	a.SetMuted(false)
	require.Equal(t, 1, fakes[CueAmbient].plays, "repeated unmute restarted ambient")
}

func TestAudioMutePausesEverything(t *testing.T) {
	a, fakes := newTestAudio(false)
	a.Play(CueAmbient)
	a.Play(CueHover)
	a.SetMuted(true)
	for c, p := range fakes {
		require.False(t, p.playing, "cue %s still playing after mute", c)
	}
}

func TestAudioOneShotRewinds(t *testing.T) {
	a, fakes := newTestAudio(false)
	a.Play(CueSectionChange)
	a.Play(CueSectionChange)
	require.Equal(t, 2, fakes[CueSectionChange].plays)
	require.Equal(t, 2, fakes[CueSectionChange].rewinds)
}

func TestAudioLoopNotRestarted(t *testing.T) {
	a, fakes := newTestAudio(false)
	a.Play(CueAmbient)
	a.Play(CueAmbient)
	require.Equal(t, 1, fakes[CueAmbient].plays)
	require.Zero(t, fakes[CueAmbient].rewinds)
}

func TestAudioToggle(t *testing.T) {
	a, _ := newTestAudio(true)
	require.False(t, a.Toggle())
	require.True(t, a.Toggle())
}

func TestAudioUnknownCueIgnored(t *testing.T) {
	a := NewAudioService(nil, false, nil)
	require.NotPanics(t, func() {
		a.Play(CueHover)
		a.Stop(CueHover)
	})
	require.False(t, a.Loaded(CueHover))
}

func TestAudioCloseIdempotent(t *testing.T) {
	a, fakes := newTestAudio(false)
	a.Play(CueAmbient)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
	for c, p := range fakes {
		require.True(t, p.closed, "cue %s not closed", c)
	}
	a.Play(CueHover)
	require.Zero(t, fakes[CueHover].plays)
}

func TestAudioSetSoundReplacesPlayer(t *testing.T) {
	a, fakes := newTestAudio(false)
	old := fakes[CueHover]
	a.setSound(CueHover, &fakePlayer{}, false)
	require.True(t, old.closed)
}

func TestAudioLoadReportsFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"hover.wav":   {Data: []byte("RIFF")},
		"ambient.ogg": {Data: []byte("OggS")},
	}
	a := NewAudioService(nil, true, nil)
	err := a.Load(fsys, []SoundConfig{
		{Name: CueHover, File: "hover.wav", Volume: 0.2},
		{Name: CueAmbient, File: "ambient.ogg", Loop: true},
		{Name: CueTransition, File: "missing.wav"},
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "unsupported format")
	require.ErrorContains(t, err, "missing.wav")
	require.NotContains(t, err.Error(), "hover.wav")
}

func TestAudioLoadWithoutContextSucceeds(t *testing.T) {
	fsys := fstest.MapFS{"a.mp3": {Data: []byte{0}}}
	a := NewAudioService(nil, true, nil)
	require.NoError(t, a.Load(fsys, []SoundConfig{{Name: CueAmbient, File: "a.mp3"}}))
}
