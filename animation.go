package valentime

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields simultaneously after an
// optional delay. Create one via TweenFade and call Update(dt) each frame.
// The group writes values straight into the target fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	delay  float32
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. While the delay is pending nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		dt = -g.delay
		g.delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Fade is the animated presentation state of one text block.
type Fade struct {
	Alpha   float64
	OffsetY float64
}

// TweenFade creates a TweenGroup that animates f.Alpha and f.OffsetY to the
// given targets over duration seconds, starting after delay seconds.
func TweenFade(f *Fade, toAlpha, toOffset float64, duration, delay float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, delay: delay}
	g.tweens[0] = gween.New(float32(f.Alpha), float32(toAlpha), duration, fn)
	g.tweens[1] = gween.New(float32(f.OffsetY), float32(toOffset), duration, fn)
	g.fields[0] = &f.Alpha
	g.fields[1] = &f.OffsetY
	return g
}
