package valentime

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	navInset     = 32.0
	navPitch     = 28.0
	navItemWidth = 160.0
	navDotRadius = 6.0
	navLabelGap  = 16.0

	soundSize = 48.0
)

type hitKind uint8

const (
	hitNone hitKind = iota
	hitNavItem
	hitSound
	hitRestart
)

// hitTarget is the interactive element under the pointer.
type hitTarget struct {
	kind  hitKind
	index int
}

// Navigation is the column of section dots on the right edge and the sound
// toggle in the bottom-right corner.
type Navigation struct {
	labels []string
	active int
	hover  hitTarget
	font   *TTFFont

	width, height float64
}

// NewNavigation creates a navigation with one item per section. font may be
// nil, in which case labels are not drawn.
func NewNavigation(contents []SectionContent, font *TTFFont, width, height int) *Navigation {
	labels := make([]string, len(contents))
	for i, c := range contents {
		labels[i] = c.Nav
	}
	n := &Navigation{labels: labels, active: -1, font: font}
	n.Resize(width, height)
	return n
}

// HandleChange highlights the newly active section.
func (n *Navigation) HandleChange(evt SectionChange) {
	n.active = evt.Index
}

// Active returns the highlighted item, or -1.
func (n *Navigation) Active() int {
	return n.active
}

// Resize re-anchors the navigation to a screen of width x height.
func (n *Navigation) Resize(width, height int) {
	n.width, n.height = float64(width), float64(height)
}

// ItemRect returns the clickable row of item i: its dot and the label area
// to its left. The column is vertically centered.
func (n *Navigation) ItemRect(i int) (Rect, bool) {
	if i < 0 || i >= len(n.labels) {
		return Rect{}, false
	}
	top := n.height/2 - float64(len(n.labels))*navPitch/2
	return Rect{
		X:      n.width - navInset - navItemWidth,
		Y:      top + float64(i)*navPitch,
		Width:  navItemWidth,
		Height: navPitch,
	}, true
}

// SoundRect returns the sound toggle's rectangle.
func (n *Navigation) SoundRect() Rect {
	return Rect{
		X:      n.width - navInset - soundSize,
		Y:      n.height - navInset - soundSize,
		Width:  soundSize,
		Height: soundSize,
	}
}

// HitTest returns the navigation element at (x, y).
func (n *Navigation) HitTest(x, y float64) hitTarget {
	if n.SoundRect().Contains(x, y) {
		return hitTarget{kind: hitSound}
	}
	for i := range n.labels {
		if r, _ := n.ItemRect(i); r.Contains(x, y) {
			return hitTarget{kind: hitNavItem, index: i}
		}
	}
	return hitTarget{}
}

// SetHover records the element under the pointer for highlighting.
func (n *Navigation) SetHover(h hitTarget) {
	n.hover = h
}

// Draw renders the dots, the labels of the active and hovered items, and
// the sound toggle in its muted or unmuted state.
func (n *Navigation) Draw(dst *ebiten.Image, muted bool) {
	if dst == nil {
		return
	}
	for i, label := range n.labels {
		r, _ := n.ItemRect(i)
		cx := float32(n.width - navInset - navDotRadius)
		cy := float32(r.Y + navPitch/2)
		hovered := n.hover.kind == hitNavItem && n.hover.index == i

		radius := float32(navDotRadius)
		c := ColorWhite.WithAlpha(0.3)
		switch {
		case i == n.active:
			radius *= 1.5
			c = ColorWhite
		case hovered:
			c = ColorWhite.WithAlpha(0.6)
		}
		vector.DrawFilledCircle(dst, cx, cy, radius, c.toRGBA(), true)

		if (i == n.active || hovered) && n.font != nil {
			_, lh := n.font.MeasureString(label)
			lx := float64(cx) - navDotRadius - navLabelGap
			drawText(dst, label, n.font, lx, float64(cy)-lh/2, text.AlignEnd, ColorWhite.WithAlpha(0.8))
		}
	}
	n.drawSound(dst, muted)
}

func (n *Navigation) drawSound(dst *ebiten.Image, muted bool) {
	r := n.SoundRect()
	alpha := 0.6
	if n.hover.kind == hitSound {
		alpha = 1
	}
	c := ColorWhite.WithAlpha(alpha).toRGBA()
	cx, cy := float32(r.X+r.Width/2), float32(r.Y+r.Height/2)

	vector.StrokeCircle(dst, cx, cy, float32(r.Width/2)-1, 1, c, true)

	// Speaker body.
	vector.DrawFilledRect(dst, cx-10, cy-4, 6, 8, c, true)
	vector.StrokeLine(dst, cx-4, cy-4, cx+2, cy-10, 2, c, true)
	vector.StrokeLine(dst, cx-4, cy+4, cx+2, cy+10, 2, c, true)
	vector.StrokeLine(dst, cx+2, cy-10, cx+2, cy+10, 2, c, true)

	if muted {
		vector.StrokeLine(dst, cx+6, cy-5, cx+14, cy+5, 2, c, true)
		vector.StrokeLine(dst, cx+6, cy+5, cx+14, cy-5, 2, c, true)
		return
	}
	vector.StrokeLine(dst, cx+7, cy-4, cx+7, cy+4, 2, c, true)
	vector.StrokeLine(dst, cx+12, cy-8, cx+12, cy+8, 2, c, true)
}
