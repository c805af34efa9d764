package valentime

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

const (
	// fadeRise is how far text travels upward while fading in.
	fadeRise     = 32.0
	fadeDuration = 1.0
	bodyDelay    = 0.3
	buttonDelay  = 0.6

	titleGap   = 24.0
	buttonGap  = 32.0
	buttonPadX = 32.0
	buttonPadY = 12.0

	dimAlpha         = 0.3
	buttonHoverAlpha = 0.8
	restartLabel     = "Begin Again"
)

// textBlock is the animated state of one section's text.
type textBlock struct {
	content SectionContent
	title   Fade
	body    Fade
	button  Fade
	groups  []*TweenGroup
}

func (b *textBlock) visible() bool {
	return b.title.Alpha > 0 || b.body.Alpha > 0 || b.button.Alpha > 0
}

// Overlay draws the text of each section over the 3D view. The active
// section's title, body and button fade in one after another while rising
// into place; the section being left fades back out.
type Overlay struct {
	blocks []textBlock
	active int
	fonts  *Fonts
	hover  bool

	width, height float64
}

// NewOverlay creates an overlay for the given sections. fonts may be nil,
// in which case nothing is measured or drawn.
func NewOverlay(contents []SectionContent, fonts *Fonts, width, height int) *Overlay {
	o := &Overlay{
		blocks: make([]textBlock, len(contents)),
		active: -1,
		fonts:  fonts,
	}
	for i, c := range contents {
		o.blocks[i] = textBlock{
			content: c,
			title:   Fade{OffsetY: fadeRise},
			body:    Fade{OffsetY: fadeRise},
			button:  Fade{OffsetY: fadeRise},
		}
	}
	o.Resize(width, height)
	return o
}

// HandleChange starts the fade-in of the new section and the fade-out of
// the previous one. Tweens start from the current values, so a section that
// is left mid-animation reverses smoothly.
func (o *Overlay) HandleChange(evt SectionChange) {
	if evt.Previous >= 0 && evt.Previous < len(o.blocks) {
		b := &o.blocks[evt.Previous]
		b.groups = append(b.groups[:0],
			TweenFade(&b.title, 0, fadeRise, fadeDuration, 0, ease.OutCubic),
			TweenFade(&b.body, 0, fadeRise, fadeDuration, 0, ease.OutCubic),
			TweenFade(&b.button, 0, fadeRise, fadeDuration, 0, ease.OutCubic),
		)
	}
	if evt.Index < 0 || evt.Index >= len(o.blocks) {
		o.active = -1
		return
	}
	b := &o.blocks[evt.Index]
	b.groups = append(b.groups[:0],
		TweenFade(&b.title, 1, 0, fadeDuration, 0, ease.OutCubic),
		TweenFade(&b.body, 1, 0, fadeDuration, bodyDelay, ease.OutCubic),
	)
	if b.content.Action == ActionRestart {
		b.groups = append(b.groups, TweenFade(&b.button, 1, 0, fadeDuration, buttonDelay, ease.OutCubic))
	}
	o.active = evt.Index
	o.hover = false
}

// Update advances every running fade by dt seconds.
func (o *Overlay) Update(dt float64) {
	for i := range o.blocks {
		b := &o.blocks[i]
		n := 0
		for _, g := range b.groups {
			g.Update(float32(dt))
			if !g.Done {
				b.groups[n] = g
				n++
			}
		}
		b.groups = b.groups[:n]
	}
}

// Animating reports whether any fade is still running.
func (o *Overlay) Animating() bool {
	for i := range o.blocks {
		if len(o.blocks[i].groups) > 0 {
			return true
		}
	}
	return false
}

// Block returns the title, body and button fades of section i.
func (o *Overlay) Block(i int) (title, body, button Fade, ok bool) {
	if i < 0 || i >= len(o.blocks) {
		return Fade{}, Fade{}, Fade{}, false
	}
	b := o.blocks[i]
	return b.title, b.body, b.button, true
}

// Resize sets the screen size the text is centered in.
func (o *Overlay) Resize(width, height int) {
	o.width, o.height = float64(width), float64(height)
}

// SetHover marks the restart button as hovered.
func (o *Overlay) SetHover(hover bool) {
	o.hover = hover
}

// layout returns the resting top edges of the title, body and button of b,
// and the button size. The block is centered vertically.
func (o *Overlay) layout(b *textBlock) (titleY, bodyY, buttonY, buttonW, buttonH float64) {
	_, th := o.measure(o.titleFont(), b.content.Title)
	_, bh := o.measure(o.bodyFont(), b.content.Body)
	total := th + titleGap + bh
	if b.content.Action == ActionRestart {
		lw, lh := o.measure(o.buttonFont(), restartLabel)
		buttonW, buttonH = lw+2*buttonPadX, lh+2*buttonPadY
		total += buttonGap + buttonH
	}
	titleY = (o.height - total) / 2
	bodyY = titleY + th + titleGap
	buttonY = bodyY + bh + buttonGap
	return titleY, bodyY, buttonY, buttonW, buttonH
}

// ButtonRect returns the restart button's screen rectangle when the active
// section shows one and it has started to appear.
func (o *Overlay) ButtonRect() (Rect, bool) {
	if o.active < 0 {
		return Rect{}, false
	}
	b := &o.blocks[o.active]
	if b.content.Action != ActionRestart || b.button.Alpha <= 0 {
		return Rect{}, false
	}
	_, _, y, w, h := o.layout(b)
	return Rect{X: (o.width - w) / 2, Y: y + b.button.OffsetY, Width: w, Height: h}, true
}

// Draw dims the 3D view and draws every block that is at least partly
// visible.
func (o *Overlay) Draw(dst *ebiten.Image) {
	if dst == nil {
		return
	}
	fillRect(dst, Rect{Width: o.width, Height: o.height}, ColorBlack.WithAlpha(dimAlpha))
	if o.fonts == nil {
		return
	}
	cx := o.width / 2
	for i := range o.blocks {
		b := &o.blocks[i]
		if !b.visible() {
			continue
		}
		ty, by, _, _, _ := o.layout(b)
		drawText(dst, b.content.Title, o.fonts.Title, cx, ty+b.title.OffsetY, text.AlignCenter, ColorWhite.WithAlpha(b.title.Alpha))
		drawText(dst, b.content.Body, o.fonts.Body, cx, by+b.body.OffsetY, text.AlignCenter, Gray(0.8).WithAlpha(b.body.Alpha))
		o.drawButton(dst, b, i == o.active && o.hover)
	}
}

func (o *Overlay) drawButton(dst *ebiten.Image, b *textBlock, hover bool) {
	if b.content.Action != ActionRestart || b.button.Alpha <= 0 {
		return
	}
	_, _, y, w, h := o.layout(b)
	alpha := b.button.Alpha
	if hover {
		alpha *= buttonHoverAlpha
	}
	r := Rect{X: (o.width - w) / 2, Y: y + b.button.OffsetY, Width: w, Height: h}
	fillRect(dst, r, ColorWhite.WithAlpha(alpha))
	drawText(dst, restartLabel, o.fonts.Button, o.width/2, r.Y+buttonPadY, text.AlignCenter, ColorBlack.WithAlpha(b.button.Alpha))
}

func (o *Overlay) titleFont() *TTFFont {
	if o.fonts == nil {
		return nil
	}
	return o.fonts.Title
}

func (o *Overlay) bodyFont() *TTFFont {
	if o.fonts == nil {
		return nil
	}
	return o.fonts.Body
}

func (o *Overlay) buttonFont() *TTFFont {
	if o.fonts == nil {
		return nil
	}
	return o.fonts.Button
}

func (o *Overlay) measure(f *TTFFont, s string) (float64, float64) {
	if f == nil {
		return 0, 0
	}
	return f.MeasureString(s)
}

// fillRect fills r on dst with c using the shared white pixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(WhitePixel, op)
}
