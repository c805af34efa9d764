package valentime

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// triBatch accumulates quads that share one source image and submits them
// with a single DrawTriangles32 call. It flushes early when the vertex
// buffer would exceed ebiten.MaxVertexCount.
type triBatch struct {
	src   *ebiten.Image
	su0   float32
	sv0   float32
	su1   float32
	sv1   float32
	verts []ebiten.Vertex
	inds  []uint32

	drawCalls int
	quads     int
}

// reset binds the batch to src and clears the counters.
func (b *triBatch) reset(src *ebiten.Image) {
	b.src = src
	if src != nil {
		r := src.Bounds()
		b.su0, b.sv0 = float32(r.Min.X), float32(r.Min.Y)
		b.su1, b.sv1 = float32(r.Max.X), float32(r.Max.Y)
	}
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.drawCalls = 0
	b.quads = 0
}

// premul returns c as premultiplied float32 channels.
func premul(c Color) (r, g, b, a float32) {
	al := float32(clamp01(c.A))
	return float32(clamp01(c.R)) * al, float32(clamp01(c.G)) * al, float32(clamp01(c.B)) * al, al
}

// appendQuad adds a quad with corners (x[j], y[j]) in TL, TR, BL, BR order.
func (b *triBatch) appendQuad(target *ebiten.Image, x, y [4]float32, c Color) {
	if len(b.verts)+4 > ebiten.MaxVertexCount {
		b.flush(target)
	}
	cr, cg, cb, ca := premul(c)
	psx := [4]float32{b.su0, b.su1, b.su0, b.su1}
	psy := [4]float32{b.sv0, b.sv0, b.sv1, b.sv1}

	base := uint32(len(b.verts))
	for j := 0; j < 4; j++ {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   x[j],
			DstY:   y[j],
			SrcX:   psx[j],
			SrcY:   psy[j],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	b.quads++
}

// appendDot adds an axis-aligned square of half-size r centred on (cx, cy).
func (b *triBatch) appendDot(target *ebiten.Image, cx, cy, r float64, c Color) {
	x0, y0 := float32(cx-r), float32(cy-r)
	x1, y1 := float32(cx+r), float32(cy+r)
	b.appendQuad(target, [4]float32{x0, x1, x0, x1}, [4]float32{y0, y0, y1, y1}, c)
}

// appendLine adds a quad of the given pixel width covering the segment
// from (x0, y0) to (x1, y1). Degenerate segments are skipped.
func (b *triBatch) appendLine(target *ebiten.Image, x0, y0, x1, y1, width float64, c Color) {
	px, py := perpendicular(x1-x0, y1-y0)
	if px == 0 && py == 0 {
		return
	}
	hw := width / 2
	px, py = px*hw, py*hw
	b.appendQuad(target,
		[4]float32{float32(x0 + px), float32(x1 + px), float32(x0 - px), float32(x1 - px)},
		[4]float32{float32(y0 + py), float32(y1 + py), float32(y0 - py), float32(y1 - py)},
		c)
}

// flush submits accumulated vertices as a single DrawTriangles32 call with
// additive blending.
func (b *triBatch) flush(target *ebiten.Image) {
	if len(b.verts) == 0 || b.src == nil || target == nil {
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = ebiten.BlendLighter
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(b.verts, b.inds, b.src, &triOp)
	b.drawCalls++

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// perpendicular returns the unit vector perpendicular to (dx, dy), or zero
// for a zero-length input.
func perpendicular(dx, dy float64) (float64, float64) {
	l := math.Sqrt(dx*dx + dy*dy)
	if l == 0 {
		return 0, 0
	}
	return -dy / l, dx / l
}
