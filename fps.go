package valentime

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 0.5

// fpsWidget displays the current FPS and TPS in the top-left corner.
// The text is redrawn every fpsRefreshInterval seconds.
type fpsWidget struct {
	img     *ebiten.Image
	elapsed float64
	label   string
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32)}
}

// update reports whether the label was refreshed.
func (w *fpsWidget) update(dt float64) bool {
	w.elapsed += dt
	if w.elapsed < fpsRefreshInterval && w.label != "" {
		return false
	}
	w.elapsed = 0
	w.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, w.label)
	return true
}

func (w *fpsWidget) draw(dst *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(8, 8)
	dst.DrawImage(w.img, op)
}

func (w *fpsWidget) dispose() {
	w.img.Deallocate()
}
