package valentime

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a resizable window described by cfg and runs e until the
// window is closed or e terminates. e is closed on return.
func Run(e *Experience, cfg WindowConfig) error {
	title := cfg.Title
	if title == "" {
		title = "Valentime"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(e)
	closeErr := e.Close()
	if runErr != nil {
		return fmt.Errorf("run game: %w", runErr)
	}
	return closeErr
}
