package layout

import "github.com/jaimet/lanta/internal/platform"

// Tiled stacks windows vertically in equal full-width strips. The strip
// height is the integer division of the viewport height by the window
// count, so a few pixels may be left over at the bottom.
type Tiled struct {
	Label string
}

func (l Tiled) Name() string { return l.Label }

func (l Tiled) Arrange(viewport platform.Rect, _ *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error {
	if len(windows) == 0 {
		return nil
	}
	return apply(c, windows, TiledPositions(len(windows), viewport))
}

// TiledPositions returns the strips Tiled assigns to n windows.
func TiledPositions(n int, viewport platform.Rect) []platform.Rect {
	if n == 0 {
		return nil
	}
	tile := viewport.Height / n
	positions := make([]platform.Rect, n)
	for i := range positions {
		positions[i] = platform.Rect{
			X:      viewport.X,
			Y:      viewport.Y + i*tile,
			Width:  viewport.Width,
			Height: tile,
		}
	}
	return positions
}
