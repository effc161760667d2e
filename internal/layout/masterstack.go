package layout

import (
	"fmt"
	"math"

	"github.com/jaimet/lanta/internal/platform"
)

// MasterStack gives the first window a left master pane of MasterPercent
// of the viewport width. The remaining windows fill a grid on the right.
type MasterStack struct {
	Label         string
	Gap           int
	MasterPercent int
	MaxStackRows  int
}

func (l MasterStack) Name() string { return l.Label }

func (l MasterStack) Arrange(viewport platform.Rect, _ *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error {
	if len(windows) == 0 {
		return nil
	}
	positions, err := l.positions(len(windows), viewport)
	if err != nil {
		return err
	}
	return apply(c, windows, positions)
}

func (l MasterStack) positions(numWindows int, viewport platform.Rect) ([]platform.Rect, error) {
	gap := l.Gap
	masterWidth := (viewport.Width * l.MasterPercent / 100) - gap
	fullHeight := viewport.Height - 2*gap

	if numWindows == 1 {
		if masterWidth <= 0 || fullHeight <= 0 {
			return nil, fmt.Errorf("insufficient space for master-stack layout: viewport=%dx%d gap=%d",
				viewport.Width, viewport.Height, gap)
		}
		return []platform.Rect{{
			X:      viewport.X + gap,
			Y:      viewport.Y + gap,
			Width:  masterWidth,
			Height: fullHeight,
		}}, nil
	}

	stackCount := numWindows - 1
	stackCols := 1
	if l.MaxStackRows > 0 {
		stackCols = int(math.Ceil(float64(stackCount) / float64(l.MaxStackRows)))
	}
	stackRows := int(math.Ceil(float64(stackCount) / float64(stackCols)))

	rightX := viewport.X + masterWidth + 2*gap
	rightWidth := viewport.Width - masterWidth - 3*gap
	cellWidth := (rightWidth - (stackCols-1)*gap) / stackCols
	cellHeight := (fullHeight - (stackRows-1)*gap) / stackRows

	if masterWidth <= 0 || cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for master-stack layout: viewport=%dx%d masterWidth=%d cellWidth=%d cellHeight=%d gap=%d",
			viewport.Width, viewport.Height, masterWidth, cellWidth, cellHeight, gap,
		)
	}

	positions := make([]platform.Rect, numWindows)
	positions[0] = platform.Rect{
		X:      viewport.X + gap,
		Y:      viewport.Y + gap,
		Width:  masterWidth,
		Height: fullHeight,
	}
	for i := 0; i < stackCount; i++ {
		// Stack windows fill columns top to bottom.
		col := i / stackRows
		row := i % stackRows
		positions[i+1] = platform.Rect{
			X:      rightX + col*(cellWidth+gap),
			Y:      viewport.Y + gap + row*(cellHeight+gap),
			Width:  cellWidth,
			Height: cellHeight,
		}
	}
	return positions, nil
}
