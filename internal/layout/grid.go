package layout

import (
	"fmt"
	"math"

	"github.com/jaimet/lanta/internal/platform"
)

// Grid places windows in a near-square grid with gaps.
type Grid struct {
	Label           string
	Gap             int
	FlexibleLastRow bool
}

func (l Grid) Name() string { return l.Label }

func (l Grid) Arrange(viewport platform.Rect, _ *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error {
	if len(windows) == 0 {
		return nil
	}
	rows, cols := CalculateGrid(len(windows))
	positions, err := gridPositions(len(windows), rows, cols, viewport, l.Gap, l.FlexibleLastRow)
	if err != nil {
		return err
	}
	return apply(c, windows, positions)
}

// Columns places windows side by side at full height.
type Columns struct {
	Label string
	Gap   int
}

func (l Columns) Name() string { return l.Label }

func (l Columns) Arrange(viewport platform.Rect, _ *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error {
	if len(windows) == 0 {
		return nil
	}
	positions, err := gridPositions(len(windows), 1, len(windows), viewport, l.Gap, false)
	if err != nil {
		return err
	}
	return apply(c, windows, positions)
}

// Rows stacks windows top to bottom at full width, with gaps.
type Rows struct {
	Label string
	Gap   int
}

func (l Rows) Name() string { return l.Label }

func (l Rows) Arrange(viewport platform.Rect, _ *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error {
	if len(windows) == 0 {
		return nil
	}
	positions, err := gridPositions(len(windows), len(windows), 1, viewport, l.Gap, false)
	if err != nil {
		return err
	}
	return apply(c, windows, positions)
}

// CalculateGrid determines the grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	// Columns first (ceiling of square root), then as many rows as needed.
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// gridPositions lays out numWindows cells row-major in a rows x cols grid.
// Gaps surround every cell, so there are cols+1 horizontal and rows+1
// vertical gaps.
func gridPositions(numWindows, rows, cols int, viewport platform.Rect, gap int, flexibleLastRow bool) ([]platform.Rect, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: rows=%d cols=%d", rows, cols)
	}

	slotWidth := (viewport.Width - (cols+1)*gap) / cols
	slotHeight := (viewport.Height - (rows+1)*gap) / rows
	if slotWidth <= 0 || slotHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for layout: viewport=%dx%d rows=%d cols=%d gap=%d (slot=%dx%d)",
			viewport.Width, viewport.Height, rows, cols, gap, slotWidth, slotHeight,
		)
	}

	lastRow := rows - 1
	inLastRow := numWindows - lastRow*cols
	if inLastRow <= 0 {
		inLastRow = cols
	}

	lastRowWidth := slotWidth
	flexible := flexibleLastRow && inLastRow < cols
	if flexible {
		lastRowWidth = (viewport.Width - (inLastRow+1)*gap) / inLastRow
	}

	positions := make([]platform.Rect, numWindows)
	for i := range positions {
		row := i / cols
		col := i % cols

		width := slotWidth
		x := viewport.X + gap + col*(slotWidth+gap)
		if flexible && row == lastRow {
			width = lastRowWidth
			x = viewport.X + gap + col*(lastRowWidth+gap)
		}

		positions[i] = platform.Rect{
			X:      x,
			Y:      viewport.Y + gap + row*(slotHeight+gap),
			Width:  width,
			Height: slotHeight,
		}
	}
	return positions, nil
}
