package layout

import (
	"errors"
	"fmt"

	"github.com/jaimet/lanta/internal/platform"
)

// Monocle shows only the focused window, sized to the whole viewport.
// The other windows are sized the same but unmapped.
type Monocle struct {
	Label string
	Gap   int
}

func (l Monocle) Name() string { return l.Label }

func (l Monocle) Arrange(viewport platform.Rect, focused *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error {
	if len(windows) == 0 {
		return nil
	}

	visible := windows[0]
	if focused != nil {
		visible = *focused
	}
	bounds := platform.Rect{
		X:      viewport.X + l.Gap,
		Y:      viewport.Y + l.Gap,
		Width:  viewport.Width - 2*l.Gap,
		Height: viewport.Height - 2*l.Gap,
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return fmt.Errorf("insufficient space for monocle layout: viewport=%dx%d gap=%d",
			viewport.Width, viewport.Height, l.Gap)
	}

	var errs []error
	for _, id := range windows {
		if err := c.ConfigureWindow(id, bounds); err != nil {
			errs = append(errs, fmt.Errorf("configure window %d: %w", id, err))
		}
		if id == visible {
			continue
		}
		if err := c.UnmapWindow(id); err != nil {
			errs = append(errs, fmt.Errorf("unmap window %d: %w", id, err))
		}
	}
	if err := c.MapWindow(visible); err != nil {
		errs = append(errs, fmt.Errorf("map window %d: %w", visible, err))
	}
	return errors.Join(errs...)
}
