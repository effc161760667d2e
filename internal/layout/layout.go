// Package layout computes window geometry for a group.
//
// A Layout is stateless across calls: given the viewport, the focused window
// and the ordered windows it decides where each window goes and issues the
// corresponding configure and map requests. It never touches the group's
// stacks.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jaimet/lanta/internal/platform"
)

// Mode selects a layout strategy.
type Mode string

const (
	ModeTiled       Mode = "tiled"
	ModeGrid        Mode = "grid"
	ModeColumns     Mode = "columns"
	ModeRows        Mode = "rows"
	ModeMasterStack Mode = "master-stack"
	ModeMonocle     Mode = "monocle"
)

// Modes returns every supported mode, in documentation order.
func Modes() []Mode {
	return []Mode{ModeTiled, ModeGrid, ModeColumns, ModeRows, ModeMasterStack, ModeMonocle}
}

// ValidMode reports whether m names a supported strategy.
func ValidMode(m Mode) bool {
	return slices.Contains(Modes(), m)
}

// Layout arranges the windows of a group inside its viewport.
type Layout interface {
	Name() string
	Arrange(viewport platform.Rect, focused *platform.WindowID, windows []platform.WindowID, c platform.Configurer) error
}

// Spec describes a configured layout.
type Spec struct {
	Name string
	Mode Mode
	Gap  int

	// FlexibleLastRow lets a short last grid row expand to the full width.
	FlexibleLastRow bool

	// MasterPercent is the master pane width for master-stack.
	MasterPercent int
	// MaxStackRows caps rows per stack column for master-stack (0 = one column).
	MaxStackRows int
}

const defaultMasterPercent = 50

// ErrUnknownMode is returned by New for modes it cannot build.
var ErrUnknownMode = errors.New("unknown layout mode")

// New builds the strategy described by spec.
func New(spec Spec) (Layout, error) {
	if spec.Gap < 0 {
		return nil, fmt.Errorf("layout %q: gap must be >= 0, got %d", spec.Name, spec.Gap)
	}
	name := spec.Name
	if name == "" {
		name = string(spec.Mode)
	}

	switch spec.Mode {
	case ModeTiled:
		return Tiled{Label: name}, nil
	case ModeGrid:
		return Grid{Label: name, Gap: spec.Gap, FlexibleLastRow: spec.FlexibleLastRow}, nil
	case ModeColumns:
		return Columns{Label: name, Gap: spec.Gap}, nil
	case ModeRows:
		return Rows{Label: name, Gap: spec.Gap}, nil
	case ModeMasterStack:
		percent := spec.MasterPercent
		if percent == 0 {
			percent = defaultMasterPercent
		}
		if percent < 10 || percent > 90 {
			return nil, fmt.Errorf("layout %q: master_percent must be between 10 and 90, got %d", spec.Name, percent)
		}
		if spec.MaxStackRows < 0 {
			return nil, fmt.Errorf("layout %q: max_stack_rows must be >= 0, got %d", spec.Name, spec.MaxStackRows)
		}
		return MasterStack{
			Label:         name,
			Gap:           spec.Gap,
			MasterPercent: percent,
			MaxStackRows:  spec.MaxStackRows,
		}, nil
	case ModeMonocle:
		return Monocle{Label: name, Gap: spec.Gap}, nil
	default:
		return nil, fmt.Errorf("layout %q: %w %q", spec.Name, ErrUnknownMode, spec.Mode)
	}
}

// Default returns the layouts used when no configuration is present.
func Default() []Layout {
	return []Layout{Tiled{Label: string(ModeTiled)}}
}

// apply configures then maps each window in order. Every window is
// attempted; failures are collected and returned together.
func apply(c platform.Configurer, windows []platform.WindowID, rects []platform.Rect) error {
	var errs []error
	for i, id := range windows {
		if err := c.ConfigureWindow(id, rects[i]); err != nil {
			errs = append(errs, fmt.Errorf("configure window %d: %w", id, err))
		}
		if err := c.MapWindow(id); err != nil {
			errs = append(errs, fmt.Errorf("map window %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
