package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jaimet/lanta/internal/layout"
)

// Config is the effective configuration of the window manager.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Groups   []GroupConfig  `yaml:"groups"`
	Layouts  []LayoutConfig `yaml:"layouts"`
	Keys     []KeyBinding   `yaml:"keys"`
}

// GroupConfig declares a workspace. Groups are activated in declaration
// order; the first one is active at startup.
type GroupConfig struct {
	Name          string `yaml:"name"`
	DefaultLayout string `yaml:"default_layout,omitempty"`
}

// LayoutConfig declares a layout every group can cycle through.
type LayoutConfig struct {
	Name            string      `yaml:"name"`
	Mode            layout.Mode `yaml:"mode"`
	Gap             int         `yaml:"gap,omitempty"`
	FlexibleLastRow bool        `yaml:"flexible_last_row,omitempty"`
	MasterPercent   int         `yaml:"master_percent,omitempty"`
	MaxStackRows    int         `yaml:"max_stack_rows,omitempty"`
}

// Spec converts the entry into a layout specification.
func (l LayoutConfig) Spec() layout.Spec {
	return layout.Spec{
		Name:            l.Name,
		Mode:            l.Mode,
		Gap:             l.Gap,
		FlexibleLastRow: l.FlexibleLastRow,
		MasterPercent:   l.MasterPercent,
		MaxStackRows:    l.MaxStackRows,
	}
}

// KeyBinding binds a key combination such as "Mod4-Return" to an action.
// Command is used by spawn, Group by switch-group and move-to-group.
type KeyBinding struct {
	Combo   string  `yaml:"combo"`
	Action  string  `yaml:"action"`
	Command Command `yaml:"command,omitempty"`
	Group   string  `yaml:"group,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Groups: []GroupConfig{
			{Name: "g1", DefaultLayout: DefaultLayoutName},
			{Name: "g2", DefaultLayout: DefaultLayoutName},
		},
		Layouts: BuiltinLayouts(),
		Keys:    DefaultKeys(),
	}
}

// BuildLayouts instantiates every configured layout, in declaration order.
func (c *Config) BuildLayouts() ([]layout.Layout, error) {
	out := make([]layout.Layout, 0, len(c.Layouts))
	for _, lc := range c.Layouts {
		l, err := layout.New(lc.Spec())
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// GroupNames returns the group names in declaration order.
func (c *Config) GroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		names = append(names, g.Name)
	}
	return names
}

// LayoutNames returns the layout names in declaration order.
func (c *Config) LayoutNames() []string {
	names := make([]string, 0, len(c.Layouts))
	for _, l := range c.Layouts {
		names = append(names, l.Name)
	}
	return names
}

var logLevels = []string{"debug", "info", "warning", "error"}

// Validate checks the effective configuration and reports every problem
// found, joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf(format, args...)})
	}

	if !slices.Contains(logLevels, c.LogLevel) {
		fail("log_level", "log_level must be one of: %s%s",
			strings.Join(logLevels, ", "), suggest(c.LogLevel, logLevels))
	}

	if len(c.Layouts) == 0 {
		fail("layouts", "layouts must not be empty")
	}
	layoutNames := make(map[string]bool, len(c.Layouts))
	modes := make([]string, 0, len(layout.Modes()))
	for _, m := range layout.Modes() {
		modes = append(modes, string(m))
	}
	for i, l := range c.Layouts {
		path := fmt.Sprintf("layouts[%d]", i)
		if strings.TrimSpace(l.Name) == "" {
			fail(path+".name", "layout name is required")
		} else if layoutNames[l.Name] {
			fail(path+".name", "duplicate layout name %q", l.Name)
		}
		layoutNames[l.Name] = true

		if !layout.ValidMode(l.Mode) {
			fail(path+".mode", "invalid mode %q%s", l.Mode, suggest(string(l.Mode), modes))
			continue
		}
		if _, err := layout.New(l.Spec()); err != nil {
			fail(path, "%v", err)
		}
	}

	if len(c.Groups) == 0 {
		fail("groups", "groups must not be empty")
	}
	groupNames := make(map[string]bool, len(c.Groups))
	for i, g := range c.Groups {
		path := fmt.Sprintf("groups[%d]", i)
		if strings.TrimSpace(g.Name) == "" {
			fail(path+".name", "group name is required")
		} else if groupNames[g.Name] {
			fail(path+".name", "duplicate group name %q", g.Name)
		}
		groupNames[g.Name] = true

		if g.DefaultLayout != "" && !layoutNames[g.DefaultLayout] {
			fail(path+".default_layout", "layout %q not found%s",
				g.DefaultLayout, suggest(g.DefaultLayout, c.LayoutNames()))
		}
	}

	combos := make(map[string]bool, len(c.Keys))
	for i, k := range c.Keys {
		path := fmt.Sprintf("keys[%d]", i)
		if strings.TrimSpace(k.Combo) == "" {
			fail(path+".combo", "combo is required")
		} else if combos[k.Combo] {
			fail(path+".combo", "combo %q is bound more than once", k.Combo)
		}
		combos[k.Combo] = true

		if !IsAction(k.Action) {
			fail(path+".action", "unknown action %q%s", k.Action, suggest(k.Action, ActionNames()))
			continue
		}
		switch k.Action {
		case ActionSpawn:
			if len(k.Command) == 0 {
				fail(path+".command", "spawn requires a command")
			}
		case ActionSwitchGroup, ActionMoveToGroup:
			if !groupNames[k.Group] {
				fail(path+".group", "group %q not found%s", k.Group, suggest(k.Group, c.GroupNames()))
			}
		}
	}

	return errors.Join(errs...)
}

// ValidationError ties a problem to the YAML path it was found at.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
