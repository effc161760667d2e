// Package group implements a workspace: an ordered set of managed windows
// with a focus, a set of layouts with a selected one, and a viewport.
//
// Every mutation re-runs the selected layout and then sets input focus.
// While a group is inactive its windows are hidden and no layout runs.
package group

import (
	"log/slog"
	"slices"

	"github.com/jaimet/lanta/internal/layout"
	"github.com/jaimet/lanta/internal/platform"
	"github.com/jaimet/lanta/internal/stack"
)

// Builder holds what is needed to build a Group.
type Builder struct {
	Name          string
	DefaultLayout string
}

// Build creates an inactive, empty group. The layout named DefaultLayout is
// selected; when no layout has that name the first one is.
func (b Builder) Build(backend platform.Backend, layouts []layout.Layout, logger *slog.Logger) *Group {
	if len(layouts) == 0 {
		layouts = layout.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	layoutStack := stack.New(layouts...)
	layoutStack.Focus(func(l layout.Layout) bool { return l.Name() == b.DefaultLayout })

	return &Group{
		name:    b.Name,
		backend: backend,
		logger:  logger.With("group", b.Name),
		windows: &stack.Stack[platform.WindowID]{},
		layouts: layoutStack,
	}
}

// Group is a workspace. It is not safe for concurrent use.
type Group struct {
	name    string
	backend platform.Backend
	logger  *slog.Logger

	active   bool
	windows  *stack.Stack[platform.WindowID]
	layouts  *stack.Stack[layout.Layout]
	viewport platform.Rect
}

func (g *Group) Name() string { return g.name }

func (g *Group) Active() bool { return g.active }

func (g *Group) Len() int { return g.windows.Len() }

func (g *Group) Viewport() platform.Rect { return g.viewport }

// Windows returns the managed windows in layout order.
func (g *Group) Windows() []platform.WindowID {
	return g.windows.Items()
}

// LayoutName returns the name of the selected layout.
func (g *Group) LayoutName() string {
	l, ok := g.layouts.Focused()
	if !ok {
		return ""
	}
	return l.Name()
}

// LayoutNames returns every layout available to the group, in cycle order.
func (g *Group) LayoutNames() []string {
	var names []string
	for l := range g.layouts.All() {
		names = append(names, l.Name())
	}
	return names
}

// Activate shows the group inside viewport.
func (g *Group) Activate(viewport platform.Rect) {
	g.logger.Info("activating group", "viewport", viewport)
	g.active = true
	g.viewport = viewport
	g.performLayout()
}

// UpdateViewport replaces the viewport and re-runs the layout.
func (g *Group) UpdateViewport(viewport platform.Rect) {
	g.viewport = viewport
	g.performLayout()
}

// Deactivate hides every window but keeps them managed.
func (g *Group) Deactivate() {
	g.logger.Info("deactivating group")
	for id := range g.windows.All() {
		g.hide(id)
	}
	g.active = false
}

// AddWindow manages a window and focuses it.
func (g *Group) AddWindow(id platform.WindowID) {
	g.logger.Info("adding window", "window", id)
	g.windows.Push(id)
	g.windows.Focus(func(w platform.WindowID) bool { return w == id })
	g.performLayout()
}

// RemoveWindow stops managing a window. It reports false, without side
// effects, when the window is not in the group.
func (g *Group) RemoveWindow(id platform.WindowID) (platform.WindowID, bool) {
	removed, ok := g.windows.TryRemove(func(w platform.WindowID) bool { return w == id })
	if !ok {
		return 0, false
	}
	g.logger.Info("removing window", "window", id)
	g.performLayout()
	return removed, true
}

// RemoveFocused stops managing the focused window and hides it.
func (g *Group) RemoveFocused() (platform.WindowID, bool) {
	removed, ok := g.windows.RemoveFocused()
	if !ok {
		return 0, false
	}
	g.logger.Info("removing focused window", "window", removed)
	g.performLayout()
	// The unmap must not come back as an event that removes it again.
	g.hide(removed)
	return removed, true
}

// Contains reports whether the group manages id.
func (g *Group) Contains(id platform.WindowID) bool {
	return g.windows.Contains(func(w platform.WindowID) bool { return w == id })
}

// Focus moves focus to id.
func (g *Group) Focus(id platform.WindowID) {
	g.logger.Info("focusing window", "window", id)
	g.windows.Focus(func(w platform.WindowID) bool { return w == id })
	g.performLayout()
}

// Focused returns the focused window.
func (g *Group) Focused() (platform.WindowID, bool) {
	return g.windows.Focused()
}

func (g *Group) FocusNext() {
	g.windows.FocusNext()
	g.logFocus("focusing next window")
	g.performLayout()
}

func (g *Group) FocusPrevious() {
	g.windows.FocusPrevious()
	g.logFocus("focusing previous window")
	g.performLayout()
}

func (g *Group) ShuffleNext() {
	g.logFocus("shuffling window to next position")
	g.windows.ShuffleNext()
	g.performLayout()
}

func (g *Group) ShufflePrevious() {
	g.logFocus("shuffling window to previous position")
	g.windows.ShufflePrevious()
	g.performLayout()
}

func (g *Group) LayoutNext() {
	g.layouts.FocusNext()
	g.logger.Info("switching to next layout", "layout", g.LayoutName())
	g.performLayout()
}

func (g *Group) LayoutPrevious() {
	g.layouts.FocusPrevious()
	g.logger.Info("switching to previous layout", "layout", g.LayoutName())
	g.performLayout()
}

// SelectLayout selects the layout with the given name. It reports false
// when the group has no such layout.
func (g *Group) SelectLayout(name string) bool {
	if !g.layouts.Focus(func(l layout.Layout) bool { return l.Name() == name }) {
		return false
	}
	g.logger.Info("selecting layout", "layout", name)
	g.performLayout()
	return true
}

func (g *Group) logFocus(msg string) {
	if id, ok := g.windows.Focused(); ok {
		g.logger.Info(msg, "window", id)
		return
	}
	g.logger.Info(msg)
}

func (g *Group) performLayout() {
	if !g.active {
		return
	}

	var focused *platform.WindowID
	if id, ok := g.windows.Focused(); ok {
		focused = &id
	}

	if l, ok := g.layouts.Focused(); ok {
		windows := slices.Collect(g.windows.All())
		if err := l.Arrange(g.viewport, focused, windows, hidingConfigurer{g}); err != nil {
			g.logger.Warn("layout failed", "layout", l.Name(), "error", err)
		}
	}

	if focused != nil {
		if err := g.backend.FocusWindow(*focused); err != nil {
			g.logger.Warn("failed to focus window", "window", *focused, "error", err)
		}
		return
	}
	if err := g.backend.FocusNothing(); err != nil {
		g.logger.Warn("failed to clear focus", "error", err)
	}
}

// hide unmaps a window with event tracking switched off around the unmap,
// so the manager does not take it for a client withdrawing its window.
func (g *Group) hide(id platform.WindowID) {
	if err := g.backend.DisableTracking(id); err != nil {
		g.logger.Warn("failed to disable tracking", "window", id, "error", err)
	}
	if err := g.backend.UnmapWindow(id); err != nil {
		g.logger.Warn("failed to unmap window", "window", id, "error", err)
	}
	if err := g.backend.EnableTracking(id); err != nil {
		g.logger.Warn("failed to enable tracking", "window", id, "error", err)
	}
}

// hidingConfigurer is handed to layouts. Unmaps go through hide.
type hidingConfigurer struct {
	g *Group
}

func (h hidingConfigurer) ConfigureWindow(id platform.WindowID, bounds platform.Rect) error {
	return h.g.backend.ConfigureWindow(id, bounds)
}

func (h hidingConfigurer) MapWindow(id platform.WindowID) error {
	return h.g.backend.MapWindow(id)
}

func (h hidingConfigurer) UnmapWindow(id platform.WindowID) error {
	h.g.hide(id)
	return nil
}
