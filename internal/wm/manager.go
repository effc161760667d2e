// Package wm ties groups, key bindings and the display backend together and
// runs the event loop.
package wm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/group"
	"github.com/jaimet/lanta/internal/platform"
)

var (
	// ErrConnectionLost is returned by Run when the backend event stream ends.
	ErrConnectionLost = errors.New("display connection lost")
	// ErrStopped is returned by Do once the event loop has exited.
	ErrStopped = errors.New("window manager is not running")
	// ErrUnknownGroup is returned when an action names a group that does not exist.
	ErrUnknownGroup = errors.New("unknown group")
)

// request is work submitted from outside the event loop.
type request struct {
	fn    func(*Manager) error
	reply chan error
}

// Manager owns the groups and dispatches backend events to them. All state
// is mutated from the goroutine running Run.
type Manager struct {
	backend platform.Backend
	logger  *slog.Logger

	groups   []*group.Group
	active   int
	viewport platform.Rect

	keys   map[platform.KeyCombo]Handler
	combos []platform.KeyCombo

	requests chan request
	done     chan struct{}
	quit     bool
	started  time.Time

	// spawn starts an external program; replaced in tests.
	spawn func(argv []string) error
}

// New builds the groups and key table from cfg, grabs the keys on the root
// window and activates the first group.
func New(backend platform.Backend, cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Groups) == 0 {
		return nil, fmt.Errorf("at least one group is required")
	}

	layouts, err := cfg.BuildLayouts()
	if err != nil {
		return nil, fmt.Errorf("failed to build layouts: %w", err)
	}

	m := &Manager{
		backend:  backend,
		logger:   logger,
		keys:     make(map[platform.KeyCombo]Handler),
		requests: make(chan request),
		done:     make(chan struct{}),
		started:  time.Now(),
	}
	m.spawn = m.startProcess

	for _, gc := range cfg.Groups {
		b := group.Builder{Name: gc.Name, DefaultLayout: gc.DefaultLayout}
		m.groups = append(m.groups, b.Build(backend, layouts, logger))
	}

	var errs []error
	for _, kb := range cfg.Keys {
		handler, err := NewHandler(kb.Action, kb.Group, kb.Command)
		if err != nil {
			errs = append(errs, fmt.Errorf("key %q: %w", kb.Combo, err))
			continue
		}
		combo, err := backend.ParseKeyCombo(kb.Combo)
		if err != nil {
			errs = append(errs, fmt.Errorf("key %q: %w", kb.Combo, err))
			continue
		}
		if _, dup := m.keys[combo]; dup {
			errs = append(errs, fmt.Errorf("key %q: combination already bound", kb.Combo))
			continue
		}
		m.keys[combo] = handler
		m.combos = append(m.combos, combo)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := backend.GrabKeys(0, m.combos); err != nil {
		return nil, fmt.Errorf("failed to grab keys: %w", err)
	}

	m.viewport, err = backend.RootGeometry()
	if err != nil {
		return nil, fmt.Errorf("failed to read root geometry: %w", err)
	}

	m.groups[m.active].Activate(m.viewport)
	m.publishDesktops()
	return m, nil
}

// Run processes backend events and submitted requests until ctx is
// cancelled, the quit action runs, or the backend connection is lost.
func (m *Manager) Run(ctx context.Context) error {
	defer close(m.done)

	events := m.backend.Events()
	m.logger.Info("event loop started", "groups", len(m.groups), "keys", len(m.keys))
	for !m.quit {
		select {
		case <-ctx.Done():
			m.logger.Info("event loop exiting", "reason", ctx.Err())
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrConnectionLost
			}
			m.dispatch(ev)
		case req := <-m.requests:
			req.reply <- req.fn(m)
		}
	}
	m.logger.Info("event loop exiting", "reason", "quit")
	return nil
}

// Do runs fn on the event loop goroutine and returns its error.
func (m *Manager) Do(ctx context.Context, fn func(*Manager) error) error {
	req := request{fn: fn, reply: make(chan error, 1)}
	select {
	case m.requests <- req:
	case <-m.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) dispatch(ev platform.Event) {
	switch e := ev.(type) {
	case platform.MapRequest:
		m.onMapRequest(e.Window)
	case platform.DestroyNotify:
		m.onDestroyNotify(e.Window)
	case platform.KeyPress:
		m.onKeyPress(e.Combo)
	case platform.EnterNotify:
		m.onEnterNotify(e.Window)
	case platform.ScreenChange:
		m.logger.Info("screen changed", "viewport", e.Bounds)
		m.viewport = e.Bounds
		m.ActiveGroup().UpdateViewport(e.Bounds)
	default:
		m.logger.Debug("ignoring event", "event", fmt.Sprintf("%T", ev))
	}
}

func (m *Manager) onMapRequest(id platform.WindowID) {
	if g := m.owner(id); g != nil {
		// Already managed. Windows of hidden groups stay hidden.
		if g == m.ActiveGroup() {
			m.warn(m.backend.MapWindow(id), "failed to map window", "window", id)
		}
		return
	}

	m.warn(m.backend.EnableTracking(id), "failed to track window", "window", id)
	m.warn(m.backend.GrabKeys(id, m.combos), "failed to grab keys", "window", id)
	m.warn(m.backend.MapWindow(id), "failed to map window", "window", id)
	m.ActiveGroup().AddWindow(id)
	m.publishClientList()
}

func (m *Manager) onDestroyNotify(id platform.WindowID) {
	g := m.owner(id)
	if g == nil {
		return
	}
	g.RemoveWindow(id)
	m.publishClientList()
}

func (m *Manager) onKeyPress(combo platform.KeyCombo) {
	handler, ok := m.keys[combo]
	if !ok {
		m.logger.Debug("unbound key", "mods", combo.Mods, "keycode", combo.Keycode)
		return
	}
	m.warn(handler(m), "key action failed", "mods", combo.Mods, "keycode", combo.Keycode)
}

func (m *Manager) onEnterNotify(id platform.WindowID) {
	g := m.owner(id)
	if g == nil || g != m.ActiveGroup() {
		return
	}
	if focused, ok := g.Focused(); ok && focused == id {
		return
	}
	g.Focus(id)
}

// ActiveGroup returns the group currently shown.
func (m *Manager) ActiveGroup() *group.Group {
	return m.groups[m.active]
}

// Groups returns every group, in configuration order.
func (m *Manager) Groups() []*group.Group {
	return m.groups
}

func (m *Manager) owner(id platform.WindowID) *group.Group {
	for _, g := range m.groups {
		if g.Contains(id) {
			return g
		}
	}
	return nil
}

func (m *Manager) groupIndex(name string) (int, error) {
	for i, g := range m.groups {
		if g.Name() == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownGroup, name)
}

// SwitchGroup hides the active group and shows the named one.
func (m *Manager) SwitchGroup(name string) error {
	idx, err := m.groupIndex(name)
	if err != nil {
		return err
	}
	if idx == m.active {
		return nil
	}
	m.groups[m.active].Deactivate()
	m.active = idx
	m.groups[m.active].Activate(m.viewport)
	m.publishDesktops()
	return nil
}

// MoveFocusedToGroup sends the focused window of the active group to the
// named group.
func (m *Manager) MoveFocusedToGroup(name string) error {
	idx, err := m.groupIndex(name)
	if err != nil {
		return err
	}
	if idx == m.active {
		return nil
	}
	id, ok := m.ActiveGroup().RemoveFocused()
	if !ok {
		return nil
	}
	m.groups[idx].AddWindow(id)
	m.publishClientList()
	return nil
}

// CloseFocused asks the focused window of the active group to close.
func (m *Manager) CloseFocused() error {
	id, ok := m.ActiveGroup().Focused()
	if !ok {
		return nil
	}
	m.logger.Info("closing window", "window", id)
	return m.backend.CloseWindow(id)
}

// Spawn starts an external program without waiting for it.
func (m *Manager) Spawn(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	return m.spawn(argv)
}

// Quit makes Run return after the current event.
func (m *Manager) Quit() {
	m.logger.Info("quit requested")
	m.quit = true
}

func (m *Manager) publishDesktops() {
	names := make([]string, 0, len(m.groups))
	for _, g := range m.groups {
		names = append(names, g.Name())
	}
	m.warn(m.backend.SetDesktops(names, m.active), "failed to publish desktops")
}

func (m *Manager) publishClientList() {
	var windows []platform.WindowID
	for _, g := range m.groups {
		windows = append(windows, g.Windows()...)
	}
	m.warn(m.backend.SetClientList(windows), "failed to publish client list")
}

func (m *Manager) warn(err error, msg string, args ...any) {
	if err == nil {
		return
	}
	m.logger.Warn(msg, append(args, "error", err)...)
}
