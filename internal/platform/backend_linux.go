//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/jaimet/lanta/internal/x11"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger

	pumpOnce sync.Once
	events   chan Event

	// Docks are mapped but never managed; their struts shrink the
	// geometry reported by RootGeometry.
	docksMu sync.Mutex
	docks   map[xproto.Window]*ewmh.WmStrutPartial
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{
		conn:   conn,
		logger: logger,
		events: make(chan Event, 64),
		docks:  make(map[xproto.Window]*ewmh.WmStrutPartial),
	}
}

// NewLinuxBackendFromDisplay connects to the display named by $DISPLAY and
// installs itself as the window manager. Both steps are fatal on failure.
func NewLinuxBackendFromDisplay(logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.Connect()
	if err != nil {
		return nil, err
	}
	if err := conn.InstallAsWindowManager(); err != nil {
		conn.Close()
		return nil, err
	}
	return NewLinuxBackend(conn, logger), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// RootGeometry returns the area windows may be tiled in: the primary
// output less the space reserved by docks.
func (b *LinuxBackend) RootGeometry() (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	area, err := conn.PrimaryArea()
	if err != nil {
		return Rect{}, err
	}
	_, _, rootWidth, rootHeight, err := conn.RootGeometry()
	if err != nil {
		return Rect{}, err
	}

	b.docksMu.Lock()
	struts := make([]*ewmh.WmStrutPartial, 0, len(b.docks))
	for _, sp := range b.docks {
		if sp != nil {
			struts = append(struts, sp)
		}
	}
	b.docksMu.Unlock()

	area = x11.ShrinkByStruts(area, rootWidth, rootHeight, struts)
	return Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}, nil
}

// MapWindow makes a window visible.
func (b *LinuxBackend) MapWindow(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MapWindow(xproto.Window(windowID))
}

// UnmapWindow hides a window.
func (b *LinuxBackend) UnmapWindow(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.UnmapWindow(xproto.Window(windowID))
}

// ConfigureWindow moves and resizes a window to the specified bounds.
func (b *LinuxBackend) ConfigureWindow(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// FocusWindow gives a window input focus.
func (b *LinuxBackend) FocusWindow(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(windowID))
}

// FocusNothing clears input focus.
func (b *LinuxBackend) FocusNothing() error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusNothing()
}

// EnableTracking subscribes to enter and structure events on a window.
func (b *LinuxBackend) EnableTracking(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetTracking(xproto.Window(windowID), true)
}

// DisableTracking unsubscribes from all events on a window.
func (b *LinuxBackend) DisableTracking(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetTracking(xproto.Window(windowID), false)
}

// GrabKeys grabs the combos on a window. A zero windowID grabs on the root.
func (b *LinuxBackend) GrabKeys(windowID WindowID, combos []KeyCombo) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	win := xproto.Window(windowID)
	if windowID == 0 {
		win = conn.Root
	}
	grabs := make([]x11.KeyCombo, 0, len(combos))
	for _, combo := range combos {
		grabs = append(grabs, x11.KeyCombo{Mods: combo.Mods, Keycode: xproto.Keycode(combo.Keycode)})
	}
	return conn.GrabKeys(win, grabs)
}

// CloseWindow asks a client to close its window.
func (b *LinuxBackend) CloseWindow(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.CloseWindow(xproto.Window(windowID))
}

// ParseKeyCombo resolves a binding string like "Mod4-Return".
func (b *LinuxBackend) ParseKeyCombo(combo string) (KeyCombo, error) {
	conn, err := b.connection()
	if err != nil {
		return KeyCombo{}, err
	}
	kc, err := conn.ParseKeyCombo(combo)
	if err != nil {
		return KeyCombo{}, err
	}
	return KeyCombo{Mods: kc.Mods, Keycode: uint8(kc.Keycode)}, nil
}

// SetDesktops publishes workspace names.
func (b *LinuxBackend) SetDesktops(names []string, current int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetDesktops(names, current)
}

// SetClientList publishes the managed windows.
func (b *LinuxBackend) SetClientList(windows []WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	wins := make([]xproto.Window, 0, len(windows))
	for _, w := range windows {
		wins = append(wins, xproto.Window(w))
	}
	return conn.SetClientList(wins)
}

// Events starts the event pump on first use and returns its channel.
func (b *LinuxBackend) Events() <-chan Event {
	b.pumpOnce.Do(func() {
		go b.pump()
	})
	return b.events
}

func (b *LinuxBackend) pump() {
	defer close(b.events)
	for {
		ev, err := b.conn.NextEvent()
		if err != nil {
			// Asynchronous X errors usually concern windows that vanished
			// between a request and its processing.
			b.logger.Debug("x11 error", "error", err)
			continue
		}
		if ev == nil {
			b.logger.Warn("x11 connection closed")
			return
		}
		if b.handleDock(ev) {
			continue
		}
		out, ok := translateEvent(ev, b.conn.Root, b.conn.CleanMods)
		if !ok {
			continue
		}
		if _, resized := out.(ScreenChange); resized {
			// Report the usable area rather than the raw root size.
			if bounds, err := b.RootGeometry(); err == nil {
				out = ScreenChange{Bounds: bounds}
			}
		}
		b.events <- out
	}
}

// handleDock maps dock windows without handing them to the manager and
// reports a ScreenChange when the set of docks changes. It returns true
// when ev was consumed.
func (b *LinuxBackend) handleDock(ev xgb.Event) bool {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		if !b.conn.IsDock(e.Window) {
			return false
		}
		sp, _ := b.conn.DockStruts(e.Window)
		b.docksMu.Lock()
		b.docks[e.Window] = sp
		b.docksMu.Unlock()

		b.logger.Info("dock mapped", "window", e.Window)
		if err := b.conn.MapWindow(e.Window); err != nil {
			b.logger.Warn("failed to map dock", "window", e.Window, "error", err)
		}
		b.screenChanged()
		return true
	case xproto.DestroyNotifyEvent:
		return b.forgetDock(e.Window)
	case xproto.UnmapNotifyEvent:
		return b.forgetDock(e.Window)
	}
	return false
}

func (b *LinuxBackend) forgetDock(id xproto.Window) bool {
	b.docksMu.Lock()
	_, ok := b.docks[id]
	delete(b.docks, id)
	b.docksMu.Unlock()
	if !ok {
		return false
	}
	b.logger.Info("dock removed", "window", id)
	b.screenChanged()
	return true
}

func (b *LinuxBackend) screenChanged() {
	bounds, err := b.RootGeometry()
	if err != nil {
		b.logger.Warn("failed to read usable area", "error", err)
		return
	}
	b.events <- ScreenChange{Bounds: bounds}
}

// translateEvent converts the X events the manager cares about. Windows
// that unmap themselves while tracked are reported as DestroyNotify: they
// have been withdrawn and must leave their group. Unmaps the manager issues
// itself happen with tracking disabled and never reach this point.
func translateEvent(ev xgb.Event, root xproto.Window, cleanMods func(uint16) uint16) (Event, bool) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return MapRequest{Window: WindowID(e.Window)}, true
	case xproto.DestroyNotifyEvent:
		if e.Event != root {
			return nil, false
		}
		return DestroyNotify{Window: WindowID(e.Window)}, true
	case xproto.UnmapNotifyEvent:
		if e.Event != e.Window {
			return nil, false
		}
		return DestroyNotify{Window: WindowID(e.Window)}, true
	case xproto.KeyPressEvent:
		return KeyPress{Combo: KeyCombo{Mods: cleanMods(e.State), Keycode: uint8(e.Detail)}}, true
	case xproto.EnterNotifyEvent:
		if e.Event == root || e.Mode != xproto.NotifyModeNormal {
			return nil, false
		}
		return EnterNotify{Window: WindowID(e.Event)}, true
	case xproto.ConfigureNotifyEvent:
		if e.Window != root {
			return nil, false
		}
		return ScreenChange{Bounds: Rect{
			X:      int(e.X),
			Y:      int(e.Y),
			Width:  int(e.Width),
			Height: int(e.Height),
		}}, true
	}
	return nil, false
}
