package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// ErrAnotherWM is returned by InstallAsWindowManager when some other client
// already owns substructure redirection on the root window.
var ErrAnotherWM = errors.New("another window manager is already running")

// rootEventMask is selected on the root window to become the window manager.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// ignoreMask holds lock-style modifiers stripped from key events.
	ignoreMask uint16
}

// Connect establishes a connection to the X11 server and initializes the
// keyboard mapping used to resolve key combinations.
func Connect() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	c.ignoreMask = configureIgnoreMods(xu)
	return c, nil
}

// InstallAsWindowManager selects substructure redirection on the root
// window. Only one client may hold it, so a running window manager makes
// this fail with ErrAnotherWM.
func (c *Connection) InstallAsWindowManager() error {
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{rootEventMask},
	).Check()
	if err != nil {
		var access xproto.AccessError
		if errors.As(err, &access) {
			return ErrAnotherWM
		}
		return fmt.Errorf("failed to select root window events: %w", err)
	}

	if err := c.announce("lanta"); err != nil {
		return fmt.Errorf("failed to publish EWMH support: %w", err)
	}
	return nil
}

// NextEvent blocks until the server sends an event and returns it.
// X protocol errors are returned as errors; a nil event with a nil error
// means the connection was closed.
func (c *Connection) NextEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// CleanMods strips lock-style modifiers (CapsLock, NumLock, ScrollLock)
// from a key event state.
func (c *Connection) CleanMods(state uint16) uint16 {
	return state &^ (c.ignoreMask | xproto.KeyButMaskButton1 | xproto.KeyButMaskButton2 |
		xproto.KeyButMaskButton3 | xproto.KeyButMaskButton4 | xproto.KeyButMaskButton5)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
