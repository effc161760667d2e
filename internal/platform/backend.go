package platform

import "fmt"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// KeyCombo is a modifier set plus a key, as resolved by the backend.
// It is comparable and used as the key of binding tables.
type KeyCombo struct {
	Mods    uint16
	Keycode uint8
}

// Event is something the display server reported.
type Event interface {
	isEvent()
}

// MapRequest is sent when a client asks for its window to be shown.
type MapRequest struct{ Window WindowID }

// DestroyNotify is sent when a tracked window is destroyed.
type DestroyNotify struct{ Window WindowID }

// KeyPress is sent when a grabbed key combination is pressed.
type KeyPress struct{ Combo KeyCombo }

// EnterNotify is sent when the pointer enters a tracked window.
type EnterNotify struct{ Window WindowID }

// ScreenChange is sent when the area available for tiling changes.
type ScreenChange struct{ Bounds Rect }

func (MapRequest) isEvent()    {}
func (DestroyNotify) isEvent() {}
func (KeyPress) isEvent()      {}
func (EnterNotify) isEvent()   {}
func (ScreenChange) isEvent()  {}

// Configurer is the part of the backend layouts are allowed to drive.
type Configurer interface {
	ConfigureWindow(windowID WindowID, bounds Rect) error
	MapWindow(windowID WindowID) error
	UnmapWindow(windowID WindowID) error
}

// Backend abstracts the window-system operations the manager relies on.
type Backend interface {
	Configurer

	RootGeometry() (Rect, error)
	FocusWindow(windowID WindowID) error
	FocusNothing() error
	EnableTracking(windowID WindowID) error
	DisableTracking(windowID WindowID) error
	GrabKeys(windowID WindowID, combos []KeyCombo) error
	CloseWindow(windowID WindowID) error
	ParseKeyCombo(combo string) (KeyCombo, error)

	// SetDesktops and SetClientList publish EWMH hints for pagers and bars.
	SetDesktops(names []string, current int) error
	SetClientList(windows []WindowID) error

	// Events delivers events in order. The channel is closed when the
	// connection to the display server is lost.
	Events() <-chan Event
}
