// Package platformtest provides a recording Backend for tests.
package platformtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jaimet/lanta/internal/platform"
)

// Call is one recorded backend operation.
type Call struct {
	Op     string
	Window platform.WindowID
	Bounds platform.Rect
}

func (c Call) String() string {
	if c.Op == "configure" {
		return fmt.Sprintf("%s %d %s", c.Op, c.Window, c.Bounds)
	}
	return fmt.Sprintf("%s %d", c.Op, c.Window)
}

// Backend records every call made to it. Tracking state is kept per window
// so tests can assert which unmaps happened with tracking disabled.
type Backend struct {
	mu sync.Mutex

	Root      platform.Rect
	calls     []Call
	tracked   map[platform.WindowID]bool
	untracked []platform.WindowID

	Grabs       map[platform.WindowID][]platform.KeyCombo
	Closed      []platform.WindowID
	Desktops    []string
	Current     int
	ClientList  []platform.WindowID
	Keycodes    map[string]platform.KeyCombo
	EventStream chan platform.Event
}

var _ platform.Backend = (*Backend)(nil)

// New returns a fake backend whose root window has the given size.
func New(width, height int) *Backend {
	return &Backend{
		Root:        platform.Rect{Width: width, Height: height},
		tracked:     make(map[platform.WindowID]bool),
		Grabs:       make(map[platform.WindowID][]platform.KeyCombo),
		Keycodes:    make(map[string]platform.KeyCombo),
		EventStream: make(chan platform.Event, 16),
		Current:     -1,
	}
}

func (b *Backend) record(c Call) {
	b.calls = append(b.calls, c)
}

// Calls returns a copy of the recorded calls.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallStrings renders the recorded calls, one string per call.
func (b *Backend) CallStrings() []string {
	calls := b.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}

// Reset forgets recorded calls.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
	b.untracked = nil
}

// Configured returns the last bounds given to each configured window.
func (b *Backend) Configured() map[platform.WindowID]platform.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[platform.WindowID]platform.Rect)
	for _, c := range b.calls {
		if c.Op == "configure" {
			out[c.Window] = c.Bounds
		}
	}
	return out
}

// UntrackedUnmaps lists windows unmapped while their tracking was disabled.
func (b *Backend) UntrackedUnmaps() []platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.WindowID(nil), b.untracked...)
}

// Tracked reports whether tracking is currently enabled for a window.
func (b *Backend) Tracked(id platform.WindowID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracked[id]
}

// Count returns how many recorded calls have the given op.
func (b *Backend) Count(op string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (b *Backend) RootGeometry() (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Root, nil
}

func (b *Backend) ConfigureWindow(id platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "configure", Window: id, Bounds: bounds})
	return nil
}

func (b *Backend) MapWindow(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "map", Window: id})
	return nil
}

func (b *Backend) UnmapWindow(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "unmap", Window: id})
	if !b.tracked[id] {
		b.untracked = append(b.untracked, id)
	}
	return nil
}

func (b *Backend) FocusWindow(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "focus", Window: id})
	return nil
}

func (b *Backend) FocusNothing() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "focus-nothing"})
	return nil
}

func (b *Backend) EnableTracking(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "track", Window: id})
	b.tracked[id] = true
	return nil
}

func (b *Backend) DisableTracking(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "untrack", Window: id})
	b.tracked[id] = false
	return nil
}

func (b *Backend) GrabKeys(id platform.WindowID, combos []platform.KeyCombo) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "grab", Window: id})
	b.Grabs[id] = append([]platform.KeyCombo(nil), combos...)
	return nil
}

func (b *Backend) CloseWindow(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Op: "close", Window: id})
	b.Closed = append(b.Closed, id)
	return nil
}

// ParseKeyCombo resolves combos registered in Keycodes. Unregistered combos
// get a stable synthetic keycode so tests only register what they press.
func (b *Backend) ParseKeyCombo(combo string) (platform.KeyCombo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if kc, ok := b.Keycodes[combo]; ok {
		return kc, nil
	}
	if strings.TrimSpace(combo) == "" {
		return platform.KeyCombo{}, fmt.Errorf("empty key combo")
	}
	kc := platform.KeyCombo{Keycode: uint8(10 + len(b.Keycodes))}
	b.Keycodes[combo] = kc
	return kc, nil
}

func (b *Backend) SetDesktops(names []string, current int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Desktops = append([]string(nil), names...)
	b.Current = current
	return nil
}

func (b *Backend) SetClientList(windows []platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ClientList = append([]platform.WindowID(nil), windows...)
	return nil
}

func (b *Backend) Events() <-chan platform.Event {
	return b.EventStream
}
