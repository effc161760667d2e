package wm

import (
	"time"

	"github.com/jaimet/lanta/internal/platform"
)

// Status is a snapshot of the manager state.
type Status struct {
	ActiveGroup   string
	Viewport      platform.Rect
	Groups        []GroupStatus
	UptimeSeconds int64
}

// GroupStatus is a snapshot of one group.
type GroupStatus struct {
	Name    string
	Active  bool
	Layout  string
	Layouts []string
	Windows []platform.WindowID
	// Focused is zero when the group has no windows.
	Focused platform.WindowID
}

// Status snapshots the manager. Call it on the event loop goroutine, for
// example through Do.
func (m *Manager) Status() Status {
	st := Status{
		ActiveGroup:   m.ActiveGroup().Name(),
		Viewport:      m.viewport,
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
	}
	for _, g := range m.groups {
		focused, _ := g.Focused()
		st.Groups = append(st.Groups, GroupStatus{
			Name:    g.Name(),
			Active:  g.Active(),
			Layout:  g.LayoutName(),
			Layouts: g.LayoutNames(),
			Windows: g.Windows(),
			Focused: focused,
		})
	}
	return st
}
