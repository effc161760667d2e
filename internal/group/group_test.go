package group

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimet/lanta/internal/layout"
	"github.com/jaimet/lanta/internal/platform"
	"github.com/jaimet/lanta/internal/platform/platformtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGroup(t *testing.T, fake *platformtest.Backend, layouts ...layout.Layout) *Group {
	t.Helper()
	if len(layouts) == 0 {
		layouts = []layout.Layout{layout.Tiled{Label: "tiled"}}
	}
	return Builder{Name: "g1", DefaultLayout: layouts[0].Name()}.Build(fake, layouts, discardLogger())
}

func heights(fake *platformtest.Backend, ids ...platform.WindowID) []int {
	got := fake.Configured()
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, got[id].Height)
	}
	return out
}

func TestTiledScenario(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)

	g.AddWindow(1)
	g.AddWindow(2)
	g.AddWindow(3)

	got := fake.Configured()
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 800, Height: 200}, got[1])
	assert.Equal(t, platform.Rect{X: 0, Y: 200, Width: 800, Height: 200}, got[2])
	assert.Equal(t, platform.Rect{X: 0, Y: 400, Width: 800, Height: 200}, got[3])

	removed, ok := g.RemoveFocused()
	require.True(t, ok)
	assert.Equal(t, platform.WindowID(3), removed)

	assert.Equal(t, []int{300, 300}, heights(fake, 1, 2))
	assert.Equal(t, 300, fake.Configured()[2].Y)
}

func TestRemoveFocusedHidesWithTrackingDisabled(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)
	g.AddWindow(1)
	g.AddWindow(2)
	fake.Reset()

	removed, ok := g.RemoveFocused()
	require.True(t, ok)
	assert.Equal(t, platform.WindowID(2), removed)

	calls := fake.CallStrings()
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, []string{"untrack 2", "unmap 2", "track 2"}, calls[len(calls)-3:])
	assert.Equal(t, []platform.WindowID{2}, fake.UntrackedUnmaps())
	assert.False(t, g.Contains(2))
}

func TestRemoveFocusedEmpty(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)
	fake.Reset()

	_, ok := g.RemoveFocused()
	assert.False(t, ok)
	assert.Empty(t, fake.Calls())
}

func TestRemoveWindowAbsentHasNoSideEffects(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)
	g.AddWindow(1)
	fake.Reset()

	_, ok := g.RemoveWindow(99)
	assert.False(t, ok)
	assert.Empty(t, fake.Calls())
}

func TestRemoveLastWindowClearsFocus(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)
	g.AddWindow(1)
	fake.Reset()

	removed, ok := g.RemoveWindow(1)
	require.True(t, ok)
	assert.Equal(t, platform.WindowID(1), removed)
	assert.Equal(t, []string{"focus-nothing 0"}, fake.CallStrings())
}

func TestInactiveGroupIssuesNoCalls(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)

	g.AddWindow(1)
	g.AddWindow(2)
	g.FocusNext()
	g.ShuffleNext()
	g.LayoutNext()
	g.UpdateViewport(platform.Rect{Width: 400, Height: 300})
	assert.Empty(t, fake.Calls())

	g.Activate(fake.Root)
	assert.Equal(t, []int{300, 300}, heights(fake, 1, 2))
}

func TestActivationReplaysSameLayout(t *testing.T) {
	active := platformtest.New(800, 600)
	a := newGroup(t, active)
	a.Activate(active.Root)

	inactive := platformtest.New(800, 600)
	b := newGroup(t, inactive)

	for _, g := range []*Group{a, b} {
		g.AddWindow(1)
		g.AddWindow(2)
		g.AddWindow(3)
		g.ShufflePrevious()
		g.FocusNext()
	}
	b.Activate(inactive.Root)

	assert.Equal(t, a.Windows(), b.Windows())
	assert.Equal(t, active.Configured(), inactive.Configured())
}

func TestFocusFollowsLastCall(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)
	g.AddWindow(1)
	g.AddWindow(2)
	g.AddWindow(3)

	g.Focus(1)
	calls := fake.CallStrings()
	assert.Equal(t, "focus 1", calls[len(calls)-1])

	g.FocusPrevious()
	focused, ok := g.Focused()
	require.True(t, ok)
	assert.Equal(t, platform.WindowID(3), focused)
}

func TestDeactivateHidesButKeepsWindows(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake)
	g.Activate(fake.Root)
	g.AddWindow(1)
	g.AddWindow(2)
	fake.Reset()

	g.Deactivate()

	assert.False(t, g.Active())
	assert.Equal(t, []platform.WindowID{1, 2}, g.Windows())
	assert.Equal(t, []platform.WindowID{1, 2}, fake.UntrackedUnmaps())
	assert.Zero(t, fake.Count("configure"))
}

func TestBuilderSelectsDefaultLayout(t *testing.T) {
	fake := platformtest.New(800, 600)
	layouts := []layout.Layout{
		layout.Tiled{Label: "tiled"},
		layout.Monocle{Label: "full"},
	}

	g := Builder{Name: "g", DefaultLayout: "full"}.Build(fake, layouts, discardLogger())
	assert.Equal(t, "full", g.LayoutName())

	g = Builder{Name: "g", DefaultLayout: "missing"}.Build(fake, layouts, discardLogger())
	assert.Equal(t, "tiled", g.LayoutName())
	assert.Equal(t, []string{"tiled", "full"}, g.LayoutNames())
}

func TestLayoutNextAndPreviousAreSymmetric(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake,
		layout.Tiled{Label: "a"},
		layout.Columns{Label: "b"},
		layout.Rows{Label: "c"},
	)

	g.LayoutNext()
	assert.Equal(t, "b", g.LayoutName())
	g.LayoutPrevious()
	assert.Equal(t, "a", g.LayoutName())
	g.LayoutPrevious()
	assert.Equal(t, "c", g.LayoutName())
}

func TestMonocleUnmapsWithTrackingDisabled(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake, layout.Monocle{Label: "monocle"})
	g.Activate(fake.Root)
	g.AddWindow(1)
	g.AddWindow(2)

	assert.Contains(t, fake.UntrackedUnmaps(), platform.WindowID(1))
	assert.NotContains(t, fake.UntrackedUnmaps(), platform.WindowID(2))
	assert.True(t, fake.Tracked(1))
}

func TestSelectLayout(t *testing.T) {
	fake := platformtest.New(800, 600)
	g := newGroup(t, fake, layout.Tiled{Label: "tiled"}, layout.Monocle{Label: "monocle"})

	assert.True(t, g.SelectLayout("monocle"))
	assert.Equal(t, "monocle", g.LayoutName())
	assert.False(t, g.SelectLayout("spiral"))
	assert.Equal(t, "monocle", g.LayoutName())
}
