package ipc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/platform"
	"github.com/jaimet/lanta/internal/platform/platformtest"
	"github.com/jaimet/lanta/internal/wm"
)

type fakeController struct {
	mu      sync.Mutex
	status  wm.Status
	actions []RunActionPayload
	err     error
}

func (f *fakeController) Status(context.Context) (wm.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.err
}

func (f *fakeController) RunAction(_ context.Context, action, arg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, RunActionPayload{Action: action, Arg: arg})
	return f.err
}

func (f *fakeController) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeController) received() []RunActionPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RunActionPayload(nil), f.actions...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startServer(t *testing.T, ctrl Controller) (*Server, *Client) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "lanta.sock")
	srv := NewServer(socket, ctrl, discardLogger())
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv, NewClientWithSocket(socket)
}

func TestServer_StatusRoundTrip(t *testing.T) {
	ctrl := &fakeController{status: wm.Status{
		ActiveGroup: "g1",
		Viewport:    platform.Rect{Width: 800, Height: 600},
		Groups: []wm.GroupStatus{
			{Name: "g1", Active: true, Layout: "tiled", Layouts: []string{"tiled"}, Windows: []platform.WindowID{3, 4}, Focused: 4},
			{Name: "g2", Layout: "tiled", Layouts: []string{"tiled"}},
		},
		UptimeSeconds: 12,
	}}
	_, client := startServer(t, ctrl)

	st, err := client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "g1", st.ActiveGroup)
	assert.Equal(t, "800x600+0+0", st.Viewport)
	assert.Equal(t, int64(12), st.UptimeSeconds)
	require.Len(t, st.Groups, 2)
	assert.Equal(t, []uint32{3, 4}, st.Groups[0].Windows)
	assert.Equal(t, uint32(4), st.Groups[0].Focused)
	assert.Empty(t, st.Groups[1].Windows)
}

func TestServer_RunAction(t *testing.T) {
	ctrl := &fakeController{}
	_, client := startServer(t, ctrl)

	require.NoError(t, client.RunAction(config.ActionSwitchGroup, "g2"))
	assert.Equal(t, []RunActionPayload{{Action: "switch-group", Arg: "g2"}}, ctrl.received())

	ctrl.fail(errors.New("boom"))
	err := client.RunAction(config.ActionQuit, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	err = client.RunAction("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action is required")
}

func TestServer_ListActions(t *testing.T) {
	_, client := startServer(t, &fakeController{})

	data, err := client.ListActions()
	require.NoError(t, err)
	assert.Equal(t, config.Actions(), data.Actions)
}

func TestServer_RejectsBadRequests(t *testing.T) {
	srv, _ := startServer(t, &fakeController{})

	for _, line := range []string{"not json\n", `{"command":"DANCE"}` + "\n"} {
		conn, err := net.Dial("unix", srv.SocketPath())
		require.NoError(t, err)
		_, err = conn.Write([]byte(line))
		require.NoError(t, err)

		resp, err := io.ReadAll(conn)
		conn.Close()
		require.NoError(t, err)
		assert.Contains(t, string(resp), `"status":"ERROR"`)
	}
}

func TestServer_StopRemovesSocket(t *testing.T) {
	srv, client := startServer(t, &fakeController{})
	require.NoError(t, client.Ping())

	srv.Stop()
	_, err := os.Stat(srv.SocketPath())
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, client.Ping())
}

func TestServer_DrivesManagerLoop(t *testing.T) {
	fake := platformtest.New(800, 600)
	m, err := wm.New(fake, config.DefaultConfig(), discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	_, client := startServer(t, ManagerController{Manager: m})

	require.NoError(t, client.RunAction(config.ActionSwitchGroup, "g2"))
	st, err := client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "g2", st.ActiveGroup)

	err = client.RunAction(config.ActionSwitchGroup, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown group")

	require.NoError(t, client.RunAction(config.ActionQuit, ""))
	require.NoError(t, <-done)

	err = client.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), wm.ErrStopped.Error())
}
