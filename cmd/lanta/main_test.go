package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/ipc"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "config", "validate", "--config", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "built-in defaults")

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("log_level: debug\n"), 0o644))
	out, err = execute(t, "config", "validate", "--config", good)
	require.NoError(t, err)
	assert.Contains(t, out, good)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("layouts:\n  - mode: tield\n"), 0o644))
	_, err = execute(t, "config", "validate", "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "tiled"?`)
}

func TestConfigPrintDefaults(t *testing.T) {
	out, err := execute(t, "config", "print", "--defaults")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().GroupNames(), cfg.GroupNames())
}

func TestActionRequiresRunningInstance(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "none.sock")
	_, err := execute(t, "--socket", socket, "action", "focus-next")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is the window manager running?")
}

func TestActionsWorksOffline(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "none.sock")
	out, err := execute(t, "--socket", socket, "actions")
	require.NoError(t, err)
	for _, name := range config.ActionNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "switch-group <group>")
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	printStatus(&out, &ipc.StatusData{
		ActiveGroup:   "g1",
		Viewport:      "800x600+0+0",
		UptimeSeconds: 3,
		Groups: []ipc.GroupData{
			{Name: "g1", Active: true, Layout: "tiled", Windows: []uint32{0x400001, 0x400002}, Focused: 0x400002},
			{Name: "g2", Layout: "monocle"},
		},
	}, false)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "active_group:   g1", lines[0])
	assert.Equal(t, []string{"*g1", "tiled", "0x400001,0x400002", "0x400002"}, strings.Fields(lines[5]))
	assert.Equal(t, []string{"g2", "monocle", "-", "-"}, strings.Fields(lines[6]))
}
