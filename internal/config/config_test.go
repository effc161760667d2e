package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaimet/lanta/internal/layout"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	layouts, err := cfg.BuildLayouts()
	if err != nil {
		t.Fatalf("build layouts: %v", err)
	}
	if len(layouts) != len(BuiltinLayouts()) {
		t.Fatalf("expected %d layouts, got %d", len(BuiltinLayouts()), len(layouts))
	}
	if layouts[0].Name() != DefaultLayoutName {
		t.Fatalf("expected first layout %q, got %q", DefaultLayoutName, layouts[0].Name())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if got := res.Config.GroupNames(); strings.Join(got, ",") != "g1,g2" {
		t.Fatalf("expected default groups, got %v", got)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
	if len(res.Config.Keys) != len(DefaultKeys()) {
		t.Fatalf("expected %d default keys, got %d", len(DefaultKeys()), len(res.Config.Keys))
	}
}

func TestLoadFromPath_FullDocument(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
groups:
  - name: web
    default_layout: wide
  - name: chat
layouts:
  - name: wide
    mode: master-stack
    gap: 6
    master_percent: 60
  - mode: monocle
keys:
  - combo: Mod4-Return
    action: spawn
    command: "xterm -title 'a b'"
  - combo: Mod4-1
    action: switch-group
    group: chat
  - combo: Mod4-q
    action: quit
`)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config

	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
	if got := cfg.LayoutNames(); strings.Join(got, ",") != "wide,monocle" {
		t.Fatalf("layouts = %v", got)
	}
	if cfg.Layouts[0].Mode != layout.ModeMasterStack || cfg.Layouts[0].Gap != 6 {
		t.Fatalf("unexpected first layout %+v", cfg.Layouts[0])
	}
	want := []string{"xterm", "-title", "a b"}
	if strings.Join(cfg.Keys[0].Command, "|") != strings.Join(want, "|") {
		t.Fatalf("command = %q, want %q", cfg.Keys[0].Command, want)
	}
	if src := res.Sources["keys[1].group"]; src.Line == 0 || src.File != path {
		t.Fatalf("expected source for keys[1].group, got %#v", src)
	}
}

func TestLoadFromPath_CommandAsList(t *testing.T) {
	cfg, err := Parse([]byte(`
keys:
  - combo: Mod4-p
    action: spawn
    command: [rofi, -show, run]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Keys) != 1 || len(cfg.Keys[0].Command) != 3 {
		t.Fatalf("unexpected keys %+v", cfg.Keys)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestValidate_ReportsEveryProblemWithHints(t *testing.T) {
	path := writeConfig(t, `
log_level: verbose
groups:
  - name: one
    default_layout: tield
layouts:
  - name: tiled
    mode: tiled
  - name: big
    mode: monocel
keys:
  - combo: Mod4-x
    action: focus-nxt
  - combo: Mod4-x
    action: switch-group
    group: two
  - combo: Mod4-p
    action: spawn
`)
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	msg := err.Error()
	for _, want := range []string{
		"log_level",
		`layout "tield" not found (did you mean "tiled"?)`,
		`invalid mode "monocel" (did you mean "monocle"?)`,
		`unknown action "focus-nxt" (did you mean "focus-next"?)`,
		`combo "Mod4-x" is bound more than once`,
		`group "two" not found`,
		"spawn requires a command",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error:\n%s", want, msg)
		}
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError in %v", err)
	}
	if !strings.Contains(msg, path+":") {
		t.Fatalf("expected file positions in error:\n%s", msg)
	}
}

func TestApplyDefaults_PartialConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
layouts:
  - name: cols
    mode: columns
groups:
  - name: g1
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, k := range cfg.Keys {
		if k.Group == "g2" {
			t.Fatalf("expected bindings for undeclared group g2 to be dropped, got %+v", k)
		}
	}

	cfg, err = Parse([]byte(`
layouts:
  - name: cols
    mode: columns
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, g := range cfg.Groups {
		if g.DefaultLayout != "" {
			t.Fatalf("expected default groups to fall back to first layout, got %+v", g)
		}
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		err  bool
	}{
		{in: "xterm", want: []string{"xterm"}},
		{in: `sh -c "echo hi"`, want: []string{"sh", "-c", "echo hi"}},
		{in: `a\ b c`, want: []string{"a b", "c"}},
		{in: `'unterminated`, err: true},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.in)
		if tt.err {
			if err == nil {
				t.Fatalf("ParseCommand(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCommand(%q): %v", tt.in, err)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Fatalf("ParseCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalRoundTrips(t *testing.T) {
	data, err := DefaultConfig().Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("parse marshalled defaults: %v\n%s", err, data)
	}
	if len(cfg.Keys) != len(DefaultKeys()) {
		t.Fatalf("expected %d keys, got %d", len(DefaultKeys()), len(cfg.Keys))
	}
}

func TestActions(t *testing.T) {
	if !IsAction(ActionSpawn) || IsAction("dance") {
		t.Fatalf("IsAction mismatch")
	}
	if len(ActionNames()) != len(Actions()) {
		t.Fatalf("ActionNames and Actions disagree")
	}
}
