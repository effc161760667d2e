package config

import "github.com/jaimet/lanta/internal/layout"

// DefaultLayoutName is selected in groups that do not name a layout.
const DefaultLayoutName = "tiled"

// BuiltinLayouts returns the layouts used when the config file declares none.
func BuiltinLayouts() []LayoutConfig {
	return []LayoutConfig{
		{Name: "tiled", Mode: layout.ModeTiled},
		{Name: "grid", Mode: layout.ModeGrid, Gap: 4, FlexibleLastRow: true},
		{Name: "columns", Mode: layout.ModeColumns},
		{Name: "master-stack", Mode: layout.ModeMasterStack, MasterPercent: 55, MaxStackRows: 3},
		{Name: "monocle", Mode: layout.ModeMonocle},
	}
}

// DefaultKeys returns the bindings used when the config file declares none.
func DefaultKeys() []KeyBinding {
	return []KeyBinding{
		{Combo: "Mod4-t", Action: ActionCloseWindow},
		{Combo: "Mod4-y", Action: ActionFocusNext},
		{Combo: "Mod4-u", Action: ActionFocusPrevious},
		{Combo: "Mod4-i", Action: ActionShuffleNext},
		{Combo: "Mod4-o", Action: ActionShufflePrevious},
		{Combo: "Mod4-p", Action: ActionSpawn, Command: Command{"xterm"}},
		{Combo: "Mod4-b", Action: ActionLayoutNext},
		{Combo: "Mod4-Shift-b", Action: ActionLayoutPrevious},
		{Combo: "Mod4-n", Action: ActionSwitchGroup, Group: "g1"},
		{Combo: "Mod4-m", Action: ActionSwitchGroup, Group: "g2"},
		{Combo: "Mod4-Shift-n", Action: ActionMoveToGroup, Group: "g1"},
		{Combo: "Mod4-Shift-m", Action: ActionMoveToGroup, Group: "g2"},
		{Combo: "Mod4-Shift-q", Action: ActionQuit},
	}
}
