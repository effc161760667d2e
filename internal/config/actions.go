package config

import "slices"

// Action names accepted in key bindings and over IPC.
const (
	ActionCloseWindow     = "close-window"
	ActionFocusNext       = "focus-next"
	ActionFocusPrevious   = "focus-previous"
	ActionShuffleNext     = "shuffle-next"
	ActionShufflePrevious = "shuffle-previous"
	ActionLayoutNext      = "layout-next"
	ActionLayoutPrevious  = "layout-previous"
	ActionSwitchGroup     = "switch-group"
	ActionMoveToGroup     = "move-to-group"
	ActionSpawn           = "spawn"
	ActionQuit            = "quit"
)

// ActionInfo describes an action for listings.
type ActionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Arg names the argument the action takes, if any.
	Arg string `json:"arg,omitempty"`
}

var actions = []ActionInfo{
	{Name: ActionCloseWindow, Description: "Ask the focused window to close"},
	{Name: ActionFocusNext, Description: "Focus the next window in the active group"},
	{Name: ActionFocusPrevious, Description: "Focus the previous window in the active group"},
	{Name: ActionShuffleNext, Description: "Swap the focused window with the next one"},
	{Name: ActionShufflePrevious, Description: "Swap the focused window with the previous one"},
	{Name: ActionLayoutNext, Description: "Switch the active group to its next layout"},
	{Name: ActionLayoutPrevious, Description: "Switch the active group to its previous layout"},
	{Name: ActionSwitchGroup, Description: "Show another group", Arg: "group"},
	{Name: ActionMoveToGroup, Description: "Send the focused window to another group", Arg: "group"},
	{Name: ActionSpawn, Description: "Start an external program", Arg: "command"},
	{Name: ActionQuit, Description: "Stop the window manager"},
}

// Actions returns every known action.
func Actions() []ActionInfo {
	return slices.Clone(actions)
}

// ActionNames returns the name of every known action.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.Name)
	}
	return names
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	return slices.ContainsFunc(actions, func(a ActionInfo) bool { return a.Name == name })
}
