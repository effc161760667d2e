package mcp

import (
	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/ipc"
)

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	ActiveGroup   string          `json:"active_group"`
	Viewport      string          `json:"viewport"`
	Groups        []ipc.GroupData `json:"groups"`
	UptimeSeconds int64           `json:"uptime_seconds"`
}

// RunActionInput is the input for the run_action tool.
type RunActionInput struct {
	Action string `json:"action" jsonschema:"required,Action name as returned by list_actions (e.g. focus-next, switch-group)"`
	Arg    string `json:"arg,omitempty" jsonschema:"Group name for switch-group and move-to-group; command line for spawn"`
}

// RunActionOutput is the output for the run_action tool.
type RunActionOutput struct {
	Action string `json:"action"`
	Status string `json:"status"`
	// ActiveGroup is read back after the action ran.
	ActiveGroup string `json:"active_group,omitempty"`
}

// ListActionsInput is the input for the list_actions tool.
type ListActionsInput struct{}

// ListActionsOutput is the output for the list_actions tool.
type ListActionsOutput struct {
	Actions []config.ActionInfo `json:"actions"`
}
