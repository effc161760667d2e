package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jaimet/lanta/internal/config"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	st, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		ActiveGroup:   st.ActiveGroup,
		Viewport:      st.Viewport,
		Groups:        st.Groups,
		UptimeSeconds: st.UptimeSeconds,
	}, nil
}

func (s *Server) handleRunAction(_ context.Context, _ *mcpsdk.CallToolRequest, args RunActionInput) (*mcpsdk.CallToolResult, RunActionOutput, error) {
	if !config.IsAction(args.Action) {
		return nil, RunActionOutput{}, fmt.Errorf("unknown action %q; call list_actions for valid names", args.Action)
	}
	if err := s.client.RunAction(args.Action, args.Arg); err != nil {
		return nil, RunActionOutput{}, err
	}
	s.logger.Info("ran action", "action", args.Action, "arg", args.Arg)

	out := RunActionOutput{Action: args.Action, Status: "ok"}
	if args.Action == config.ActionQuit {
		return nil, out, nil
	}
	if st, err := s.client.GetStatus(); err == nil {
		out.ActiveGroup = st.ActiveGroup
	}
	return nil, out, nil
}

func (s *Server) handleListActions(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListActionsInput) (*mcpsdk.CallToolResult, ListActionsOutput, error) {
	data, err := s.client.ListActions()
	if err != nil {
		return nil, ListActionsOutput{}, err
	}
	return nil, ListActionsOutput{Actions: data.Actions}, nil
}
