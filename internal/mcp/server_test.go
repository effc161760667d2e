package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/ipc"
)

type fakeClient struct {
	status  ipc.StatusData
	ran     []string
	runErr  error
	statErr error
}

func (f *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeClient) RunAction(action, arg string) error {
	f.ran = append(f.ran, strings.TrimSpace(action+" "+arg))
	if f.runErr != nil {
		return f.runErr
	}
	if action == config.ActionSwitchGroup {
		f.status.ActiveGroup = arg
	}
	return nil
}

func (f *fakeClient) ListActions() (*ipc.ActionsData, error) {
	return &ipc.ActionsData{Actions: config.Actions()}, nil
}

func TestHandleGetStatus(t *testing.T) {
	client := &fakeClient{status: ipc.StatusData{
		ActiveGroup: "g1",
		Viewport:    "800x600+0+0",
		Groups:      []ipc.GroupData{{Name: "g1", Active: true, Layout: "tiled", Windows: []uint32{5}}},
	}}
	s := NewServer(client, nil)

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("get_status: %v", err)
	}
	if out.ActiveGroup != "g1" || len(out.Groups) != 1 || out.Groups[0].Windows[0] != 5 {
		t.Fatalf("unexpected status %+v", out)
	}

	client.statErr = errors.New("not running")
	if _, _, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{}); err == nil {
		t.Fatalf("expected error when the window manager is unreachable")
	}
}

func TestHandleRunAction(t *testing.T) {
	tests := []struct {
		name       string
		input      RunActionInput
		runErr     error
		wantErr    string
		wantActive string
		wantRan    int
	}{
		{name: "switch group", input: RunActionInput{Action: "switch-group", Arg: "g2"}, wantActive: "g2", wantRan: 1},
		{name: "focus", input: RunActionInput{Action: "focus-next"}, wantActive: "g1", wantRan: 1},
		{name: "quit skips status", input: RunActionInput{Action: "quit"}, wantRan: 1},
		{name: "unknown action", input: RunActionInput{Action: "focus-nxt"}, wantErr: "list_actions"},
		{name: "backend error", input: RunActionInput{Action: "switch-group", Arg: "zz"}, runErr: errors.New("unknown group"), wantErr: "unknown group", wantRan: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{status: ipc.StatusData{ActiveGroup: "g1"}, runErr: tt.runErr}
			s := NewServer(client, nil)

			_, out, err := s.handleRunAction(context.Background(), nil, tt.input)
			if len(client.ran) != tt.wantRan {
				t.Fatalf("ran %v, want %d calls", client.ran, tt.wantRan)
			}
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("run_action: %v", err)
			}
			if out.Status != "ok" || out.ActiveGroup != tt.wantActive {
				t.Fatalf("unexpected output %+v", out)
			}
		})
	}
}

func TestHandleListActions(t *testing.T) {
	s := NewServer(&fakeClient{}, nil)

	_, out, err := s.handleListActions(context.Background(), nil, ListActionsInput{})
	if err != nil {
		t.Fatalf("list_actions: %v", err)
	}
	if len(out.Actions) != len(config.ActionNames()) {
		t.Fatalf("expected %d actions, got %d", len(config.ActionNames()), len(out.Actions))
	}
}
