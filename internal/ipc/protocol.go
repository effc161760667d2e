package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandRunAction   CommandType = "RUN_ACTION"
	CommandListActions CommandType = "LIST_ACTIONS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveGroup   string      `json:"active_group"`
	Viewport      string      `json:"viewport"`
	Groups        []GroupData `json:"groups"`
	UptimeSeconds int64       `json:"uptime_seconds"`
}

// GroupData describes one group in StatusData.
type GroupData struct {
	Name    string   `json:"name"`
	Active  bool     `json:"active"`
	Layout  string   `json:"layout"`
	Layouts []string `json:"layouts"`
	Windows []uint32 `json:"windows"`
	Focused uint32   `json:"focused,omitempty"`
}

// RunActionPayload represents the payload for RUN_ACTION
type RunActionPayload struct {
	Action string `json:"action"`
	Arg    string `json:"arg,omitempty"`
}

// ActionsData represents the data returned by LIST_ACTIONS
type ActionsData struct {
	Actions []config.ActionInfo `json:"actions"`
}

// NewStatusData converts a manager snapshot to its wire form.
func NewStatusData(st wm.Status) StatusData {
	data := StatusData{
		ActiveGroup:   st.ActiveGroup,
		Viewport:      st.Viewport.String(),
		Groups:        make([]GroupData, 0, len(st.Groups)),
		UptimeSeconds: st.UptimeSeconds,
	}
	for _, g := range st.Groups {
		windows := make([]uint32, 0, len(g.Windows))
		for _, id := range g.Windows {
			windows = append(windows, uint32(id))
		}
		data.Groups = append(data.Groups, GroupData{
			Name:    g.Name,
			Active:  g.Active,
			Layout:  g.Layout,
			Layouts: g.Layouts,
			Windows: windows,
			Focused: uint32(g.Focused),
		})
	}
	return data
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
