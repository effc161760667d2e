// Package mcp exposes the window manager control socket as MCP tools over
// stdio.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jaimet/lanta/internal/ipc"
)

const (
	ServerName    = "lanta"
	ServerVersion = "0.1.0"
)

// Client is the part of the IPC client the tools use.
type Client interface {
	GetStatus() (*ipc.StatusData, error)
	RunAction(action, arg string) error
	ListActions() (*ipc.ActionsData, error)
}

var _ Client = (*ipc.Client)(nil)

// Server is the MCP server for lanta.
type Server struct {
	mcpServer *mcpsdk.Server
	client    Client
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards tool calls to client.
func NewServer(client Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		client: client,
		logger: logger.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Show the window manager state: the active group and, for every group, its selected layout, available layouts, managed windows in layout order and the focused window.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_action",
		Description: "Run a window manager action, exactly as if its key binding was pressed. switch-group and move-to-group take a group name in arg; spawn takes a command line in arg.",
	}, s.handleRunAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_actions",
		Description: "List the actions run_action accepts, with a description and the argument each one takes.",
	}, s.handleListActions)
}
