package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaimet/lanta/internal/logging"
	"github.com/jaimet/lanta/internal/mcp"
)

func mcpCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol integration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients,
which can then inspect and drive a running lanta through its control socket.`,
		Example: `  claude mcp add lanta -- lanta mcp serve`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(opts)
			if err != nil {
				return err
			}
			// stdout carries the protocol; logs go to stderr.
			logger := logging.New(os.Stderr, slog.LevelWarn)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcp.NewServer(client, logger).Run(ctx)
		},
	})
	return cmd
}
