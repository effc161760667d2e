package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/ipc"
	"github.com/jaimet/lanta/internal/logging"
	"github.com/jaimet/lanta/internal/platform"
	"github.com/jaimet/lanta/internal/runtimepath"
	"github.com/jaimet/lanta/internal/wm"
)

// Options shared by every command.
type Options struct {
	ConfigPath string
	Socket     string
	Debug      bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:   "lanta",
		Short: "A small tiling window manager for X11",
		Long: `lanta manages X11 windows in groups. Each group arranges its windows
with one of several layouts, and every action is bound to a key.`,
		Example: `  # Start the window manager (from .xinitrc)
  exec lanta run

  # Inspect and drive a running instance
  lanta status
  lanta action switch-group g2`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file path (default: ~/.config/lanta/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.Socket, "socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/lanta.sock)")

	rootCmd.AddCommand(
		runCmd(&opts),
		statusCmd(&opts),
		actionCmd(&opts),
		actionsCmd(&opts),
		configCmd(&opts),
		mcpCmd(&opts),
	)
	return rootCmd
}

func runCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the window manager on $DISPLAY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWM(cmd.Context(), *opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func runWM(ctx context.Context, opts Options) error {
	res, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(res.Config.LogLevel)
	if err != nil {
		return err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	if res.File != "" {
		logger.Info("configuration loaded", "file", res.File, "groups", len(res.Config.Groups), "keys", len(res.Config.Keys))
	} else {
		logger.Info("no config file found, using built-in defaults")
	}

	backend, err := platform.NewLinuxBackendFromDisplay(logger)
	if err != nil {
		return fmt.Errorf("failed to start window manager: %w", err)
	}
	defer backend.Disconnect()

	manager, err := wm.New(backend, res.Config, logger)
	if err != nil {
		return err
	}

	socket, err := socketPath(opts.Socket)
	if err != nil {
		return err
	}
	server := ipc.NewServer(socket, ipc.ManagerController{Manager: manager}, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The quit action ends the loop without an error; take the
		// server down with it.
		defer stop()
		return manager.Run(gctx)
	})
	g.Go(func() error {
		return server.Serve(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("lanta stopped")
	return nil
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}

func socketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	path, err := runtimepath.SocketPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return path, nil
}

func newClient(opts *Options) (*ipc.Client, error) {
	path, err := socketPath(opts.Socket)
	if err != nil {
		return nil, err
	}
	return ipc.NewClientWithSocket(path), nil
}
