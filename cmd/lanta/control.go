package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/ipc"
	"github.com/jaimet/lanta/internal/logging"
)

func statusCmd(opts *Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show groups, layouts and windows of the running window manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(opts)
			if err != nil {
				return err
			}
			status, err := client.GetStatus()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}
			printStatus(cmd.OutOrStdout(), status, logging.IsTerminal(os.Stdout))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status as JSON")
	return cmd
}

func actionCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "action <name> [arg]",
		Short: "Run an action in the running window manager",
		Example: `  lanta action focus-next
  lanta action move-to-group g2
  lanta action spawn "xterm -e htop"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(opts)
			if err != nil {
				return err
			}
			var arg string
			if len(args) == 2 {
				arg = args[1]
			}
			return client.RunAction(args[0], arg)
		},
	}
}

func actionsCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the actions key bindings and 'lanta action' accept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Works without a running instance: the list is compiled in.
			actions := config.Actions()
			if client, err := newClient(opts); err == nil {
				if data, err := client.ListActions(); err == nil {
					actions = data.Actions
				}
			}
			printActions(cmd.OutOrStdout(), actions)
			return nil
		},
	}
}

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
)

func printStatus(w io.Writer, st *ipc.StatusData, color bool) {
	fmt.Fprintf(w, "active_group:   %s\n", st.ActiveGroup)
	fmt.Fprintf(w, "viewport:       %s\n", st.Viewport)
	fmt.Fprintf(w, "uptime_seconds: %d\n", st.UptimeSeconds)
	fmt.Fprintln(w)

	// Align first, style whole lines after: escape codes would skew the
	// column widths.
	var table strings.Builder
	tw := tabwriter.NewWriter(&table, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tLAYOUT\tWINDOWS\tFOCUSED")
	for _, g := range st.Groups {
		name := g.Name
		if g.Active {
			name = "*" + name
		}
		focused := "-"
		if len(g.Windows) > 0 {
			focused = fmt.Sprintf("0x%x", g.Focused)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, g.Layout, formatWindows(g.Windows), focused)
	}
	tw.Flush()

	for i, line := range strings.Split(strings.TrimRight(table.String(), "\n"), "\n") {
		if color {
			switch {
			case i == 0:
				line = dimStyle.Render(line)
			case strings.HasPrefix(line, "*"):
				line = activeStyle.Render(line)
			}
		}
		fmt.Fprintln(w, line)
	}
}

func formatWindows(ids []uint32) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("0x%x", id))
	}
	return strings.Join(parts, ",")
}

func printActions(w io.Writer, actions []config.ActionInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, a := range actions {
		name := a.Name
		if a.Arg != "" {
			name += " <" + a.Arg + ">"
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, a.Description)
	}
	tw.Flush()
}
