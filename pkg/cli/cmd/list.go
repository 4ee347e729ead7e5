package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/devantler-tech/dbcli/pkg/di"
	"github.com/devantler-tech/dbcli/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// listTitleEmoji prefixes the connection list.
const listTitleEmoji = "🗄"

//nolint:gochecknoglobals // immutable styles
var (
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// NewListCmd creates the list command.
func NewListCmd(runtime *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List saved connections and whether their containers run",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         di.RunEWithRuntime(runtime, handleListRunE),
	}
}

// --- internals ---

func handleListRunE(cmd *cobra.Command, injector di.Injector) error {
	aliases, err := di.ResolveStore(injector)
	if err != nil {
		return err
	}

	connections, err := aliases.List()
	if err != nil {
		return fmt.Errorf("failed to list connections: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(connections) == 0 {
		notify.Infof(out, "No saved connections")

		return nil
	}

	conn, err := di.ResolveConnector(injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, listTitleEmoji, "Connection list:")

	for _, alias := range slices.Sorted(maps.Keys(connections)) {
		descriptor := connections[alias]

		running, err := conn.CheckContainer(cmd.Context(), descriptor.Container)
		if err != nil {
			return fmt.Errorf("failed to check container of '%s': %w", alias, err)
		}

		_, err = fmt.Fprintf(out, "  %s: %s (%s@%s, DB: %s) [%s]\n",
			alias,
			descriptor.Engine,
			descriptor.User,
			descriptor.Container,
			descriptor.DatabaseOrDash(),
			status(running),
		)
		if err != nil {
			return fmt.Errorf("failed to write connection list: %w", err)
		}
	}

	return nil
}

func status(running bool) string {
	if running {
		return runningStyle.Render("Running")
	}

	return stoppedStyle.Render("Stopped")
}
