package cmd

import (
	"fmt"

	"github.com/devantler-tech/dbcli/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/dbcli/pkg/cli/ui/prompt"
	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	"github.com/devantler-tech/dbcli/pkg/di"
	configmanager "github.com/devantler-tech/dbcli/pkg/io/config-manager"
	"github.com/devantler-tech/dbcli/pkg/io/store"
	"github.com/devantler-tech/dbcli/pkg/utils/logger"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

// helpWidth is the column at which long descriptions are wrapped.
const helpWidth = 80

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command with services resolved from runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbcli",
		Short: "Connect to databases running in containers",
		Long: longDescription(
			"dbcli stores named aliases for database containers and opens the " +
				"engine's own client (psql, mysql or mongosh) inside the container " +
				"through the container runtime's CLI.",
		),
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(
		configmanager.KeyRuntime,
		containerruntime.DefaultBinary,
		"Container runtime binary (docker or podman)",
	)
	cmd.PersistentFlags().String(
		configmanager.KeyConfig,
		"",
		"Alias file path (default $XDG_CONFIG_HOME/"+store.DefaultRelativePath+")",
	)
	cmd.PersistentFlags().String(
		configmanager.KeyLogLevel,
		logger.DefaultLevel,
		"Diagnostic log level",
	)

	cmd.AddCommand(NewConnectCmd(runtime))
	cmd.AddCommand(NewAddCmd(runtime))
	cmd.AddCommand(NewRemoveCmd(runtime))
	cmd.AddCommand(NewListCmd(runtime))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor(Hints()...)

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// Hints returns the advice attached to well-known failures.
func Hints() []errorhandler.Hint {
	return []errorhandler.Hint{
		{Target: store.ErrAliasNotFound, Text: "run 'dbcli list' to see saved connections"},
		{Target: containerruntime.ErrRuntime, Text: "check that the container runtime is installed and running"},
		{Target: prompt.ErrNotTerminal, Text: "pass the connection details as flags instead"},
		{Target: ErrMissingConnectionFlags, Text: "pass an alias, or use 'dbcli add --interactive'"},
	}
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}

func longDescription(text string) string {
	return wordwrap.WrapString(text, helpWidth)
}
