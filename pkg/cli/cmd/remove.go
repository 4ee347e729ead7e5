package cmd

import (
	"fmt"

	"github.com/devantler-tech/dbcli/pkg/di"
	"github.com/devantler-tech/dbcli/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd(runtime *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "remove <alias>",
		Short:        "Delete a saved connection",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runtime.Invoke(func(injector di.Injector) error {
				return handleRemoveRunE(cmd, injector, args[0])
			}, di.ProvideCommand(cmd))
		},
	}
}

// --- internals ---

func handleRemoveRunE(cmd *cobra.Command, injector di.Injector, alias string) error {
	aliases, err := di.ResolveStore(injector)
	if err != nil {
		return err
	}

	err = aliases.Remove(alias)
	if err != nil {
		return fmt.Errorf("failed to remove connection '%s': %w", alias, err)
	}

	notify.Successf(cmd.OutOrStdout(), "Connection config '%s' removed", alias)

	return nil
}
