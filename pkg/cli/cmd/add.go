package cmd

import (
	"fmt"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/di"
	"github.com/devantler-tech/dbcli/pkg/svc/connector"
	"github.com/devantler-tech/dbcli/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// Mode flags of the add command.
const (
	InteractiveFlagName = "interactive"
	AutoDetectFlagName  = "auto-detect"
)

type addFlags struct {
	connection  *connectionFlags
	interactive bool
	autoDetect  bool
}

// NewAddCmd creates the add command.
func NewAddCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [alias]",
		Short: "Save a connection under an alias",
		Long: longDescription(
			"Save a connection under an alias. Describe it with flags, answer " +
				"prompts with --interactive, or pick a running database container " +
				"with --auto-detect, which also proposes credentials found in the " +
				"container's environment. --auto-detect takes precedence over " +
				"--interactive. Adding an existing alias replaces it.",
		),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	flags := &addFlags{connection: bindConnectionFlags(cmd)}
	cmd.Flags().BoolVarP(&flags.interactive, InteractiveFlagName, "i", false, "Prompt for the connection details")
	cmd.Flags().BoolVarP(&flags.autoDetect, AutoDetectFlagName, "a", false, "Detect running database containers")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector di.Injector) error {
			return handleAddRunE(cmd, injector, flags, args)
		}, di.ProvideCommand(cmd))
	}

	return cmd
}

// --- internals ---

func handleAddRunE(
	cmd *cobra.Command,
	injector di.Injector,
	flags *addFlags,
	args []string,
) error {
	alias, descriptor, err := resolveNewConnection(cmd, injector, flags, args)
	if err != nil {
		return err
	}

	_, err = connector.BuildArgs(descriptor)
	if err != nil {
		return fmt.Errorf("invalid connection '%s': %w", alias, err)
	}

	aliases, err := di.ResolveStore(injector)
	if err != nil {
		return err
	}

	err = aliases.Add(alias, descriptor)
	if err != nil {
		return fmt.Errorf("failed to save connection '%s': %w", alias, err)
	}

	notify.Addedf(cmd.OutOrStdout(), "Connection config '%s' added", alias)

	return nil
}

func resolveNewConnection(
	cmd *cobra.Command,
	injector di.Injector,
	flags *addFlags,
	args []string,
) (string, v1alpha1.Descriptor, error) {
	if !flags.autoDetect && !flags.interactive {
		if len(args) == 0 {
			return "", v1alpha1.Descriptor{}, fmt.Errorf(
				"%w: an alias is required unless --%s or --%s is set",
				ErrMissingConnectionFlags, InteractiveFlagName, AutoDetectFlagName,
			)
		}

		descriptor, err := flags.connection.descriptor()

		return args[0], descriptor, err
	}

	res, err := di.ResolveResolver(injector)
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	var (
		alias      string
		descriptor v1alpha1.Descriptor
	)

	if flags.autoDetect {
		alias, descriptor, err = res.AutoDetect(cmd.Context())
	} else {
		alias, descriptor, err = res.Interactive(cmd.Context())
	}

	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	flags.connection.applyOptions(&descriptor)

	return alias, descriptor, nil
}
