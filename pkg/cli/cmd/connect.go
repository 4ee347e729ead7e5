package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/di"
	"github.com/devantler-tech/dbcli/pkg/utils/envvar"
	"github.com/devantler-tech/dbcli/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// ErrContainerNotRunning is returned when the target container is not running.
var ErrContainerNotRunning = errors.New("container is not running")

// NewConnectCmd creates the connect command.
func NewConnectCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect [alias]",
		Short: "Open a database client inside a container",
		Long: longDescription(
			"Open the engine's client inside a running container. Pass a saved " +
				"alias, or describe the connection with --container, --db-type and " +
				"--user. The client inherits the terminal until it exits.",
		),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	flags := bindConnectionFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector di.Injector) error {
			return handleConnectRunE(cmd, injector, flags, args)
		}, di.ProvideCommand(cmd))
	}

	return cmd
}

// --- internals ---

// handleConnectRunE resolves the connection, checks that its container is
// running and hands the terminal to the client.
func handleConnectRunE(
	cmd *cobra.Command,
	injector di.Injector,
	flags *connectionFlags,
	args []string,
) error {
	descriptor, err := resolveConnection(cmd.ErrOrStderr(), injector, flags, args)
	if err != nil {
		return err
	}

	conn, err := di.ResolveConnector(injector)
	if err != nil {
		return err
	}

	running, err := conn.CheckContainer(cmd.Context(), descriptor.Container)
	if err != nil {
		return err
	}

	if !running {
		return fmt.Errorf("%w: container '%s' is not running", ErrContainerNotRunning, descriptor.Container)
	}

	notify.Activityf(cmd.OutOrStdout(), "Connecting to %s container '%s'...", descriptor.Engine, descriptor.Container)

	return conn.Connect(cmd.Context(), descriptor)
}

// resolveConnection prefers a saved alias over the connection flags. Options
// given on the command line extend the saved ones. Placeholders are expanded in
// saved values only; flag values are passed through as given.
func resolveConnection(
	warnings io.Writer,
	injector di.Injector,
	flags *connectionFlags,
	args []string,
) (v1alpha1.Descriptor, error) {
	if len(args) == 0 {
		return flags.descriptor()
	}

	aliases, err := di.ResolveStore(injector)
	if err != nil {
		return v1alpha1.Descriptor{}, err
	}

	descriptor, err := aliases.Get(args[0])
	if err != nil {
		return v1alpha1.Descriptor{}, fmt.Errorf("failed to load connection '%s': %w", args[0], err)
	}

	descriptor = expandPlaceholders(warnings, descriptor)
	flags.applyOptions(&descriptor)

	return descriptor, nil
}

// expandPlaceholders resolves ${VAR} placeholders in the password and option
// values. Unset variables are reported and expand to "".
func expandPlaceholders(warnings io.Writer, descriptor v1alpha1.Descriptor) v1alpha1.Descriptor {
	expand := func(value string) string {
		expanded, missing := envvar.Expand(value)
		for _, name := range missing {
			notify.Warningf(warnings, "environment variable %s is not set", name)
		}

		return expanded
	}

	if descriptor.Password != nil {
		descriptor.Password = v1alpha1.OptionalString(expand(*descriptor.Password))
	}

	if len(descriptor.Options) > 0 {
		options := make(map[string]string, len(descriptor.Options))
		for key, value := range descriptor.Options {
			options[key] = expand(value)
		}

		descriptor.Options = options
	}

	return descriptor
}
