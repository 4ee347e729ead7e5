package di

import (
	"fmt"
	"io"
	"os"

	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	configmanager "github.com/devantler-tech/dbcli/pkg/io/config-manager"
	"github.com/devantler-tech/dbcli/pkg/io/store"
	"github.com/devantler-tech/dbcli/pkg/svc/connector"
	"github.com/devantler-tech/dbcli/pkg/svc/resolver"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveSettings retrieves the loaded settings.
func ResolveSettings(injector Injector) (*configmanager.Settings, error) {
	settings, err := do.Invoke[*configmanager.Settings](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve settings dependency: %w", err)
	}

	return settings, nil
}

// ResolveLogger retrieves the diagnostic logger.
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	log, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return log, nil
}

// ResolveRunner retrieves the container runtime runner.
func ResolveRunner(injector Injector) (containerruntime.Runner, error) {
	runner, err := do.Invoke[containerruntime.Runner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve runtime runner dependency: %w", err)
	}

	return runner, nil
}

// ResolveStore retrieves the alias store.
func ResolveStore(injector Injector) (*store.Store, error) {
	aliases, err := do.Invoke[*store.Store](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve alias store dependency: %w", err)
	}

	return aliases, nil
}

// ResolveConnector retrieves the connector.
func ResolveConnector(injector Injector) (*connector.Connector, error) {
	conn, err := do.Invoke[*connector.Connector](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve connector dependency: %w", err)
	}

	return conn, nil
}

// ResolveResolver retrieves the interactive resolver.
func ResolveResolver(injector Injector) (*resolver.Resolver, error) {
	res, err := do.Invoke[*resolver.Resolver](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve interactive resolver dependency: %w", err)
	}

	return res, nil
}

// --- internals ---

func outWriter(injector Injector) io.Writer {
	cmd, err := do.Invoke[*cobra.Command](injector)
	if err != nil {
		return os.Stdout
	}

	return cmd.OutOrStdout()
}

func errWriter(injector Injector) io.Writer {
	cmd, err := do.Invoke[*cobra.Command](injector)
	if err != nil {
		return os.Stderr
	}

	return cmd.ErrOrStderr()
}
