package di

import (
	"fmt"

	"github.com/devantler-tech/dbcli/pkg/cli/ui/prompt"
	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	configmanager "github.com/devantler-tech/dbcli/pkg/io/config-manager"
	"github.com/devantler-tech/dbcli/pkg/io/store"
	"github.com/devantler-tech/dbcli/pkg/svc/connector"
	"github.com/devantler-tech/dbcli/pkg/svc/resolver"
	"github.com/devantler-tech/dbcli/pkg/utils/logger"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependency providers.

// NewRuntime constructs the runtime used by the root command: settings from
// viper, a logrus logger, the exec-backed runtime runner, the alias store, the
// connector, the survey prompter and the resolver.
func NewRuntime() *Runtime {
	return New(DefaultModules()...)
}

// DefaultModules returns the production modules. Tests replace individual
// entries, e.g. ProvideRunner, with fakes.
func DefaultModules() []Module {
	return []Module{
		ProvideSettings,
		ProvideLogger,
		ProvideRunner,
		ProvideStore,
		ProvideConnector,
		ProvidePrompter,
		ProvideResolver,
	}
}

// ProvideSettings loads settings, binding the invoking command's flags when one
// is registered.
func ProvideSettings(i Injector) error {
	do.Provide(i, func(i Injector) (*configmanager.Settings, error) {
		manager := configmanager.NewConfigManager("")

		cmd, err := do.Invoke[*cobra.Command](i)
		if err == nil {
			err = manager.BindFlags(cmd.Flags())
			if err != nil {
				return nil, err
			}
		}

		settings, err := manager.Load()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}

		return settings, nil
	})

	return nil
}

// ProvideLogger registers a logger writing to the command's stderr.
func ProvideLogger(i Injector) error {
	do.Provide(i, func(i Injector) (logrus.FieldLogger, error) {
		settings, err := ResolveSettings(i)
		if err != nil {
			return nil, err
		}

		return logger.New(settings.LogLevel, errWriter(i))
	})

	return nil
}

// ProvideRunner registers the exec-backed runtime runner.
func ProvideRunner(i Injector) error {
	do.Provide(i, func(i Injector) (containerruntime.Runner, error) {
		settings, err := ResolveSettings(i)
		if err != nil {
			return nil, err
		}

		log, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return containerruntime.NewExecRunner(settings.Runtime, log), nil
	})

	return nil
}

// ProvideStore registers the alias store at the configured path.
func ProvideStore(i Injector) error {
	do.Provide(i, func(i Injector) (*store.Store, error) {
		settings, err := ResolveSettings(i)
		if err != nil {
			return nil, err
		}

		return store.New(settings.AliasFile)
	})

	return nil
}

// ProvideConnector registers the connector with configured engine profiles and
// the command's streams attached to sessions.
func ProvideConnector(i Injector) error {
	do.Provide(i, func(i Injector) (*connector.Connector, error) {
		settings, err := ResolveSettings(i)
		if err != nil {
			return nil, err
		}

		profiles, err := settings.Profiles()
		if err != nil {
			return nil, err
		}

		runner, err := ResolveRunner(i)
		if err != nil {
			return nil, err
		}

		log, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		opts := []connector.Option{connector.WithProfiles(profiles), connector.WithLogger(log)}

		cmd, err := do.Invoke[*cobra.Command](i)
		if err == nil {
			opts = append(opts, connector.WithStreams(containerruntime.Streams{
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				ErrOut: cmd.ErrOrStderr(),
			}))
		}

		return connector.New(runner, opts...), nil
	})

	return nil
}

// ProvidePrompter registers the survey prompter on the process terminal.
func ProvidePrompter(i Injector) error {
	do.Provide(i, func(Injector) (resolver.Prompter, error) {
		return prompt.NewStdioSurvey(), nil
	})

	return nil
}

// ProvideResolver registers the interactive resolver.
func ProvideResolver(i Injector) error {
	do.Provide(i, func(i Injector) (*resolver.Resolver, error) {
		prompter, err := do.Invoke[resolver.Prompter](i)
		if err != nil {
			return nil, fmt.Errorf("resolve prompter dependency: %w", err)
		}

		conn, err := ResolveConnector(i)
		if err != nil {
			return nil, err
		}

		return resolver.New(prompter, conn, outWriter(i)), nil
	})

	return nil
}
