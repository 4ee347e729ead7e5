// Package di wires dbcli's services together with samber/do.
//
// A Runtime holds the modules that register providers. Every Invoke builds a
// fresh injector, so each command invocation resolves its own settings, store
// and connector from the flags it was run with.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers providers on an injector.
type Module func(Injector) error

// Runtime builds injectors from a fixed set of modules.
type Runtime struct {
	modules []Module
}

// New creates a runtime from modules. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs handler against a new injector populated by the runtime's modules
// followed by extra. The injector is shut down when handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()

	defer func() {
		_ = injector.Shutdown()
	}()

	for _, module := range append(append([]Module{}, r.modules...), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to cobra's RunE. The command is registered
// in the injector so providers can read its flags and streams.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, ProvideCommand(cmd))
	}
}

// ProvideCommand registers cmd in the injector.
func ProvideCommand(cmd *cobra.Command) Module {
	return func(i Injector) error {
		do.ProvideValue(i, cmd)

		return nil
	}
}
