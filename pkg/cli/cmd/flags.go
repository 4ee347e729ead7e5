package cmd

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names shared by connect and add.
const (
	ContainerFlagName = "container"
	EngineFlagName    = "db-type"
	UserFlagName      = "user"
	PasswordFlagName  = "password"
	DatabaseFlagName  = "database"
	PortFlagName      = "port"
	OptionFlagName    = "option"
)

// ErrMissingConnectionFlags is returned when neither an alias nor the
// mandatory connection flags are given.
var ErrMissingConnectionFlags = errors.New("missing connection details")

// connectionFlags holds the values of the connection flags of one command.
type connectionFlags struct {
	container string
	engine    v1alpha1.Engine
	user      string
	password  string
	database  string
	port      uint16
	options   map[string]string

	set *pflag.FlagSet
}

func bindConnectionFlags(cmd *cobra.Command) *connectionFlags {
	flags := cmd.Flags()
	values := &connectionFlags{set: flags}

	flags.StringVarP(&values.container, ContainerFlagName, "c", "", "Docker container name")
	flags.VarP(&values.engine, EngineFlagName, "d",
		fmt.Sprintf("Database type (%s)", strings.Join(values.engine.ValidValues(), ", ")))
	flags.StringVarP(&values.user, UserFlagName, "u", "", "Database username")
	flags.StringVarP(&values.password, PasswordFlagName, "p", "", "Database password")
	flags.StringVarP(&values.database, DatabaseFlagName, "n", "", "Database name")
	flags.Uint16VarP(&values.port, PortFlagName, "P", 0, "Database port")
	flags.StringToStringVar(&values.options, OptionFlagName, nil,
		"Extra client option passed as --key value (repeatable, key=value)")

	return values
}

// complete reports whether the flags alone describe a connection. An explicitly
// empty --user counts as given; per-engine rules decide whether it is allowed.
func (f *connectionFlags) complete() bool {
	return f.container != "" && f.engine != "" && (f.user != "" || f.set.Changed(UserFlagName))
}

// descriptor builds a descriptor from the flags. It fails when container,
// db-type or user is missing.
func (f *connectionFlags) descriptor() (v1alpha1.Descriptor, error) {
	if !f.complete() {
		return v1alpha1.Descriptor{}, fmt.Errorf(
			"%w: --%s, --%s and --%s are required",
			ErrMissingConnectionFlags, ContainerFlagName, EngineFlagName, UserFlagName,
		)
	}

	descriptor := v1alpha1.Descriptor{
		Engine:    f.engine,
		Container: f.container,
		User:      f.user,
		Password:  v1alpha1.OptionalString(f.password),
		Database:  v1alpha1.OptionalString(f.database),
		Port:      v1alpha1.OptionalPort(f.port),
	}
	f.applyOptions(&descriptor)

	return descriptor, nil
}

// applyOptions merges --option values into descriptor, overriding stored keys.
func (f *connectionFlags) applyOptions(descriptor *v1alpha1.Descriptor) {
	if len(f.options) == 0 {
		return
	}

	merged := make(map[string]string, len(descriptor.Options)+len(f.options))
	maps.Copy(merged, descriptor.Options)
	maps.Copy(merged, f.options)
	descriptor.Options = merged
}
