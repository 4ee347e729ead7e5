package connector

import (
	"fmt"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/io/validator"
)

// clientArgs assembles the client arguments that follow the client binary.
type clientArgs func(descriptor v1alpha1.Descriptor) []string

// BuildArgs validates descriptor and returns the full runtime argument list,
// starting with "exec -it <container> <client>". Options follow the
// engine-specific arguments as "--<key> <value>" pairs in key order.
func BuildArgs(descriptor v1alpha1.Descriptor) ([]string, error) {
	err := validate(descriptor)
	if err != nil {
		return nil, err
	}

	assemble, err := strategyFor(descriptor.Engine)
	if err != nil {
		return nil, err
	}

	args := []string{"exec", "-it", descriptor.Container, descriptor.Engine.Client()}
	args = append(args, assemble(descriptor)...)

	for _, key := range descriptor.SortedOptionKeys() {
		args = append(args, "--"+key, descriptor.Options[key])
	}

	return args, nil
}

// --- internals ---

func validate(descriptor v1alpha1.Descriptor) error {
	err := descriptor.CheckRequired()
	if err != nil {
		return err
	}

	err = validator.ValidateContainerName(descriptor.Container)
	if err != nil {
		return err
	}

	if descriptor.Engine != v1alpha1.EngineMongoDB || descriptor.User != "" {
		err = validator.ValidateUsername(descriptor.User)
		if err != nil {
			return err
		}
	}

	if descriptor.Database != nil {
		err = validator.ValidateDatabaseName(*descriptor.Database)
		if err != nil {
			return err
		}
	}

	for _, key := range descriptor.SortedOptionKeys() {
		err = validator.ValidateOptionKey(key)
		if err != nil {
			return err
		}
	}

	return nil
}

func strategyFor(engine v1alpha1.Engine) (clientArgs, error) {
	switch engine {
	case v1alpha1.EnginePostgreSQL:
		return postgresArgs, nil
	case v1alpha1.EngineMySQL:
		return mysqlArgs, nil
	case v1alpha1.EngineMongoDB:
		return mongoArgs, nil
	default:
		return nil, fmt.Errorf("%w: %q", v1alpha1.ErrUnknownEngine, engine)
	}
}

func postgresArgs(descriptor v1alpha1.Descriptor) []string {
	var args []string

	if descriptor.Database != nil {
		args = append(args, "-d", *descriptor.Database)
	}

	return append(args, "-U", descriptor.User)
}

func mysqlArgs(descriptor v1alpha1.Descriptor) []string {
	var args []string

	if descriptor.Database != nil {
		args = append(args, *descriptor.Database)
	}

	args = append(args, "-u", descriptor.User)

	if descriptor.Password != nil {
		args = append(args, "-p"+*descriptor.Password)
	}

	return args
}

func mongoArgs(descriptor v1alpha1.Descriptor) []string {
	var args []string

	if descriptor.User != "" {
		args = append(args, "-u", descriptor.User)

		if descriptor.Password != nil {
			args = append(args, "-p", *descriptor.Password)
		}
	}

	if descriptor.Database != nil {
		args = append(args, *descriptor.Database)
	}

	return args
}
