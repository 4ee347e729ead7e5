package connector

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	"github.com/devantler-tech/dbcli/pkg/io/validator"
	"github.com/sirupsen/logrus"
)

// Option configures a Connector.
type Option func(*Connector)

// WithProfiles replaces the engine profiles used for detection and defaults.
func WithProfiles(profiles v1alpha1.Profiles) Option {
	return func(c *Connector) {
		c.profiles = profiles
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithStreams sets the streams attached to interactive sessions.
func WithStreams(streams containerruntime.Streams) Option {
	return func(c *Connector) {
		c.streams = streams
	}
}

// Connector runs container queries and client sessions.
type Connector struct {
	runner   containerruntime.Runner
	profiles v1alpha1.Profiles
	logger   logrus.FieldLogger
	streams  containerruntime.Streams
}

// New creates a Connector backed by runner. Without options it uses the
// built-in engine profiles and the process's standard streams.
func New(runner containerruntime.Runner, opts ...Option) *Connector {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	connector := &Connector{
		runner:   runner,
		profiles: v1alpha1.DefaultProfiles(),
		logger:   discard,
		streams: containerruntime.Streams{
			In:     os.Stdin,
			Out:    os.Stdout,
			ErrOut: os.Stderr,
		},
	}

	for _, opt := range opts {
		opt(connector)
	}

	return connector
}

// Profiles returns the engine profiles in use.
func (c *Connector) Profiles() v1alpha1.Profiles {
	return c.profiles
}

// CheckContainer reports whether a container with exactly the given name is running.
func (c *Connector) CheckContainer(ctx context.Context, name string) (bool, error) {
	err := validator.ValidateContainerName(name)
	if err != nil {
		return false, err
	}

	out, err := c.runner.Query(ctx, "ps", "--format", "{{.Names}}")
	if err != nil {
		return false, fmt.Errorf("failed to retrieve container list: %w", err)
	}

	for line := range strings.Lines(out) {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}

	return false, nil
}

// Connect opens an interactive client session inside the descriptor's
// container and blocks until the client exits.
func (c *Connector) Connect(ctx context.Context, descriptor v1alpha1.Descriptor) error {
	args, err := BuildArgs(descriptor)
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"engine":    descriptor.Engine,
		"container": descriptor.Container,
	}).Debug("opening client session")

	err = c.runner.Run(ctx, c.streams, args...)
	if err != nil {
		return fmt.Errorf("failed to connect to %s container: %w", descriptor.Engine, err)
	}

	return nil
}
