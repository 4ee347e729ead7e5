package connector

import (
	"context"
	"fmt"
	"strings"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/io/validator"
	"github.com/sirupsen/logrus"
)

const (
	detectFormat = "{{.Names}}\t{{.Image}}\t{{.Ports}}\t{{.Status}}"
	detectFields = 4
)

// DetectDatabaseContainers lists running containers and returns those
// recognised as databases, in the runtime's listing order.
func (c *Connector) DetectDatabaseContainers(ctx context.Context) ([]v1alpha1.DetectedContainer, error) {
	out, err := c.runner.Query(ctx, "ps", "--format", detectFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve container list: %w", err)
	}

	var detected []v1alpha1.DetectedContainer

	for line := range strings.Lines(out) {
		container, ok := c.parseListing(strings.TrimRight(line, "\r\n"))
		if !ok {
			continue
		}

		detected = append(detected, container)
	}

	c.logger.WithField("count", len(detected)).Debug("detected database containers")

	return detected, nil
}

// ContainerDefaults reads the allow-listed environment of a container and maps
// it to the logical keys "user", "database" and "password" with the engine's
// fallbacks. If the environment cannot be read an empty map is returned.
func (c *Connector) ContainerDefaults(
	ctx context.Context,
	name string,
	engine v1alpha1.Engine,
) (map[string]string, error) {
	err := validator.ValidateContainerName(name)
	if err != nil {
		return nil, err
	}

	profile, ok := c.profiles[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %q", v1alpha1.ErrUnknownEngine, engine)
	}

	out, err := c.runner.Query(ctx, "exec", name, "env")
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"container": name,
			"error":     err,
		}).Debug("container environment unavailable")

		return map[string]string{}, nil
	}

	return profile.Defaults(allowedEnv(out, profile)), nil
}

// --- internals ---

func (c *Connector) parseListing(line string) (v1alpha1.DetectedContainer, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < detectFields {
		return v1alpha1.DetectedContainer{}, false
	}

	var ports []string

	for port := range strings.SplitSeq(fields[2], ",") {
		ports = append(ports, strings.TrimSpace(port))
	}

	engine, ok := c.profiles.Classify(fields[1], ports)
	if !ok {
		return v1alpha1.DetectedContainer{}, false
	}

	return v1alpha1.DetectedContainer{
		Name:   fields[0],
		Engine: engine,
		Image:  fields[1],
		Ports:  ports,
		Status: fields[3],
	}, true
}

func allowedEnv(out string, profile v1alpha1.EngineProfile) map[string]string {
	env := map[string]string{}

	for line := range strings.Lines(out) {
		key, value, found := strings.Cut(strings.TrimRight(line, "\r\n"), "=")
		if !found || !profile.Allows(key) {
			continue
		}

		env[key] = value
	}

	return env
}
