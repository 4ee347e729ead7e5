package v1alpha1

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"
)

// DetectedContainer is a running container recognised as a database by live inspection.
// It is never persisted.
type DetectedContainer struct {
	Name   string
	Engine Engine
	Image  string
	Ports  []string
	Status string
}

// Label renders the container the way selection prompts list it.
func (c DetectedContainer) Label() string {
	return fmt.Sprintf("%s (%s - %s)", c.Name, c.Engine, c.Image)
}

// PublishedPort returns the host port that the runtime publishes for the given
// container port, reading mappings such as "0.0.0.0:5432->5432/tcp".
func (c DetectedContainer) PublishedPort(containerPort string) (uint16, bool) {
	for _, mapping := range c.Ports {
		hostSide, containerSide, published := strings.Cut(mapping, "->")
		if !published {
			continue
		}

		proto, port := nat.SplitProtoPort(strings.TrimSpace(containerSide))

		parsed, err := nat.NewPort(proto, port)
		if err != nil || strconv.Itoa(parsed.Int()) != containerPort {
			continue
		}

		hostPort := hostSide[strings.LastIndex(hostSide, ":")+1:]

		value, err := nat.ParsePort(hostPort)
		if err != nil || value == 0 {
			continue
		}

		return uint16(value), true //nolint:gosec // ParsePort bounds the value to 16 bits
	}

	return 0, false
}
