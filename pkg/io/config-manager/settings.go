package configmanager

import (
	"fmt"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
)

// Settings are the tool-level options of dbcli.
type Settings struct {
	// Runtime is the container runtime CLI, e.g. docker or podman.
	Runtime string `json:"runtime,omitzero" mapstructure:"runtime" yaml:"runtime,omitempty"`
	// AliasFile overrides the alias file location.
	AliasFile string `json:"config,omitzero" mapstructure:"config" yaml:"config,omitempty"`
	// LogLevel is the diagnostic log level.
	LogLevel string `json:"logLevel,omitzero" mapstructure:"log-level" yaml:"log-level,omitempty"`
	// Engines overrides built-in engine profiles, keyed by engine name or alias.
	Engines map[string]v1alpha1.EngineProfile `json:"engines,omitzero" mapstructure:"engines" yaml:"engines,omitempty"`
}

// Profiles returns the built-in engine profiles with the configured overrides applied.
func (s *Settings) Profiles() (v1alpha1.Profiles, error) {
	overrides := make(v1alpha1.Profiles, len(s.Engines))

	for name, profile := range s.Engines {
		engine, err := v1alpha1.ParseEngine(name)
		if err != nil {
			return nil, fmt.Errorf("invalid engine override: %w", err)
		}

		overrides[engine] = profile
	}

	return v1alpha1.DefaultProfiles().Merge(overrides), nil
}
