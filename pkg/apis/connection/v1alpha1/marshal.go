package v1alpha1

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML writes the engine as its canonical name.
func (e Engine) MarshalYAML() (any, error) {
	return string(e), nil
}

// UnmarshalYAML accepts the canonical name or any alias understood by ParseEngine,
// so hand-edited alias files may say "postgres" or "mongo".
func (e *Engine) UnmarshalYAML(node *yaml.Node) error {
	var raw string

	err := node.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decode engine: %w", err)
	}

	engine, err := ParseEngine(raw)
	if err != nil {
		return err
	}

	*e = engine

	return nil
}
