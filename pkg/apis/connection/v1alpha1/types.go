package v1alpha1

import (
	"fmt"
	"maps"
	"slices"
)

// SchemaVersion is the alias file schema version written by this release.
const SchemaVersion = "1.0.0"

// --- Core Types ---

// Descriptor holds everything needed to open a client session inside a container.
type Descriptor struct {
	Engine    Engine            `json:"db_type"            yaml:"db_type"`
	Container string            `json:"container"          yaml:"container"`
	User      string            `json:"user"               yaml:"user"`
	Password  *string           `json:"password,omitzero"  yaml:"password,omitempty"`
	Database  *string           `json:"database,omitzero"  yaml:"database,omitempty"`
	Port      *uint16           `json:"port,omitzero"      yaml:"port,omitempty"`
	Options   map[string]string `json:"options,omitzero"   yaml:"options,omitempty"`
}

// AliasFile is the on-disk layout of the alias store.
type AliasFile struct {
	Version     string                `json:"version"     yaml:"version"`
	Connections map[string]Descriptor `json:"connections" yaml:"connections"`
}

// NewAliasFile returns an empty alias file tagged with the current schema version.
func NewAliasFile() *AliasFile {
	return &AliasFile{
		Version:     SchemaVersion,
		Connections: map[string]Descriptor{},
	}
}

// Names returns the alias names in sorted order.
func (f *AliasFile) Names() []string {
	return slices.Sorted(maps.Keys(f.Connections))
}

// --- Descriptor helpers ---

// CheckRequired verifies the fields every engine needs before a session can be built.
// MongoDB permits unauthenticated sessions, so an empty user is accepted there.
func (d *Descriptor) CheckRequired() error {
	if !d.Engine.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, d.Engine)
	}

	if d.Container == "" {
		return fmt.Errorf("%w: container", ErrMissingField)
	}

	if d.User == "" && d.Engine != EngineMongoDB {
		return fmt.Errorf("%w: user", ErrMissingField)
	}

	return nil
}

// DatabaseOrDash returns the database name, or "-" when none is set.
func (d *Descriptor) DatabaseOrDash() string {
	if d.Database == nil || *d.Database == "" {
		return "-"
	}

	return *d.Database
}

// SortedOptionKeys returns the option keys in a stable order.
func (d *Descriptor) SortedOptionKeys() []string {
	return slices.Sorted(maps.Keys(d.Options))
}

// OptionalString returns nil for an empty string and a pointer to value otherwise.
func OptionalString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

// OptionalPort returns nil for zero and a pointer to port otherwise.
func OptionalPort(port uint16) *uint16 {
	if port == 0 {
		return nil
	}

	return &port
}
