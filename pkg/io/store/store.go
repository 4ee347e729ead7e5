package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/adrg/xdg"
	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/fsutil"
	"github.com/gofrs/flock"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRelativePath is the alias file location below the user config directory.
	DefaultRelativePath = "dbcli/config.yaml"

	dirPermissions  = 0o700
	filePermissions = 0o600
	lockSuffix      = ".lock"
)

var (
	// ErrAliasNotFound is returned when an alias is not stored.
	ErrAliasNotFound = errors.New("alias not found")
	// ErrConfig is returned when the alias file cannot be read, parsed or written.
	ErrConfig = errors.New("configuration error")
	// ErrEmptyAlias is returned when an alias name is empty.
	ErrEmptyAlias = errors.New("alias name must not be empty")
)

// Store reads and writes the alias file.
type Store struct {
	path string
	lock *flock.Flock
}

// DefaultPath returns the alias file path under $XDG_CONFIG_HOME, creating the
// parent directory.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(DefaultRelativePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to resolve config directory: %w", ErrConfig, err)
	}

	return path, nil
}

// New returns a store for the alias file at path. An empty path selects
// DefaultPath; a leading ~ is expanded.
func New(path string) (*Store, error) {
	var err error

	if path == "" {
		path, err = DefaultPath()
	} else {
		path, err = fsutil.ExpandHomePath(path)
	}

	if err != nil {
		return nil, err
	}

	return &Store{
		path: path,
		lock: flock.New(path + lockSuffix),
	}, nil
}

// Path returns the alias file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the alias file, creating an empty one on first use.
func (s *Store) Load() (*v1alpha1.AliasFile, error) {
	var file *v1alpha1.AliasFile

	err := s.withLock(func() error {
		var err error

		file, err = s.loadOrCreate()

		return err
	})

	return file, err
}

// Save replaces the alias file with file.
func (s *Store) Save(file *v1alpha1.AliasFile) error {
	return s.withLock(func() error {
		return s.write(file)
	})
}

// Get returns a copy of the descriptor stored under alias.
func (s *Store) Get(alias string) (v1alpha1.Descriptor, error) {
	file, err := s.Load()
	if err != nil {
		return v1alpha1.Descriptor{}, err
	}

	descriptor, ok := file.Connections[alias]
	if !ok {
		return v1alpha1.Descriptor{}, fmt.Errorf("%w: %s", ErrAliasNotFound, alias)
	}

	return deepCopy(descriptor)
}

// List returns a copy of every stored descriptor keyed by alias.
func (s *Store) List() (map[string]v1alpha1.Descriptor, error) {
	file, err := s.Load()
	if err != nil {
		return nil, err
	}

	connections := make(map[string]v1alpha1.Descriptor, len(file.Connections))

	for alias, descriptor := range file.Connections {
		connections[alias], err = deepCopy(descriptor)
		if err != nil {
			return nil, err
		}
	}

	return connections, nil
}

// Add stores descriptor under alias, replacing any existing entry.
func (s *Store) Add(alias string, descriptor v1alpha1.Descriptor) error {
	if alias == "" {
		return ErrEmptyAlias
	}

	stored, err := deepCopy(descriptor)
	if err != nil {
		return err
	}

	return s.mutate(func(file *v1alpha1.AliasFile) error {
		file.Connections[alias] = stored

		return nil
	})
}

// Remove deletes alias. Removing an alias that is not stored fails with ErrAliasNotFound.
func (s *Store) Remove(alias string) error {
	return s.mutate(func(file *v1alpha1.AliasFile) error {
		if _, ok := file.Connections[alias]; !ok {
			return fmt.Errorf("%w: %s", ErrAliasNotFound, alias)
		}

		delete(file.Connections, alias)

		return nil
	})
}

// --- internals ---

func (s *Store) mutate(change func(file *v1alpha1.AliasFile) error) error {
	return s.withLock(func() error {
		file, err := s.loadOrCreate()
		if err != nil {
			return err
		}

		err = change(file)
		if err != nil {
			return err
		}

		return s.write(file)
	})
}

func (s *Store) withLock(fn func() error) error {
	err := os.MkdirAll(filepath.Dir(s.path), dirPermissions)
	if err != nil {
		return fmt.Errorf("%w: failed to create config directory: %w", ErrConfig, err)
	}

	err = s.lock.Lock()
	if err != nil {
		return fmt.Errorf("%w: failed to lock %s: %w", ErrConfig, s.path, err)
	}

	defer func() {
		_ = s.lock.Unlock()
	}()

	return fn()
}

func (s *Store) loadOrCreate() (*v1alpha1.AliasFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		file := v1alpha1.NewAliasFile()

		return file, s.write(file)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrConfig, s.path, err)
	}

	file := v1alpha1.NewAliasFile()

	err = yaml.Unmarshal(data, file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrConfig, s.path, err)
	}

	err = checkVersion(file.Version)
	if err != nil {
		return nil, err
	}

	if file.Version == "" {
		file.Version = v1alpha1.SchemaVersion
	}

	if file.Connections == nil {
		file.Connections = map[string]v1alpha1.Descriptor{}
	}

	err = checkEngines(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, s.path, err)
	}

	return file, nil
}

func (s *Store) write(file *v1alpha1.AliasFile) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("%w: failed to encode aliases: %w", ErrConfig, err)
	}

	err = fsutil.WriteFileAtomic(s.path, data, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}

func checkVersion(version string) error {
	if version == "" {
		return nil
	}

	fileVersion, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: invalid schema version %q: %w", ErrConfig, version, err)
	}

	supported := semver.MustParse(v1alpha1.SchemaVersion)
	if fileVersion.Major() > supported.Major() {
		return fmt.Errorf(
			"%w: alias file schema %s is newer than supported %s",
			ErrConfig, fileVersion, supported,
		)
	}

	return nil
}

// checkEngines rejects entries whose db_type is missing, which the YAML
// decoder leaves as the zero Engine.
func checkEngines(file *v1alpha1.AliasFile) error {
	for _, alias := range file.Names() {
		engine := file.Connections[alias].Engine
		if !engine.IsValid() {
			return fmt.Errorf("connection '%s': %w: %q", alias, v1alpha1.ErrUnknownEngine, engine)
		}
	}

	return nil
}

func deepCopy(descriptor v1alpha1.Descriptor) (v1alpha1.Descriptor, error) {
	var clone v1alpha1.Descriptor

	err := copier.CopyWithOption(&clone, descriptor, copier.Option{DeepCopy: true})
	if err != nil {
		return v1alpha1.Descriptor{}, fmt.Errorf("%w: failed to copy descriptor: %w", ErrConfig, err)
	}

	if len(descriptor.Options) == 0 {
		clone.Options = nil
	}

	return clone, nil
}
