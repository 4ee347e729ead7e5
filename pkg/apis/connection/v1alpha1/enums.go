package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// --- Enum Interface ---

// EnumValuer is implemented by string-based enum types to provide their valid values.
type EnumValuer interface {
	// ValidValues returns all valid string values for this enum type.
	ValidValues() []string
}

// --- Engine Types ---

// Engine defines the database engine a connection targets.
type Engine string

const (
	// EnginePostgreSQL is the PostgreSQL engine, reached through psql.
	EnginePostgreSQL Engine = "PostgreSQL"
	// EngineMySQL is the MySQL (and MariaDB) engine, reached through mysql.
	EngineMySQL Engine = "MySQL"
	// EngineMongoDB is the MongoDB engine, reached through mongosh.
	EngineMongoDB Engine = "MongoDB"
)

// engineAliases maps lower-case accepted names to their engine.
//
//nolint:gochecknoglobals // static lookup table
var engineAliases = map[string]Engine{
	"postgresql": EnginePostgreSQL,
	"postgres":   EnginePostgreSQL,
	"psql":       EnginePostgreSQL,
	"mysql":      EngineMySQL,
	"mariadb":    EngineMySQL,
	"mongodb":    EngineMongoDB,
	"mongo":      EngineMongoDB,
}

// ValidEngines returns the supported engines in their canonical display order.
func ValidEngines() []Engine {
	return []Engine{EnginePostgreSQL, EngineMySQL, EngineMongoDB}
}

// ParseEngine resolves an engine from its name or one of its aliases, ignoring case.
func ParseEngine(value string) (Engine, error) {
	engine, ok := engineAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEngine, value)
	}

	return engine, nil
}

// Set for Engine (pflag.Value interface).
func (e *Engine) Set(value string) error {
	engine, err := ParseEngine(value)
	if err != nil {
		return fmt.Errorf(
			"%w (valid options: %s)",
			err,
			strings.Join(e.ValidValues(), ", "),
		)
	}

	*e = engine

	return nil
}

// IsValid checks if the engine value is supported.
func (e *Engine) IsValid() bool {
	return slices.Contains(ValidEngines(), *e)
}

// String returns the string representation of the Engine.
func (e *Engine) String() string {
	return string(*e)
}

// Type returns the type of the Engine.
func (e *Engine) Type() string {
	return "Engine"
}

// ValidValues returns all valid Engine values as strings.
func (e *Engine) ValidValues() []string {
	return []string{
		string(EnginePostgreSQL),
		string(EngineMySQL),
		string(EngineMongoDB),
	}
}

// Client returns the client binary executed inside the container.
func (e Engine) Client() string {
	switch e {
	case EnginePostgreSQL:
		return "psql"
	case EngineMySQL:
		return "mysql"
	case EngineMongoDB:
		return "mongosh"
	default:
		return ""
	}
}

// DefaultUser returns the username proposed when prompting for a new connection.
func (e Engine) DefaultUser() string {
	switch e {
	case EnginePostgreSQL:
		return "postgres"
	case EngineMySQL:
		return "root"
	case EngineMongoDB:
		return "mongo"
	default:
		return ""
	}
}
