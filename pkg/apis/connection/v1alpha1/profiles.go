package v1alpha1

import (
	"slices"
	"strings"
)

// Logical keys returned by default-connection lookups.
const (
	DefaultKeyUser     = "user"
	DefaultKeyDatabase = "database"
	DefaultKeyPassword = "password"
)

// EngineProfile is the heuristic data used to recognise an engine's containers
// and to derive default credentials from their environment.
type EngineProfile struct {
	// ImageKeywords are matched as lower-case substrings of the image name.
	ImageKeywords []string `json:"imageKeywords,omitzero" mapstructure:"image-keywords" yaml:"image-keywords,omitempty"`
	// Port is the engine's conventional port, matched as a substring of port mappings.
	Port string `json:"port,omitzero" mapstructure:"port" yaml:"port,omitempty"`
	// AllowedEnv lists the only environment variables read from a container.
	AllowedEnv []string `json:"allowedEnv,omitzero" mapstructure:"allowed-env" yaml:"allowed-env,omitempty"`
	// UserEnv, DatabaseEnv and PasswordEnv are consulted in order; the first present wins.
	UserEnv     []string `json:"userEnv,omitzero"     mapstructure:"user-env"     yaml:"user-env,omitempty"`
	DatabaseEnv []string `json:"databaseEnv,omitzero" mapstructure:"database-env" yaml:"database-env,omitempty"`
	PasswordEnv []string `json:"passwordEnv,omitzero" mapstructure:"password-env" yaml:"password-env,omitempty"`
	// DefaultUser and DefaultDatabase are used when no variable supplies a value.
	// An empty DefaultDatabase means no database default.
	DefaultUser     string `json:"defaultUser,omitzero"     mapstructure:"default-user"     yaml:"default-user,omitempty"`
	DefaultDatabase string `json:"defaultDatabase,omitzero" mapstructure:"default-database" yaml:"default-database,omitempty"`
}

// Profiles maps each engine to its profile.
type Profiles map[Engine]EngineProfile

// DefaultProfiles returns the built-in engine profiles.
func DefaultProfiles() Profiles {
	return Profiles{
		EnginePostgreSQL: {
			ImageKeywords: []string{"postgres", "postgresql"},
			Port:          "5432",
			AllowedEnv: []string{
				"POSTGRES_USER", "POSTGRESQL_USER",
				"POSTGRES_DB", "POSTGRESQL_DATABASE",
				"POSTGRES_PASSWORD", "POSTGRESQL_PASSWORD",
			},
			UserEnv:         []string{"POSTGRES_USER", "POSTGRESQL_USER"},
			DatabaseEnv:     []string{"POSTGRES_DB", "POSTGRESQL_DATABASE"},
			PasswordEnv:     []string{"POSTGRES_PASSWORD", "POSTGRESQL_PASSWORD"},
			DefaultUser:     "postgres",
			DefaultDatabase: "postgres",
		},
		EngineMySQL: {
			ImageKeywords: []string{"mysql", "mariadb"},
			Port:          "3306",
			AllowedEnv: []string{
				"MYSQL_DATABASE", "MYSQL_ROOT_PASSWORD",
				"MYSQL_USER", "MYSQL_PASSWORD",
			},
			DatabaseEnv: []string{"MYSQL_DATABASE"},
			PasswordEnv: []string{"MYSQL_ROOT_PASSWORD"},
			DefaultUser: "root",
		},
		EngineMongoDB: {
			ImageKeywords: []string{"mongo"},
			Port:          "27017",
			AllowedEnv: []string{
				"MONGO_INITDB_ROOT_USERNAME",
				"MONGO_INITDB_DATABASE",
				"MONGO_INITDB_ROOT_PASSWORD",
			},
			UserEnv:         []string{"MONGO_INITDB_ROOT_USERNAME"},
			DatabaseEnv:     []string{"MONGO_INITDB_DATABASE"},
			PasswordEnv:     []string{"MONGO_INITDB_ROOT_PASSWORD"},
			DefaultUser:     "root",
			DefaultDatabase: "admin",
		},
	}
}

// Merge returns a copy of p where every non-empty field of overrides replaces
// the corresponding built-in value.
func (p Profiles) Merge(overrides Profiles) Profiles {
	merged := make(Profiles, len(p))
	for engine, profile := range p {
		merged[engine] = profile
	}

	for engine, override := range overrides {
		base := merged[engine]
		base.ImageKeywords = pick(override.ImageKeywords, base.ImageKeywords)
		base.AllowedEnv = pick(override.AllowedEnv, base.AllowedEnv)
		base.UserEnv = pick(override.UserEnv, base.UserEnv)
		base.DatabaseEnv = pick(override.DatabaseEnv, base.DatabaseEnv)
		base.PasswordEnv = pick(override.PasswordEnv, base.PasswordEnv)

		if override.Port != "" {
			base.Port = override.Port
		}

		if override.DefaultUser != "" {
			base.DefaultUser = override.DefaultUser
		}

		if override.DefaultDatabase != "" {
			base.DefaultDatabase = override.DefaultDatabase
		}

		merged[engine] = base
	}

	return merged
}

// Classify determines the engine of a container, first from its image name and
// then from the conventional port appearing in its port mappings.
func (p Profiles) Classify(image string, ports []string) (Engine, bool) {
	imageLower := strings.ToLower(image)

	for _, engine := range ValidEngines() {
		for _, keyword := range p[engine].ImageKeywords {
			if keyword != "" && strings.Contains(imageLower, strings.ToLower(keyword)) {
				return engine, true
			}
		}
	}

	for _, port := range ports {
		for _, engine := range ValidEngines() {
			conventional := p[engine].Port
			if conventional != "" && strings.Contains(port, conventional) {
				return engine, true
			}
		}
	}

	return "", false
}

// Defaults maps an already allow-listed environment onto the logical keys
// user, database and password, applying the profile fallbacks.
func (profile EngineProfile) Defaults(env map[string]string) map[string]string {
	defaults := make(map[string]string, 3) //nolint:mnd // user, database, password

	if user, ok := firstPresent(env, profile.UserEnv); ok {
		defaults[DefaultKeyUser] = user
	} else if profile.DefaultUser != "" {
		defaults[DefaultKeyUser] = profile.DefaultUser
	}

	if database, ok := firstPresent(env, profile.DatabaseEnv); ok {
		defaults[DefaultKeyDatabase] = database
	} else if profile.DefaultDatabase != "" {
		defaults[DefaultKeyDatabase] = profile.DefaultDatabase
	}

	if password, ok := firstPresent(env, profile.PasswordEnv); ok {
		defaults[DefaultKeyPassword] = password
	}

	return defaults
}

// Allows reports whether the environment variable may be read from a container.
func (profile EngineProfile) Allows(name string) bool {
	return slices.Contains(profile.AllowedEnv, name)
}

func firstPresent(env map[string]string, keys []string) (string, bool) {
	for _, key := range keys {
		if value, ok := env[key]; ok {
			return value, true
		}
	}

	return "", false
}

func pick(override, base []string) []string {
	if len(override) > 0 {
		return slices.Clone(override)
	}

	return base
}
