// Package envvar expands ${VAR} placeholders in saved connection values so
// secrets can stay in the environment instead of the alias file.
package envvar

import (
	"os"
	"regexp"
	"slices"
)

// escape is written as a literal "${".
const escape = "$${"

// pattern matches the escape, ${VAR_NAME} and ${VAR_NAME:-default}.
// Groups: 1 = variable name, 2 = default value.
//
//nolint:gochecknoglobals // compiled once
var pattern = regexp.MustCompile(`\$\$\{|\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// LookupFunc reports the value of an environment variable and whether it is set.
type LookupFunc func(name string) (string, bool)

// Expand replaces placeholders in value using the process environment.
// See ExpandWith.
func Expand(value string) (string, []string) {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith replaces ${VAR} and ${VAR:-default} placeholders in value.
// It also returns the names of variables that were unset and had no default
// syntax; those placeholders expand to "". "$${" is written as a literal "${".
// Text without placeholders is returned unchanged.
func ExpandWith(value string, lookup LookupFunc) (string, []string) {
	if value == "" {
		return value, nil
	}

	var missing []string

	expanded := pattern.ReplaceAllStringFunc(value, func(match string) string {
		if match == escape {
			return escape[1:]
		}

		groups := pattern.FindStringSubmatch(match)

		name := groups[1]
		if envValue, ok := lookup(name); ok {
			return envValue
		}

		if groups[2] != "" {
			return groups[3]
		}

		if !slices.Contains(missing, name) {
			missing = append(missing, name)
		}

		return ""
	})

	return expanded, missing
}
