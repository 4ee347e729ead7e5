package validator

import (
	"errors"
	"fmt"
	"regexp"

	"al.essio.dev/pkg/shellescape"
)

// Length limits for validated identifiers.
const (
	MaxContainerNameLength = 255
	MaxUsernameLength      = 64
	MaxDatabaseNameLength  = 64
)

// Identifier grammars. Option keys follow UsernamePattern.
const (
	ContainerNamePattern = `^[A-Za-z0-9][A-Za-z0-9_.-]*$`
	UsernamePattern      = `^[A-Za-z][A-Za-z0-9_.-]*$`
	DatabaseNamePattern  = `^[A-Za-z][A-Za-z0-9_]*$`
)

// ErrValidation is the parent of every validation failure.
var ErrValidation = errors.New("validation error")

var (
	// ErrInvalidContainerName is returned when a container name does not match the allowed grammar.
	ErrInvalidContainerName = fmt.Errorf(
		"%w: invalid container name, only alphanumeric characters, dots, hyphens, and underscores are allowed",
		ErrValidation,
	)
	// ErrContainerNameTooLong is returned when a container name exceeds MaxContainerNameLength.
	ErrContainerNameTooLong = fmt.Errorf(
		"%w: container name is too long (max %d characters)", ErrValidation, MaxContainerNameLength,
	)
	// ErrInvalidUsername is returned when a username does not match the allowed grammar.
	ErrInvalidUsername = fmt.Errorf(
		"%w: invalid username, must start with a letter and contain only alphanumeric characters, "+
			"dots, hyphens, and underscores",
		ErrValidation,
	)
	// ErrUsernameTooLong is returned when a username exceeds MaxUsernameLength.
	ErrUsernameTooLong = fmt.Errorf(
		"%w: username is too long (max %d characters)", ErrValidation, MaxUsernameLength,
	)
	// ErrInvalidDatabaseName is returned when a database name does not match the allowed grammar.
	ErrInvalidDatabaseName = fmt.Errorf(
		"%w: invalid database name, must start with a letter and contain only alphanumeric characters "+
			"and underscores",
		ErrValidation,
	)
	// ErrDatabaseNameTooLong is returned when a database name exceeds MaxDatabaseNameLength.
	ErrDatabaseNameTooLong = fmt.Errorf(
		"%w: database name is too long (max %d characters)", ErrValidation, MaxDatabaseNameLength,
	)
	// ErrInvalidOptionKey is returned when a client option key could be read as something other than a long flag.
	ErrInvalidOptionKey = fmt.Errorf(
		"%w: invalid option key, must start with a letter and contain only alphanumeric characters, "+
			"dots, hyphens, and underscores",
		ErrValidation,
	)
	// ErrOptionKeyTooLong is returned when a client option key exceeds MaxUsernameLength.
	ErrOptionKeyTooLong = fmt.Errorf(
		"%w: option key is too long (max %d characters)", ErrValidation, MaxUsernameLength,
	)
)

//nolint:gochecknoglobals // compiled once
var (
	containerNamePattern = regexp.MustCompile(ContainerNamePattern)
	usernamePattern      = regexp.MustCompile(UsernamePattern)
	databaseNamePattern  = regexp.MustCompile(DatabaseNamePattern)
)

// ValidateContainerName checks a container name against the runtime-safe grammar.
func ValidateContainerName(name string) error {
	return check(name, containerNamePattern, MaxContainerNameLength,
		ErrInvalidContainerName, ErrContainerNameTooLong)
}

// ValidateUsername checks a database username. Usernames must start with a letter.
func ValidateUsername(name string) error {
	return check(name, usernamePattern, MaxUsernameLength,
		ErrInvalidUsername, ErrUsernameTooLong)
}

// ValidateDatabaseName checks a database name. It is stricter than a username
// because some clients take it unquoted.
func ValidateDatabaseName(name string) error {
	return check(name, databaseNamePattern, MaxDatabaseNameLength,
		ErrInvalidDatabaseName, ErrDatabaseNameTooLong)
}

// ValidateOptionKey checks a client option key that is emitted as "--<key>".
// Keys share the username grammar and length limit.
func ValidateOptionKey(key string) error {
	err := check(key, usernamePattern, MaxUsernameLength, ErrInvalidOptionKey, ErrOptionKeyTooLong)
	if err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}

	return nil
}

// SanitizeForShell returns input as a single POSIX shell token. Safe tokens are
// returned unchanged; anything else is single-quoted with embedded quotes escaped.
func SanitizeForShell(input string) string {
	return shellescape.Quote(input)
}

func check(value string, pattern *regexp.Regexp, maxLength int, invalid, tooLong error) error {
	if !pattern.MatchString(value) {
		return invalid
	}

	if len(value) > maxLength {
		return tooLong
	}

	return nil
}
