// Package validator guards user-supplied identifiers before they become
// subprocess arguments.
//
// Container names, usernames, database names and option keys are checked
// against allow-list grammars. Values that cannot be validated, such as
// passwords, are never interpolated into a shell; SanitizeForShell exists for
// the rare places where a value must be shown as a shell token.
package validator
