package v1alpha1

import "errors"

// ErrUnknownEngine is returned when a database engine name cannot be parsed.
var ErrUnknownEngine = errors.New("unknown database type")

// ErrMissingField is returned when a descriptor lacks a mandatory field.
var ErrMissingField = errors.New("missing required field")
