// Package io groups dbcli's configuration input and output.
//
// Subpackages:
//   - config-manager: tool settings from file, environment and flags (viper)
//   - store: the alias file of saved connections
//   - validator: identifier grammars and shell quoting
package io
