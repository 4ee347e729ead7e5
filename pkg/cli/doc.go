// Package cli holds dbcli's command-line layer.
//
//   - cli/cmd: cobra commands (root, connect, add, remove, list)
//   - cli/ui/prompt: survey-backed terminal prompts
//   - cli/ui/errorhandler: command execution and error normalization
package cli
