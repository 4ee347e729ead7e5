// Package cmd provides the command-line interface for dbcli.
//
// The root command carries the global --runtime, --config and --log-level
// flags and the subcommands:
//   - connect: open a database client inside a container
//   - add: save a connection from flags, prompts or detected containers
//   - remove: delete a saved connection
//   - list: show saved connections with their container status
package cmd
