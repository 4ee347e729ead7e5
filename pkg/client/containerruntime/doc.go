// Package containerruntime runs the container runtime CLI (docker, podman).
//
// Queries capture output for parsing; sessions attach the caller's terminal
// and block until the child exits. Arguments are always passed as discrete
// argv entries, never through a shell.
package containerruntime
