// Package client holds wrappers around external tools dbcli drives.
//
//   - containerruntime: runs the docker or podman CLI for queries and
//     terminal-attached client sessions
package client
