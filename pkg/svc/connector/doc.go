// Package connector talks to database containers through the container
// runtime CLI.
//
// It checks container liveness, detects database containers, reads default
// credentials from a container's environment and opens interactive client
// sessions (psql, mysql, mongosh) with the caller's terminal attached.
package connector
