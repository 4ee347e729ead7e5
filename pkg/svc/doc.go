// Package svc provides the service layer between the commands and the
// container runtime.
//
// Subpackages:
//   - connector: container liveness, detection, default credentials and
//     client sessions
//   - resolver: prompt-driven construction of new connections
package svc
