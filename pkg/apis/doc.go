// Package apis provides versioned API types for dbcli resources.
//
//   - connection: engines, connection descriptors and the alias file layout
package apis
