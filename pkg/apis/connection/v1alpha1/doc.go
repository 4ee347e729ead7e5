// Package v1alpha1 contains the connection model of dbcli: the database engine
// enumeration, connection descriptors, the alias file layout and the engine
// profiles used for container detection and default-credential lookup.
package v1alpha1
