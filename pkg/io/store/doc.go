// Package store persists connection aliases to a YAML file.
//
// Every mutation is a locked read-modify-write that replaces the file
// atomically, so concurrent invocations never lose each other's updates.
// Descriptors handed out are deep copies.
package store
