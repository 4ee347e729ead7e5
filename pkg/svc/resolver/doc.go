// Package resolver builds connection descriptors by prompting the user,
// optionally seeded from detected database containers and their environment.
//
// The resolver never persists what it builds; callers decide what to store.
package resolver
