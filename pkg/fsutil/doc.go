// Package fsutil provides the filesystem helpers used by the alias store:
// home-relative path expansion and atomic file replacement.
package fsutil
