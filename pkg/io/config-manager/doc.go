// Package configmanager loads dbcli's own settings with viper.
//
// Settings come, in increasing precedence, from built-in defaults, an optional
// settings file, DBCLI_* environment variables and command-line flags.
package configmanager
