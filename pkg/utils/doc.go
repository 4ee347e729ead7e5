// Package utils provides small packages shared across dbcli:
//
//   - envvar: ${VAR} expansion in saved connection values
//   - logger: logrus setup for diagnostic output
//   - notify: formatted user messages with symbols and colors
package utils
