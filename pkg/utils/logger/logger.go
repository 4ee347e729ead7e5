// Package logger builds the diagnostic logger used across dbcli.
//
// User-facing output goes through notify; this logger is for debugging
// runtime invocations and is quiet by default.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// ErrInvalidLevel is returned for an unknown log level name.
var ErrInvalidLevel = errors.New("invalid log level")

// New returns a text logger at level writing to writer. An empty level selects
// DefaultLevel and a nil writer selects os.Stderr.
func New(level string, writer io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (valid options: %s)", ErrInvalidLevel, level, ValidLevels())
	}

	if writer == nil {
		writer = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(writer)
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	return log, nil
}

// ValidLevels returns the accepted level names, most verbose last.
func ValidLevels() string {
	return "panic, fatal, error, warn, info, debug, trace"
}
