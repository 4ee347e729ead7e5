// Package errorhandler runs cobra commands and turns their failures into a
// single user-facing error with an optional hint.
package errorhandler

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
)

// cobraErrPrefix is the prefix cobra writes before a returned error.
const cobraErrPrefix = "Error: "

// Hint attaches advice to every error that matches Target via errors.Is.
type Hint struct {
	Target error
	Text   string
}

// Executor runs a cobra command. Command output on stderr passes through
// untouched; only cobra's trailing error report is captured and normalized.
type Executor struct {
	normalizer DefaultNormalizer
	hints      []Hint
}

// NewExecutor constructs an Executor that annotates errors with hints.
func NewExecutor(hints ...Hint) *Executor {
	return &Executor{normalizer: DefaultNormalizer{}, hints: hints}
}

// Execute runs cmd. It returns nil on success or a *CommandError that keeps
// the original error in its chain.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	originalErrWriter := cmd.ErrOrStderr()
	capture := &reportCapture{passthrough: originalErrWriter}

	cmd.SetErr(capture)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(capture.report()),
		cause:   err,
		hint:    e.hintFor(err),
	}
}

func (e *Executor) hintFor(err error) string {
	for _, hint := range e.hints {
		if hint.Target != nil && errors.Is(err, hint.Target) {
			return hint.Text
		}
	}

	return ""
}

// CommandError is a command failure with cobra's normalized error report.
type CommandError struct {
	message string
	cause   error
	hint    string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Hint returns advice for the user, or "" when none applies.
func (e *CommandError) Hint() string {
	if e == nil {
		return ""
	}

	return e.hint
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer strips cobra's "Error:" prefix and surrounding whitespace.
type DefaultNormalizer struct{}

// Normalize keeps following lines such as usage hints intact.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), cobraErrPrefix)

	return strings.Join(lines, "\n")
}

// --- internals ---

// reportCapture forwards writes until cobra starts its error report, then
// buffers everything from that write on.
type reportCapture struct {
	passthrough io.Writer
	buf         bytes.Buffer
	capturing   bool
	mu          sync.Mutex
}

func (c *reportCapture) Write(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.capturing && bytes.HasPrefix(data, []byte(cobraErrPrefix)) {
		c.capturing = true
	}

	if c.capturing {
		return c.buf.Write(data)
	}

	return c.passthrough.Write(data) //nolint:wrapcheck // transparent writer
}

func (c *reportCapture) report() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buf.String()
}
