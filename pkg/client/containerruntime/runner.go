package containerruntime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultBinary is the runtime CLI used when none is configured.
const DefaultBinary = "docker"

// ErrRuntime is returned when the runtime CLI cannot be started or exits non-zero.
var ErrRuntime = errors.New("container runtime error")

// Streams are the standard streams attached to a session.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Runner executes runtime CLI invocations.
type Runner interface {
	// Query runs the runtime with captured output and returns stdout.
	Query(ctx context.Context, args ...string) (string, error)
	// Run runs the runtime attached to streams and blocks until it exits.
	Run(ctx context.Context, streams Streams, args ...string) error
	// Binary returns the runtime executable name.
	Binary() string
}

// ExecRunner is a Runner backed by os/exec.
type ExecRunner struct {
	binary string
	logger logrus.FieldLogger
}

// NewExecRunner creates a runner for binary. An empty binary selects DefaultBinary;
// a nil logger discards debug output.
func NewExecRunner(binary string, logger logrus.FieldLogger) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}

	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &ExecRunner{binary: binary, logger: logger}
}

// Binary returns the runtime executable name.
func (r *ExecRunner) Binary() string {
	return r.binary
}

// Query runs the runtime with captured stdout and stderr. A non-zero exit is an
// ErrRuntime carrying the trimmed stderr.
func (r *ExecRunner) Query(ctx context.Context, args ...string) (string, error) {
	r.log("query", args)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return stdout.String(), fmt.Errorf("%w: %s %s: %w: %s", ErrRuntime, r.binary, subcommand(args), err, detail)
		}

		return stdout.String(), fmt.Errorf("%w: %s %s: %w", ErrRuntime, r.binary, subcommand(args), err)
	}

	return stdout.String(), nil
}

// Run runs the runtime with streams attached, blocking until the child exits.
func (r *ExecRunner) Run(ctx context.Context, streams Streams, args ...string) error {
	r.log("run", args)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.ErrOut

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRuntime, r.binary, subcommand(args), err)
	}

	return nil
}

// RedactArgs returns a copy of args with password values masked. Both the
// attached form "-psecret" and the separated forms "-p secret" and
// "--password secret" are recognised.
func RedactArgs(args []string) []string {
	redacted := make([]string, len(args))
	maskNext := false

	for idx, arg := range args {
		switch {
		case maskNext:
			redacted[idx] = "***"
			maskNext = false
		case arg == "-p" || arg == "--password":
			redacted[idx] = arg
			maskNext = true
		case strings.HasPrefix(arg, "--password="):
			redacted[idx] = "--password=***"
		case strings.HasPrefix(arg, "-p") && !strings.HasPrefix(arg, "--"):
			redacted[idx] = "-p***"
		default:
			redacted[idx] = arg
		}
	}

	return redacted
}

// --- internals ---

func (r *ExecRunner) log(mode string, args []string) {
	r.logger.WithFields(logrus.Fields{
		"runtime": r.binary,
		"mode":    mode,
		"args":    strings.Join(RedactArgs(args), " "),
	}).Debug("invoking container runtime")
}

func subcommand(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
