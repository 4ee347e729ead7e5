// Package prompt asks the user questions on the terminal using survey.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when stdin is not a terminal.
	ErrNotTerminal = errors.New("interactive prompts require a terminal")
	// ErrInterrupted is returned when the user interrupts a prompt.
	ErrInterrupted = errors.New("prompt interrupted")
	// ErrNoOptions is returned by Select when there is nothing to choose.
	ErrNoOptions = errors.New("no options to select from")
)

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
}

// Survey is a terminal prompter.
type Survey struct {
	in     terminal.FileReader
	out    terminal.FileWriter
	errOut io.Writer
}

// NewSurvey creates a prompter on the given terminal streams.
func NewSurvey(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Survey {
	return &Survey{in: in, out: out, errOut: errOut}
}

// NewStdioSurvey creates a prompter on the process's standard streams.
func NewStdioSurvey() *Survey {
	return NewSurvey(os.Stdin, os.Stdout, os.Stderr)
}

// Input asks for free text. An empty answer yields defaultValue.
func (s *Survey) Input(message, defaultValue string) (string, error) {
	var answer string

	err := s.ask(&survey.Input{Message: message, Default: defaultValue}, &answer)

	return answer, err
}

// Required asks for free text and repeats the question until it is non-empty.
func (s *Survey) Required(message, defaultValue string) (string, error) {
	var answer string

	err := s.ask(&survey.Input{Message: message, Default: defaultValue}, &answer, survey.WithValidator(survey.Required))

	return answer, err
}

// Password asks for text without echoing it.
func (s *Survey) Password(message string) (string, error) {
	var answer string

	err := s.ask(&survey.Password{Message: message}, &answer)

	return answer, err
}

// Select asks the user to choose one of options and returns its index.
func (s *Survey) Select(message string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoOptions, message)
	}

	question := &survey.Select{Message: message, Options: options}
	if defaultIndex >= 0 && defaultIndex < len(options) {
		question.Default = options[defaultIndex]
	}

	var index int

	err := s.ask(question, &index)

	return index, err
}

// --- internals ---

func (s *Survey) ask(question survey.Prompt, answer any, opts ...survey.AskOpt) error {
	if !IsTTY() {
		return ErrNotTerminal
	}

	opts = append(opts, survey.WithStdio(s.in, s.out, s.errOut))

	err := survey.AskOne(question, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}

	if err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	return nil
}
