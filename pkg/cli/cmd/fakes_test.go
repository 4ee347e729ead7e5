package cmd_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	"github.com/devantler-tech/dbcli/pkg/di"
	"github.com/devantler-tech/dbcli/pkg/svc/resolver"
	"github.com/samber/do/v2"
)

// fakeRunner answers the runtime queries issued by the connector and records
// interactive sessions instead of starting them.
type fakeRunner struct {
	mu       sync.Mutex
	running  []string
	listing  string
	env      map[string]string
	queryErr error
	runErr   error
	queries  int
	runs     [][]string
}

func (f *fakeRunner) Query(_ context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries++

	if f.queryErr != nil {
		return "", f.queryErr
	}

	switch {
	case slices.Equal(args, []string{"ps", "--format", "{{.Names}}"}):
		return strings.Join(f.running, "\n") + "\n", nil
	case len(args) == 3 && args[0] == "ps":
		return f.listing, nil
	case len(args) == 3 && args[0] == "exec" && args[2] == "env":
		env, ok := f.env[args[1]]
		if !ok {
			return "", fmt.Errorf("%w: no such container: %s", containerruntime.ErrRuntime, args[1])
		}

		return env, nil
	default:
		return "", fmt.Errorf("%w: unexpected query %v", containerruntime.ErrRuntime, args)
	}
}

func (f *fakeRunner) Run(_ context.Context, _ containerruntime.Streams, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.runs = append(f.runs, args)

	return f.runErr
}

func (f *fakeRunner) Binary() string {
	return containerruntime.DefaultBinary
}

func (f *fakeRunner) sessions() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.runs)
}

// scriptedPrompter replays answers in order. An empty string accepts the
// prompt's default; Select answers are ints.
type scriptedPrompter struct {
	answers []any
	asked   []string
}

func (p *scriptedPrompter) Input(message, defaultValue string) (string, error) {
	return p.text(message, defaultValue)
}

func (p *scriptedPrompter) Required(message, defaultValue string) (string, error) {
	return p.text(message, defaultValue)
}

func (p *scriptedPrompter) Password(message string) (string, error) {
	return p.text(message, "")
}

func (p *scriptedPrompter) Select(message string, _ []string, _ int) (int, error) {
	answer, err := p.next(message)
	if err != nil {
		return 0, err
	}

	index, ok := answer.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %q expects an int answer", errScript, message)
	}

	return index, nil
}

func (p *scriptedPrompter) text(message, defaultValue string) (string, error) {
	answer, err := p.next(message)
	if err != nil {
		return "", err
	}

	text, ok := answer.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q expects a string answer", errScript, message)
	}

	if text == "" {
		return defaultValue, nil
	}

	return text, nil
}

func (p *scriptedPrompter) next(message string) (any, error) {
	p.asked = append(p.asked, message)

	if len(p.answers) == 0 {
		return nil, fmt.Errorf("%w: no answer left for %q", errScript, message)
	}

	answer := p.answers[0]
	p.answers = p.answers[1:]

	return answer, nil
}

// newTestRuntime wires the production modules around a fake runner and prompter.
func newTestRuntime(runner *fakeRunner, prompter *scriptedPrompter) *di.Runtime {
	return di.New(
		di.ProvideSettings,
		di.ProvideLogger,
		func(i di.Injector) error {
			do.ProvideValue[containerruntime.Runner](i, runner)

			return nil
		},
		di.ProvideStore,
		di.ProvideConnector,
		func(i di.Injector) error {
			do.ProvideValue[resolver.Prompter](i, prompter)

			return nil
		},
		di.ProvideResolver,
	)
}
