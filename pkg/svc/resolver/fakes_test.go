package resolver_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
)

var errInterrupt = errors.New("interrupt")

// step is one scripted prompt answer.
type step struct {
	method  string
	message string
	// text answers Input, Required and Password; acceptDefault answers with the offered default.
	text          string
	acceptDefault bool
	index         int
	err           error
}

// call records what a prompt offered.
type call struct {
	method       string
	message      string
	defaultValue string
	options      []string
}

// scriptedPrompter replays steps in order and fails the test on any mismatch.
type scriptedPrompter struct {
	t     *testing.T
	steps []step
	calls []call
}

func newScriptedPrompter(t *testing.T, steps ...step) *scriptedPrompter {
	t.Helper()

	return &scriptedPrompter{t: t, steps: steps}
}

func (p *scriptedPrompter) Input(message, defaultValue string) (string, error) {
	return p.text("Input", message, defaultValue)
}

func (p *scriptedPrompter) Required(message, defaultValue string) (string, error) {
	return p.text("Required", message, defaultValue)
}

func (p *scriptedPrompter) Password(message string) (string, error) {
	return p.text("Password", message, "")
}

func (p *scriptedPrompter) Select(message string, options []string, defaultIndex int) (int, error) {
	p.calls = append(p.calls, call{
		method: "Select", message: message, defaultValue: fmt.Sprint(defaultIndex), options: options,
	})

	next := p.next("Select", message)

	return next.index, next.err
}

func (p *scriptedPrompter) done() {
	p.t.Helper()

	if len(p.steps) != 0 {
		p.t.Fatalf("%d scripted prompts were never asked, next: %q", len(p.steps), p.steps[0].message)
	}
}

func (p *scriptedPrompter) text(method, message, defaultValue string) (string, error) {
	p.calls = append(p.calls, call{method: method, message: message, defaultValue: defaultValue})

	next := p.next(method, message)
	if next.acceptDefault {
		return defaultValue, next.err
	}

	return next.text, next.err
}

func (p *scriptedPrompter) next(method, message string) step {
	p.t.Helper()

	if len(p.steps) == 0 {
		p.t.Fatalf("unexpected prompt %s(%q)", method, message)
	}

	next := p.steps[0]
	p.steps = p.steps[1:]

	if next.method != method || next.message != message {
		p.t.Fatalf("expected prompt %s(%q), got %s(%q)", next.method, next.message, method, message)
	}

	return next
}

func (p *scriptedPrompter) offered(message string) call {
	p.t.Helper()

	for _, recorded := range p.calls {
		if recorded.message == message {
			return recorded
		}
	}

	p.t.Fatalf("prompt %q was never asked", message)

	return call{}
}

// fakeDetector returns canned detection results.
type fakeDetector struct {
	detected    []v1alpha1.DetectedContainer
	detectErr   error
	defaults    map[string]string
	defaultsErr error
	asked       []string
}

func (d *fakeDetector) DetectDatabaseContainers(context.Context) ([]v1alpha1.DetectedContainer, error) {
	return d.detected, d.detectErr
}

func (d *fakeDetector) ContainerDefaults(_ context.Context, name string, _ v1alpha1.Engine) (map[string]string, error) {
	d.asked = append(d.asked, name)

	if d.defaults == nil {
		return map[string]string{}, d.defaultsErr
	}

	return d.defaults, d.defaultsErr
}

func (d *fakeDetector) Profiles() v1alpha1.Profiles {
	return v1alpha1.DefaultProfiles()
}
