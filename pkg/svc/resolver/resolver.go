package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/devantler-tech/dbcli/pkg/apis/connection/v1alpha1"
	"github.com/devantler-tech/dbcli/pkg/utils/notify"
)

// Prompt texts.
const (
	PromptAlias          = "alias name"
	PromptContainer      = "Docker container name"
	PromptSelectDetected = "Please select a detected database container"
	PromptEngine         = "Database type"
	PromptUser           = "DB username"
	PromptPassword       = "Password (Optional)"
	PromptNewPassword    = "Password"
	PromptDatabase       = "Database name (Optional)"
	PromptPort           = "Port number (Optional)"
	PromptReusePassword  = "Use password from environment variable?"

	// ManualEntry is appended to the detected container choices.
	ManualEntry = "Enter manually..."
)

// Password reuse choices, in the order offered.
const (
	ReusePasswordYes = "Yes"
	ReusePasswordNo  = "No (enter new password)"
)

// ErrPromptAborted wraps any failure reported by the prompter.
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter collects answers from the user.
type Prompter interface {
	// Input asks for free text; an empty answer selects defaultValue.
	Input(message, defaultValue string) (string, error)
	// Required is Input that refuses an empty answer.
	Required(message, defaultValue string) (string, error)
	// Password asks for hidden text; empty means none.
	Password(message string) (string, error)
	// Select returns the index of the chosen option.
	Select(message string, options []string, defaultIndex int) (int, error)
}

// Detector finds database containers and their default credentials.
type Detector interface {
	DetectDatabaseContainers(ctx context.Context) ([]v1alpha1.DetectedContainer, error)
	ContainerDefaults(ctx context.Context, name string, engine v1alpha1.Engine) (map[string]string, error)
	Profiles() v1alpha1.Profiles
}

// Resolver drives the interactive flows.
type Resolver struct {
	prompter Prompter
	detector Detector
	out      io.Writer
}

// New creates a Resolver writing notices to out.
func New(prompter Prompter, detector Detector, out io.Writer) *Resolver {
	return &Resolver{
		prompter: prompter,
		detector: detector,
		out:      out,
	}
}

// Interactive asks for every field, offering detected containers as a shortcut
// for the container name.
func (r *Resolver) Interactive(ctx context.Context) (string, v1alpha1.Descriptor, error) {
	alias, err := r.required(PromptAlias, "")
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	container, err := r.chooseContainer(ctx)
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	engine, err := r.chooseEngine()
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	descriptor := v1alpha1.Descriptor{Engine: engine, Container: container}

	err = r.fillCredentials(&descriptor, map[string]string{}, 0)
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	return alias, descriptor, nil
}

// AutoDetect lets the user pick a detected container and pre-fills answers from
// its environment and published port. It falls back to Interactive when nothing
// is detected or the user chooses manual entry.
func (r *Resolver) AutoDetect(ctx context.Context) (string, v1alpha1.Descriptor, error) {
	detected, err := r.detector.DetectDatabaseContainers(ctx)
	if err != nil {
		return "", v1alpha1.Descriptor{}, fmt.Errorf("failed to detect database containers: %w", err)
	}

	if len(detected) == 0 {
		notify.Infof(r.out, "No database containers detected.")

		return r.Interactive(ctx)
	}

	selected, ok, err := r.pickDetected(detected)
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	if !ok {
		return r.Interactive(ctx)
	}

	alias, err := r.required(PromptAlias, selected.Name)
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	defaults, err := r.detector.ContainerDefaults(ctx, selected.Name, selected.Engine)
	if err != nil {
		return "", v1alpha1.Descriptor{}, fmt.Errorf("failed to read container defaults: %w", err)
	}

	descriptor := v1alpha1.Descriptor{Engine: selected.Engine, Container: selected.Name}

	port, _ := selected.PublishedPort(r.detector.Profiles()[selected.Engine].Port)

	err = r.fillCredentials(&descriptor, defaults, port)
	if err != nil {
		return "", v1alpha1.Descriptor{}, err
	}

	return alias, descriptor, nil
}

// --- internals ---

func (r *Resolver) chooseContainer(ctx context.Context) (string, error) {
	detected, err := r.detector.DetectDatabaseContainers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to detect database containers: %w", err)
	}

	if len(detected) == 0 {
		notify.Infof(r.out, "No database containers detected. Please enter manually.")

		return r.required(PromptContainer, "")
	}

	selected, ok, err := r.pickDetected(detected)
	if err != nil {
		return "", err
	}

	if !ok {
		return r.required(PromptContainer, "")
	}

	return selected.Name, nil
}

// pickDetected returns false when the user chose manual entry.
func (r *Resolver) pickDetected(
	detected []v1alpha1.DetectedContainer,
) (v1alpha1.DetectedContainer, bool, error) {
	options := make([]string, 0, len(detected)+1)
	for _, container := range detected {
		options = append(options, container.Label())
	}

	options = append(options, ManualEntry)

	index, err := r.prompter.Select(PromptSelectDetected, options, 0)
	if err != nil {
		return v1alpha1.DetectedContainer{}, false, abort(err)
	}

	if index < 0 || index >= len(detected) {
		return v1alpha1.DetectedContainer{}, false, nil
	}

	return detected[index], true, nil
}

func (r *Resolver) chooseEngine() (v1alpha1.Engine, error) {
	engines := v1alpha1.ValidEngines()

	options := make([]string, 0, len(engines))
	for _, engine := range engines {
		options = append(options, string(engine))
	}

	index, err := r.prompter.Select(PromptEngine, options, 0)
	if err != nil {
		return "", abort(err)
	}

	if index < 0 || index >= len(engines) {
		return "", fmt.Errorf("%w: engine selection %d", v1alpha1.ErrUnknownEngine, index)
	}

	return engines[index], nil
}

// fillCredentials prompts for user, password, database and port, using defaults
// from a container environment and a detected port when present.
func (r *Resolver) fillCredentials(descriptor *v1alpha1.Descriptor, defaults map[string]string, port uint16) error {
	defaultUser, ok := defaults[v1alpha1.DefaultKeyUser]
	if !ok {
		defaultUser = descriptor.Engine.DefaultUser()
	}

	user, err := r.input(PromptUser, defaultUser)
	if err != nil {
		return err
	}

	password, err := r.password(defaults)
	if err != nil {
		return err
	}

	database, err := r.input(PromptDatabase, defaults[v1alpha1.DefaultKeyDatabase])
	if err != nil {
		return err
	}

	defaultPort := ""
	if port != 0 {
		defaultPort = strconv.FormatUint(uint64(port), 10)
	}

	portAnswer, err := r.input(PromptPort, defaultPort)
	if err != nil {
		return err
	}

	descriptor.User = user
	descriptor.Password = v1alpha1.OptionalString(password)
	descriptor.Database = v1alpha1.OptionalString(database)
	descriptor.Port = r.parsePort(portAnswer)

	return nil
}

func (r *Resolver) password(defaults map[string]string) (string, error) {
	detected, ok := defaults[v1alpha1.DefaultKeyPassword]
	if !ok {
		return r.secret(PromptPassword)
	}

	notify.Infof(r.out, "Password detected from environment variable")

	choice, err := r.prompter.Select(PromptReusePassword, []string{ReusePasswordYes, ReusePasswordNo}, 0)
	if err != nil {
		return "", abort(err)
	}

	if choice == 0 {
		return detected, nil
	}

	return r.secret(PromptNewPassword)
}

func (r *Resolver) parsePort(answer string) *uint16 {
	if answer == "" {
		return nil
	}

	port, err := strconv.ParseUint(answer, 10, 16)
	if err != nil {
		notify.Warningf(r.out, "Invalid port number provided, using default port.")

		return nil
	}

	return v1alpha1.OptionalPort(uint16(port))
}

func (r *Resolver) input(message, defaultValue string) (string, error) {
	answer, err := r.prompter.Input(message, defaultValue)
	if err != nil {
		return "", abort(err)
	}

	return answer, nil
}

func (r *Resolver) required(message, defaultValue string) (string, error) {
	answer, err := r.prompter.Required(message, defaultValue)
	if err != nil {
		return "", abort(err)
	}

	return answer, nil
}

func (r *Resolver) secret(message string) (string, error) {
	answer, err := r.prompter.Password(message)
	if err != nil {
		return "", abort(err)
	}

	return answer, nil
}

func abort(err error) error {
	return fmt.Errorf("%w: %w", ErrPromptAborted, err)
}
