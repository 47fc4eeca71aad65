// Package services lists and toggles systemd system services by shelling
// out to systemctl. Mutations run through pkexec, which blocks on the
// desktop's polkit password prompt.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/models"
)

var (
	// ErrUnsupported is returned by Toggle where services are not managed.
	ErrUnsupported = errors.New("service management is currently only supported on Linux")

	// ErrInvalidName is returned for names that could be read as flags.
	ErrInvalidName = errors.New("invalid service name")
)

// Config names the external tools.
type Config struct {
	Systemctl    string `yaml:"systemctl"`
	Escalation   string `yaml:"escalation"`
	SandboxSpawn string `yaml:"sandbox_spawn"`
}

// DefaultConfig returns the stock tool locations.
func DefaultConfig() Config {
	return Config{
		Systemctl:    "/usr/bin/systemctl",
		Escalation:   "pkexec",
		SandboxSpawn: "flatpak-spawn",
	}
}

// Runner executes a program and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ToolError reports a failed external command. Its message is the tool's
// standard error, verbatim, when there is any.
type ToolError struct {
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *ToolError) Unwrap() error { return e.Err }

// Manager queries and toggles services.
type Manager struct {
	cfg       Config
	runner    Runner
	sandboxed bool
	supported bool
	logger    *zap.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option { return func(m *Manager) { m.runner = r } }

// WithSandbox routes commands through the sandbox escape helper.
func WithSandbox(sandboxed bool) Option { return func(m *Manager) { m.sandboxed = sandboxed } }

// WithSupported overrides platform detection.
func WithSupported(supported bool) Option { return func(m *Manager) { m.supported = supported } }

// New returns a Manager for the running platform.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		cfg:       cfg,
		runner:    execRunner{},
		supported: supported,
		logger:    logger.Named("services"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List returns services whose install state is enabled or disabled,
// sorted by name. Unsupported platforms get an empty list.
func (m *Manager) List(ctx context.Context) ([]models.Service, error) {
	if !m.supported {
		return []models.Service{}, nil
	}
	name, args := m.listCommand()
	stdout, err := m.run(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	return ParseUnitFiles(string(stdout)), nil
}

// Toggle enables or disables a service through the escalation helper.
// It blocks until the user answers the authorization prompt.
func (m *Manager) Toggle(ctx context.Context, name string, enable bool) error {
	if !m.supported {
		return ErrUnsupported
	}
	if name == "" || strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	prog, args := m.toggleCommand(name, enable)
	if _, err := m.run(ctx, prog, args...); err != nil {
		return err
	}
	m.logger.Info("Toggled service",
		zap.String("service", name),
		zap.Bool("enabled", enable))
	return nil
}

func (m *Manager) listCommand() (string, []string) {
	args := []string{"list-unit-files", "--type=service", "--no-pager", "--no-legend"}
	if m.sandboxed {
		return m.cfg.SandboxSpawn, append([]string{"--host", "systemctl"}, args...)
	}
	return m.cfg.Systemctl, args
}

func (m *Manager) toggleCommand(name string, enable bool) (string, []string) {
	action := "disable"
	if enable {
		action = "enable"
	}
	if m.sandboxed {
		return m.cfg.SandboxSpawn, []string{"--host", m.cfg.Escalation, "systemctl", action, name}
	}
	return m.cfg.Escalation, []string{m.cfg.Systemctl, action, name}
}

func (m *Manager) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.logger.Debug("Running service tool",
		zap.String("program", name),
		zap.Strings("args", args))
	stdout, stderr, err := m.runner.Run(ctx, name, args...)
	if err != nil {
		return nil, &ToolError{Stderr: string(stderr), Err: err}
	}
	return stdout, nil
}

// ParseUnitFiles parses `systemctl list-unit-files` output. Lines need at
// least two columns and a second column of exactly "enabled" or
// "disabled"; everything else (static, masked, alias, ...) is dropped.
func ParseUnitFiles(output string) []models.Service {
	services := []models.Service{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if state := fields[1]; state == models.ServiceEnabled || state == models.ServiceDisabled {
			services = append(services, models.Service{Name: fields[0], State: state})
		}
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	return services
}
