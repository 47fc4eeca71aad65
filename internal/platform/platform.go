// Package platform describes the host the tool runs on: OS details from
// gopsutil, whether it runs inside a sandbox, and which executables are
// currently running.
package platform

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

// Info summarizes the host for diagnostics.
type Info struct {
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelVersion   string `json:"kernel_version" yaml:"kernel_version"`
	Hostname        string `json:"hostname" yaml:"hostname"`
	Sandboxed       bool   `json:"sandboxed" yaml:"sandboxed"`
}

// Platform provides OS-specific facts the backends and service bridge need.
type Platform interface {
	// Name returns the OS identifier (linux, windows, darwin, ...).
	Name() string

	// Sandboxed reports whether the process runs inside a Flatpak sandbox,
	// where host tools must be reached through flatpak-spawn.
	Sandboxed() bool

	// Info gathers host details.
	Info(ctx context.Context) (Info, error)

	// Running returns the set of executables of running processes.
	Running(ctx context.Context) (Processes, error)
}

type hostPlatform struct{}

// New returns the Platform for the running OS.
func New() Platform {
	return hostPlatform{}
}

func (hostPlatform) Name() string { return runtime.GOOS }

func (hostPlatform) Sandboxed() bool { return isSandboxed() }

// Info queries gopsutil for host details. Individual fields may be empty
// when the OS does not expose them.
func (p hostPlatform) Info(ctx context.Context) (Info, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return Info{OS: runtime.GOOS, Sandboxed: p.Sandboxed()}, err
	}
	return Info{
		OS:              hi.OS,
		Platform:        hi.Platform,
		PlatformVersion: hi.PlatformVersion,
		KernelVersion:   hi.KernelVersion,
		Hostname:        hi.Hostname,
		Sandboxed:       p.Sandboxed(),
	}, nil
}

// Running lists the executables of all visible processes. Processes whose
// executable cannot be read (other users, kernel threads) fall back to
// their name.
func (hostPlatform) Running(ctx context.Context) (Processes, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	running := make(Processes, len(procs))
	for _, p := range procs {
		if exe, err := p.ExeWithContext(ctx); err == nil && exe != "" {
			running.add(exe)
			continue
		}
		if name, err := p.NameWithContext(ctx); err == nil && name != "" {
			running.add(name)
		}
	}
	return running, nil
}

// Processes is a set of running executables keyed by full path and by base
// name.
type Processes map[string]struct{}

func (p Processes) add(exe string) {
	p[normalize(exe)] = struct{}{}
	p[normalize(filepath.Base(exe))] = struct{}{}
}

// Has reports whether command matches a running executable, either by full
// path or, for bare names, by base name.
func (p Processes) Has(command string) bool {
	if command == "" {
		return false
	}
	_, ok := p[normalize(command)]
	return ok
}

func normalize(s string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(s)
	}
	return s
}
