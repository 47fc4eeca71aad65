// Package app is the command surface consumed by front-ends: it turns
// string paths from the caller into locators, dispatches to the selected
// startup backend and the service bridge, and logs outcomes.
package app

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/autostart"
	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
	"github.com/Guliveer/bootlist/internal/platform"
)

// ServiceManager is the service bridge used by App.
type ServiceManager interface {
	List(ctx context.Context) ([]models.Service, error)
	Toggle(ctx context.Context, name string, enable bool) error
}

// Options tunes the running-process annotation.
type Options struct {
	DetectRunning bool
	ScanTimeout   time.Duration
}

// App wires one backend, the service bridge and the host platform.
type App struct {
	backend  autostart.Backend
	services ServiceManager
	platform platform.Platform
	opts     Options
	logger   *zap.Logger
}

// New creates the command surface.
func New(backend autostart.Backend, services ServiceManager, plat platform.Platform, opts Options, logger *zap.Logger) *App {
	return &App{
		backend:  backend,
		services: services,
		platform: plat,
		opts:     opts,
		logger:   logger.Named("app"),
	}
}

// Backend returns the selected startup backend.
func (a *App) Backend() autostart.Backend { return a.backend }

// GetApps rescans every source and returns entries sorted by name.
func (a *App) GetApps(ctx context.Context) []models.Entry {
	entries := a.backend.Enumerate()
	if entries == nil {
		entries = []models.Entry{}
	}
	a.markRunning(ctx, entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	a.logger.Debug("Enumerated startup entries",
		zap.String("backend", a.backend.Name()),
		zap.Int("count", len(entries)))
	return entries
}

func (a *App) markRunning(ctx context.Context, entries []models.Entry) {
	if !a.opts.DetectRunning || a.platform == nil || len(entries) == 0 {
		return
	}
	if a.opts.ScanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.ScanTimeout)
		defer cancel()
	}
	running, err := a.platform.Running(ctx)
	if err != nil {
		a.logger.Warn("Process scan failed, running state unknown", zap.Error(err))
		return
	}
	for i := range entries {
		entries[i].Running = running.Has(entries[i].Command)
	}
}

// ToggleApp enables or disables the entry at path.
func (a *App) ToggleApp(path string, enable bool) error {
	loc, err := locator.Parse(path)
	if err != nil {
		return err
	}
	if err := a.backend.Toggle(loc, enable); err != nil {
		a.logger.Warn("Toggle failed",
			zap.Stringer("path", loc),
			zap.Bool("enable", enable),
			zap.Error(err))
		return err
	}
	return nil
}

// CreateApp adds a new enabled entry. An empty name is derived from command.
func (a *App) CreateApp(name, command, description string) error {
	if strings.TrimSpace(name) == "" {
		name = DeriveName(command)
	}
	if err := a.backend.Create(name, command, description); err != nil {
		a.logger.Warn("Create failed",
			zap.String("name", name),
			zap.Error(err))
		return err
	}
	return nil
}

// DeleteApp removes the entry at path.
func (a *App) DeleteApp(path string) error {
	loc, err := locator.Parse(path)
	if err != nil {
		return err
	}
	if err := a.backend.Delete(loc); err != nil {
		a.logger.Warn("Delete failed",
			zap.Stringer("path", loc),
			zap.Error(err))
		return err
	}
	return nil
}

// GetSystemServices lists system services with an enabled/disabled state.
func (a *App) GetSystemServices(ctx context.Context) ([]models.Service, error) {
	return a.services.List(ctx)
}

// ToggleService enables or disables a system service. It may block on an
// interactive authorization prompt.
func (a *App) ToggleService(ctx context.Context, name string, enable bool) error {
	if err := a.services.Toggle(ctx, name, enable); err != nil {
		a.logger.Warn("Service toggle failed",
			zap.String("service", name),
			zap.Bool("enable", enable),
			zap.Error(err))
		return err
	}
	return nil
}

// DeriveName builds a display name from a command's file name:
// "/usr/bin/syncthing" -> "Syncthing", `C:\Tools\my.tool.exe` -> "My.tool".
func DeriveName(command string) string {
	exe := strings.Trim(strings.TrimSpace(command), `"`)
	if i := strings.LastIndexAny(exe, `/\`); i >= 0 {
		exe = exe[i+1:]
	}
	if i := strings.LastIndex(exe, "."); i > 0 {
		exe = exe[:i]
	}
	r, size := utf8.DecodeRuneInString(exe)
	if r == utf8.RuneError {
		return exe
	}
	return string(unicode.ToUpper(r)) + exe[size:]
}
