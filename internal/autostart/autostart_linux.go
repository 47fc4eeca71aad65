//go:build linux

package autostart

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
)

// DefaultAutostartDir returns $XDG_CONFIG_HOME/autostart.
func DefaultAutostartDir() string {
	return filepath.Join(xdg.ConfigHome, "autostart")
}

// New returns the desktop-entry backend.
func New(opts Options, logger *zap.Logger) Backend {
	dir := opts.AutostartDir
	if dir == "" {
		dir = DefaultAutostartDir()
	}
	return NewDesktopBackend(dir, logger)
}
