//go:build windows

package autostart

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultStartupDir returns %APPDATA%\Microsoft\Windows\Start Menu\Programs\Startup.
func DefaultStartupDir() string {
	appData, err := os.UserConfigDir()
	if err != nil {
		appData = os.Getenv("APPDATA")
	}
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup")
}

// New returns the Startup folder backend chained with the run-keys.
// New entries land in the Startup folder.
func New(opts Options, logger *zap.Logger) Backend {
	dir := opts.StartupDir
	if dir == "" {
		dir = DefaultStartupDir()
	}
	return NewChain(
		NewFolderBackend(dir, opts.ShowDisabled, logger),
		NewRegistryBackend(runKeys{}, logger),
	)
}
