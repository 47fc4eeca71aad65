// Package autostart discovers and mutates login-time startup entries.
//
// Each platform mechanism is a Backend: desktop-entry files (Linux), the
// per-user Startup folder and the registry run-keys (Windows). New selects
// the backend for the running OS; the others remain constructible on every
// platform so they can be exercised against a temporary directory.
package autostart

import (
	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// Backend is the uniform capability set over one persistence mechanism.
type Backend interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string

	// Sources lists the directories or registry keys the backend scans.
	Sources() []string

	// Enumerate rescans the sources. Missing or unreadable sources yield
	// no entries rather than an error.
	Enumerate() []models.Entry

	// Owns reports whether loc addresses something this backend manages.
	Owns(loc locator.Locator) bool

	// Toggle enables or disables the entry at loc.
	Toggle(loc locator.Locator, enable bool) error

	// Create adds a new enabled entry.
	Create(name, command, description string) error

	// Delete removes the entry at loc.
	Delete(loc locator.Locator) error
}

// Options overrides the default source locations.
type Options struct {
	AutostartDir string // desktop-entry directory (Linux)
	StartupDir   string // Startup folder (Windows)
	ShowDisabled bool   // list ".disabled" files in the Startup folder
}
