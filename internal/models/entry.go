// Package models defines the data structures shared by every startup backend.
// These structures are serialized to JSON/YAML for the command surface.
package models

import "github.com/Guliveer/bootlist/internal/locator"

// Location labels describe where an entry was discovered.
const (
	LocationStartupFolder = "Startup Folder"
	LocationRegistryHKCU  = "Registry (HKCU)"
	LocationRegistryHKLM  = "Registry (HKLM)"
)

// Publisher labels. They are best-effort provenance, not verified signers.
const (
	PublisherDesktopEntry = "Linux Desktop Entry"
	PublisherUnknown      = "Unknown"
	PublisherSystem       = "System"
)

// Entry is a single startup item, normalized across backends.
// It is a snapshot taken during enumeration and holds no handle to its
// backing store; mutations go through Path.
type Entry struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Command     string          `json:"command" yaml:"command"`           // first token of FullCommand
	FullCommand string          `json:"full_command" yaml:"full_command"` // display only
	Enabled     bool            `json:"enabled" yaml:"enabled"`
	Path        locator.Locator `json:"path" yaml:"path"`
	Size        string          `json:"size" yaml:"size"`
	Location    string          `json:"location" yaml:"location"`
	Publisher   string          `json:"publisher" yaml:"publisher"`
	Running     bool            `json:"running" yaml:"running"`
}

// Service states accepted from the service-control tool.
const (
	ServiceEnabled  = "enabled"
	ServiceDisabled = "disabled"
)

// Service is a system background service and its install state.
type Service struct {
	Name  string `json:"name" yaml:"name"`
	State string `json:"state" yaml:"state"`
}
