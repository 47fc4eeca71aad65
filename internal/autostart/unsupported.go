package autostart

import (
	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// Unsupported is the backend for platforms without a startup mechanism.
type Unsupported struct{}

func (Unsupported) Name() string                                   { return "unsupported" }
func (Unsupported) Sources() []string                              { return nil }
func (Unsupported) Enumerate() []models.Entry                      { return nil }
func (Unsupported) Owns(locator.Locator) bool                      { return false }
func (Unsupported) Toggle(locator.Locator, bool) error             { return ErrUnsupported }
func (Unsupported) Create(name, command, description string) error { return ErrUnsupported }
func (Unsupported) Delete(locator.Locator) error                   { return ErrUnsupported }
