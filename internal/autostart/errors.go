package autostart

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Guliveer/bootlist/internal/privilege"
)

var (
	// ErrUnsupported is returned for operations the platform or backend cannot perform.
	ErrUnsupported = errors.New("not supported on this OS")

	// ErrRegistryToggle is returned when toggling a run-key value.
	ErrRegistryToggle = errors.New("toggling registry apps is not supported yet, use delete instead")

	// ErrExists is returned when creation would overwrite an existing entry.
	ErrExists = errors.New("entry already exists")

	// ErrInvalidInput is returned for empty names or commands.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutsideSource is returned for paths outside every scanned location.
	ErrOutsideSource = errors.New("path is not inside a known startup location")
)

// PermissionError carries an elevation hint for a denied mutation.
type PermissionError struct {
	Action string
	Err    error
}

func (e *PermissionError) Error() string {
	return privilege.Hint(e.Action)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// classify maps filesystem and registry errors onto the error taxonomy.
func classify(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return &PermissionError{Action: action, Err: err}
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("entry not found: %w", err)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}
