package autostart

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/desktopentry"
	"github.com/Guliveer/bootlist/internal/filesize"
	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// RunKeyPath is the "run on login" key below each hive.
const RunKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// RunValue is one named command under a run-key.
type RunValue struct {
	Name string
	Data string
}

// RunKeyStore reads and deletes values under the run-key of a hive.
// Implementations open the key per call and close it before returning.
type RunKeyStore interface {
	Values(hive locator.Hive) ([]RunValue, error)
	DeleteValue(hive locator.Hive, name string) error
}

// hives lists the run-keys in enumeration order.
var hives = []struct {
	hive      locator.Hive
	location  string
	publisher string
}{
	{locator.HKCU, models.LocationRegistryHKCU, models.PublisherUnknown},
	{locator.HKLM, models.LocationRegistryHKLM, models.PublisherSystem},
}

// RegistryBackend exposes the HKCU and HKLM run-keys. Values can be listed
// and deleted; there is no disabled-but-kept representation.
type RegistryBackend struct {
	store  RunKeyStore
	logger *zap.Logger
}

// NewRegistryBackend returns a backend reading run-keys from store.
func NewRegistryBackend(store RunKeyStore, logger *zap.Logger) *RegistryBackend {
	return &RegistryBackend{store: store, logger: logger.Named("registry")}
}

// Name returns the backend identifier.
func (b *RegistryBackend) Name() string { return "registry-run-key" }

// Sources returns the two run-keys.
func (b *RegistryBackend) Sources() []string {
	out := make([]string, 0, len(hives))
	for _, h := range hives {
		out = append(out, string(h.hive)+`\`+RunKeyPath)
	}
	return out
}

// Enumerate lists the string values of both run-keys.
func (b *RegistryBackend) Enumerate() []models.Entry {
	var entries []models.Entry
	for _, h := range hives {
		values, err := b.store.Values(h.hive)
		if err != nil {
			b.logger.Debug("Skipping unreadable run-key",
				zap.String("hive", string(h.hive)),
				zap.Error(err))
			continue
		}
		for _, v := range values {
			cmd := ParseRunCommand(v.Data)
			loc := locator.Registry(h.hive, v.Name)
			entries = append(entries, models.Entry{
				ID:          loc.String(),
				Name:        v.Name,
				Command:     cmd,
				FullCommand: v.Data,
				Enabled:     true,
				Path:        loc,
				Size:        filesize.Resolve(cmd),
				Location:    h.location,
				Publisher:   h.publisher,
			})
		}
	}
	return entries
}

// Owns reports whether loc is a registry locator.
func (b *RegistryBackend) Owns(loc locator.Locator) bool { return loc.IsRegistry() }

// Toggle always fails: a run-key value is either present or deleted.
func (b *RegistryBackend) Toggle(loc locator.Locator, enable bool) error {
	return ErrRegistryToggle
}

// Create is not offered for run-keys.
func (b *RegistryBackend) Create(name, command, description string) error {
	return fmt.Errorf("%w: creating registry entries", ErrUnsupported)
}

// Delete removes the named value from the hive's run-key.
func (b *RegistryBackend) Delete(loc locator.Locator) error {
	if !loc.IsRegistry() {
		return fmt.Errorf("%w: %s", ErrOutsideSource, loc.Path())
	}
	if err := b.store.DeleteValue(loc.Hive(), loc.Name()); err != nil {
		return classify(err, "delete system items")
	}
	b.logger.Info("Deleted run-key value",
		zap.String("hive", string(loc.Hive())),
		zap.String("name", loc.Name()))
	return nil
}

// ParseRunCommand extracts the executable from a run-key command string:
// the contents of a leading quoted segment, else the first token.
func ParseRunCommand(data string) string {
	s := strings.TrimSpace(data)
	if rest, ok := strings.CutPrefix(s, `"`); ok {
		if path, _, closed := strings.Cut(rest, `"`); closed {
			return path
		}
		return desktopentry.FirstToken(rest)
	}
	return desktopentry.FirstToken(s)
}
