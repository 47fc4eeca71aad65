package autostart

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/desktopentry"
	"github.com/Guliveer/bootlist/internal/filesize"
	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// DesktopBackend manages freedesktop autostart entries in a single directory.
type DesktopBackend struct {
	dir    string
	logger *zap.Logger
}

// NewDesktopBackend returns a backend rooted at dir (normally
// $XDG_CONFIG_HOME/autostart).
func NewDesktopBackend(dir string, logger *zap.Logger) *DesktopBackend {
	return &DesktopBackend{dir: dir, logger: logger.Named("desktop")}
}

// Name returns the backend identifier.
func (b *DesktopBackend) Name() string { return "desktop-entry" }

// Sources returns the autostart directory.
func (b *DesktopBackend) Sources() []string { return []string{b.dir} }

// Enumerate walks the autostart directory for *.desktop files.
func (b *DesktopBackend) Enumerate() []models.Entry {
	var entries []models.Entry
	walkFiles(b.dir, b.skip, func(path string, d fs.DirEntry) {
		if !strings.HasSuffix(d.Name(), desktopentry.Extension) {
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			b.skip(path, err)
			return
		}
		entries = append(entries, b.entry(path, d.Name(), string(data)))
	})
	return entries
}

func (b *DesktopBackend) entry(path, fileName, content string) models.Entry {
	name, ok := desktopentry.Lookup(content, desktopentry.KeyName)
	if !ok {
		name = fileName
	}
	raw, _ := desktopentry.Lookup(content, desktopentry.KeyExec)
	full := desktopentry.StripEnvWrapper(raw)
	cmd := desktopentry.FirstToken(full)

	return models.Entry{
		ID:          fileName,
		Name:        name,
		Command:     cmd,
		FullCommand: full,
		Enabled:     desktopentry.IsEnabled(content),
		Path:        locator.File(path),
		Size:        filesize.Resolve(lookExecutable(cmd)),
		Location:    models.LocationStartupFolder,
		Publisher:   models.PublisherDesktopEntry,
	}
}

func (b *DesktopBackend) skip(path string, err error) {
	b.logger.Debug("Skipping unreadable autostart path",
		zap.String("path", path),
		zap.Error(err))
}

// Owns reports whether loc is a file below the autostart directory.
func (b *DesktopBackend) Owns(loc locator.Locator) bool {
	return !loc.IsRegistry() && withinDir(b.dir, loc.Path())
}

// Toggle rewrites Hidden and X-GNOME-Autostart-enabled, leaving every other
// line untouched. A symlinked entry is replaced by a regular file.
func (b *DesktopBackend) Toggle(loc locator.Locator, enable bool) error {
	if !b.Owns(loc) {
		return b.foreign(loc)
	}
	path := loc.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		return classify(err, "modify this entry")
	}
	updated := desktopentry.SetEnabled(string(data), enable)

	replaced, err := replaceFile(path, []byte(updated))
	if err != nil {
		return err
	}
	b.logger.Info("Toggled desktop entry",
		zap.String("path", path),
		zap.Bool("enabled", enable),
		zap.Bool("replaced_symlink", replaced))
	return nil
}

// Create writes <safe-name>.desktop with an enabled entry template.
func (b *DesktopBackend) Create(name, command, description string) error {
	if err := validateCreate(name, command, description); err != nil {
		return err
	}
	path := filepath.Join(b.dir, SafeName(name)+desktopentry.Extension)
	if err := createFile(path, []byte(desktopentry.Template(name, command, description))); err != nil {
		return err
	}
	b.logger.Info("Created desktop entry", zap.String("path", path))
	return nil
}

// Delete removes the desktop file (or the symlink itself).
func (b *DesktopBackend) Delete(loc locator.Locator) error {
	if !b.Owns(loc) {
		return b.foreign(loc)
	}
	if err := removeFile(loc.Path()); err != nil {
		return err
	}
	b.logger.Info("Deleted desktop entry", zap.String("path", loc.Path()))
	return nil
}

func (b *DesktopBackend) foreign(loc locator.Locator) error {
	if loc.IsRegistry() {
		return fmt.Errorf("%w: registry entries", ErrUnsupported)
	}
	return fmt.Errorf("%w: %s", ErrOutsideSource, loc.Path())
}

// lookExecutable resolves bare command names through PATH so their size
// can be shown. Paths are returned unchanged.
func lookExecutable(cmd string) string {
	if cmd == "" || strings.ContainsRune(cmd, filepath.Separator) {
		return cmd
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		return ""
	}
	return resolved
}

func validateCreate(name, command, description string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("%w: command is required", ErrInvalidInput)
	}
	if strings.ContainsAny(name+command+description, "\r\n") {
		return fmt.Errorf("%w: values must be a single line", ErrInvalidInput)
	}
	if SafeName(name) == "." || SafeName(name) == ".." {
		return fmt.Errorf("%w: name %q cannot be used as a file name", ErrInvalidInput, name)
	}
	return nil
}
