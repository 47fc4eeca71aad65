package autostart

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/filesize"
	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// DisabledSuffix is appended to a Startup folder file to disable it.
const DisabledSuffix = ".disabled"

const shortcutExt = ".lnk"

// launchExts are the file types Windows runs from the Startup folder.
var launchExts = map[string]bool{
	shortcutExt: true,
	".bat":      true,
	".cmd":      true,
	".exe":      true,
}

// FolderBackend manages executables, scripts and shortcuts in the per-user
// Startup folder. Disabling renames the file with DisabledSuffix.
type FolderBackend struct {
	dir          string
	showDisabled bool
	logger       *zap.Logger
}

// NewFolderBackend returns a backend rooted at the Startup folder dir.
func NewFolderBackend(dir string, showDisabled bool, logger *zap.Logger) *FolderBackend {
	return &FolderBackend{dir: dir, showDisabled: showDisabled, logger: logger.Named("folder")}
}

// Name returns the backend identifier.
func (b *FolderBackend) Name() string { return "startup-folder" }

// Sources returns the Startup folder.
func (b *FolderBackend) Sources() []string { return []string{b.dir} }

// Enumerate lists launchable files. Disabled files are only listed when
// the backend was built with showDisabled.
func (b *FolderBackend) Enumerate() []models.Entry {
	var entries []models.Entry
	walkFiles(b.dir, b.skip, func(path string, d fs.DirEntry) {
		fileName := d.Name()
		base, enabled, ok := startupItem(fileName)
		if !ok || (!enabled && !b.showDisabled) {
			return
		}
		ext := strings.ToLower(filepath.Ext(base))

		name := base
		size := filesize.Shortcut
		if ext == shortcutExt {
			name = base[:len(base)-len(shortcutExt)]
		} else {
			size = filesize.Resolve(path)
		}

		entries = append(entries, models.Entry{
			ID:          fileName,
			Name:        name,
			Command:     path,
			FullCommand: path,
			Enabled:     enabled,
			Path:        locator.File(path),
			Size:        size,
			Location:    models.LocationStartupFolder,
			Publisher:   models.PublisherUnknown,
		})
	})
	return entries
}

func (b *FolderBackend) skip(path string, err error) {
	b.logger.Debug("Skipping unreadable startup path",
		zap.String("path", path),
		zap.Error(err))
}

// Owns reports whether loc is a file inside the Startup folder.
func (b *FolderBackend) Owns(loc locator.Locator) bool {
	return !loc.IsRegistry() && withinDir(b.dir, loc.Path())
}

// Toggle renames the file to add or strip DisabledSuffix. Enabling a file
// without the suffix, or disabling one that has it, succeeds without change.
func (b *FolderBackend) Toggle(loc locator.Locator, enable bool) error {
	if !b.Owns(loc) {
		return b.foreign(loc)
	}
	path := loc.Path()
	if err := checkStartupItem(path); err != nil {
		return err
	}
	disabled := hasSuffixFold(path, DisabledSuffix)

	var target string
	switch {
	case enable && !disabled, !enable && disabled:
		return nil
	case enable:
		target = path[:len(path)-len(DisabledSuffix)]
	default:
		target = path + DisabledSuffix
	}

	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, target)
	}
	if err := os.Rename(path, target); err != nil {
		return classify(err, "rename this file")
	}
	b.logger.Info("Toggled startup folder entry",
		zap.String("from", path),
		zap.String("to", target),
		zap.Bool("enabled", enable))
	return nil
}

// Create writes <safe-name>.bat that launches command.
func (b *FolderBackend) Create(name, command, description string) error {
	if err := validateCreate(name, command, description); err != nil {
		return err
	}
	path := filepath.Join(b.dir, SafeName(name)+".bat")
	script := fmt.Sprintf("@echo off\r\nstart \"\" \"%s\"\r\n", strings.Trim(command, `"`))
	if err := createFile(path, []byte(script)); err != nil {
		return err
	}
	b.logger.Info("Created startup script", zap.String("path", path))
	return nil
}

// Delete removes the file from the Startup folder.
func (b *FolderBackend) Delete(loc locator.Locator) error {
	if !b.Owns(loc) {
		return b.foreign(loc)
	}
	if err := checkStartupItem(loc.Path()); err != nil {
		return err
	}
	if err := removeFile(loc.Path()); err != nil {
		return err
	}
	b.logger.Info("Deleted startup folder entry", zap.String("path", loc.Path()))
	return nil
}

func (b *FolderBackend) foreign(loc locator.Locator) error {
	if loc.IsRegistry() {
		return fmt.Errorf("%w: registry entries", ErrUnsupported)
	}
	return fmt.Errorf("%w: %s", ErrOutsideSource, loc.Path())
}

// startupItem strips DisabledSuffix from fileName and reports whether the
// remaining name is a type Windows launches from the Startup folder.
func startupItem(fileName string) (base string, enabled, ok bool) {
	base, enabled = fileName, true
	if hasSuffixFold(base, DisabledSuffix) {
		base = base[:len(base)-len(DisabledSuffix)]
		enabled = false
	}
	return base, enabled, launchExts[strings.ToLower(filepath.Ext(base))]
}

func checkStartupItem(path string) error {
	if _, _, ok := startupItem(filepath.Base(path)); !ok {
		return fmt.Errorf("%w: %s is not a startup item", ErrInvalidInput, filepath.Base(path))
	}
	return nil
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
