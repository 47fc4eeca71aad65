package autostart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// withinDir reports whether path lies strictly below dir.
func withinDir(dir, path string) bool {
	if dir == "" || path == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// removeFile deletes a single startup file. A missing file is an error.
func removeFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return classify(err, "delete this file")
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return classify(os.Remove(path), "delete this file")
}

// createFile writes data to a new file, refusing to overwrite.
func createFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return classify(err, "create the startup directory")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return classify(err, "create this entry")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// replaceFile atomically swaps the file at path for data.
// The new file is staged next to the target and renamed over it. A symlink
// at path is replaced by a regular file; its target is never written.
// It reports whether a symlink was replaced.
func replaceFile(path string, data []byte) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, classify(err, "modify this entry")
	}
	isSymlink := info.Mode()&fs.ModeSymlink != 0
	perm := fs.FileMode(0o644)
	if info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return isSymlink, classify(err, "modify this entry")
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return isSymlink, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return isSymlink, fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return isSymlink, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return isSymlink, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return isSymlink, classify(err, "modify this entry")
	}
	return isSymlink, nil
}

// walkFiles calls fn for every non-directory below root, skipping
// anything that cannot be read.
func walkFiles(root string, onErr func(path string, err error), fn func(path string, d fs.DirEntry)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			onErr(path, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		fn(path, d)
		return nil
	})
}
