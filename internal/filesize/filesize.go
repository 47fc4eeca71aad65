// Package filesize renders on-disk sizes of startup targets for display.
package filesize

import (
	"fmt"
	"os"
)

// Sentinels used in place of a size.
const (
	Unknown  = "Unknown"  // metadata could not be read
	Shortcut = "Shortcut" // .lnk target is not resolved
)

const (
	kib = 1024
	mib = 1024 * 1024
)

// Format renders n bytes as "512 B", "2.0 KB" or "1.5 MB".
func Format(n int64) string {
	switch {
	case n < kib:
		return fmt.Sprintf("%d B", n)
	case n < mib:
		return fmt.Sprintf("%.1f KB", float64(n)/kib)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/mib)
	}
}

// Resolve stats path and formats its size, or returns Unknown.
func Resolve(path string) string {
	if path == "" {
		return Unknown
	}
	info, err := os.Stat(path)
	if err != nil {
		return Unknown
	}
	return Format(info.Size())
}
