//go:build linux

package platform

import "os"

// flatpakInfo exists at the root of every Flatpak sandbox.
const flatpakInfo = "/.flatpak-info"

func isSandboxed() bool {
	_, err := os.Stat(flatpakInfo)
	return err == nil
}
