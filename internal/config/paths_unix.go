//go:build !windows

package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

func configSearchPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "bootlist", "config.yaml"),
		"/etc/bootlist/config.yaml",
	}
}
