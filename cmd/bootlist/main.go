// Package main is the entry point for bootlist, a manager for programs
// that start automatically at login. It loads configuration, selects the
// startup backend for the running OS and exposes list, toggle, create and
// delete operations plus a bridge to systemd unit files.
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
