//go:build !windows

package privilege

import "os"

const elevationAdvice = "Please run with root privileges (sudo)"

// IsElevated reports whether the effective user is root.
func IsElevated() bool {
	return os.Geteuid() == 0
}
