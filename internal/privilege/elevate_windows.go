//go:build windows

package privilege

import "golang.org/x/sys/windows"

const elevationAdvice = "Please run the app as Administrator"

// IsElevated reports whether the process token is elevated.
func IsElevated() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()
	return token.IsElevated()
}
