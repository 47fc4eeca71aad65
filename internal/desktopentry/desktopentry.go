// Package desktopentry reads and rewrites freedesktop autostart files.
// Files are treated as a flat list of Key=Value lines; section headers,
// comments and unknown keys are carried through rewrites untouched.
package desktopentry

import (
	"fmt"
	"strconv"
	"strings"
)

// Extension is the file suffix of desktop entries.
const Extension = ".desktop"

// Keys read or written by this package.
const (
	KeyName             = "Name"
	KeyExec             = "Exec"
	KeyHidden           = "Hidden"
	KeyAutostartEnabled = "X-GNOME-Autostart-enabled"
)

// Lookup returns the trimmed value of the first line starting with "key=".
func Lookup(content, key string) (string, bool) {
	prefix := key + "="
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", false
}

// IsEnabled reports whether the entry would be started at login.
// Hidden=true disables it; X-GNOME-Autostart-enabled defaults to true.
func IsEnabled(content string) bool {
	if v, ok := Lookup(content, KeyHidden); ok && strings.EqualFold(v, "true") {
		return false
	}
	if v, ok := Lookup(content, KeyAutostartEnabled); ok {
		return strings.EqualFold(v, "true")
	}
	return true
}

// SetEnabled rewrites the Hidden and X-GNOME-Autostart-enabled lines.
// Every other line is returned byte-for-byte in its original position.
// Missing keys are appended. Line endings and a trailing newline are kept.
func SetEnabled(content string, enable bool) string {
	hiddenLine := KeyHidden + "=" + strconv.FormatBool(!enable)
	enabledLine := KeyAutostartEnabled + "=" + strconv.FormatBool(enable)

	trailingNewline := strings.HasSuffix(content, "\n")
	body := strings.TrimSuffix(content, "\n")
	crlf := strings.HasSuffix(body, "\r") || strings.Contains(body, "\r\n")

	var lines []string
	if content != "" {
		lines = strings.Split(body, "\n")
	}

	var hiddenFound, enabledFound bool
	for i, line := range lines {
		cr := ""
		if strings.HasSuffix(line, "\r") {
			cr = "\r"
		}
		switch {
		case strings.HasPrefix(line, KeyHidden+"="):
			lines[i] = hiddenLine + cr
			hiddenFound = true
		case strings.HasPrefix(line, KeyAutostartEnabled+"="):
			lines[i] = enabledLine + cr
			enabledFound = true
		}
	}

	eol := ""
	if crlf {
		eol = "\r"
	}
	if !hiddenFound {
		lines = append(lines, hiddenLine+eol)
	}
	if !enabledFound {
		lines = append(lines, enabledLine+eol)
	}

	out := strings.Join(lines, "\n")
	if trailingNewline || !hiddenFound || !enabledFound {
		out += "\n"
	}
	return out
}

// Template returns a complete, enabled autostart entry.
func Template(name, exec, comment string) string {
	return fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nExec=%s\nComment=%s\nHidden=false\nX-GNOME-Autostart-enabled=true\n",
		name, exec, comment)
}

// StripEnvWrapper drops a leading "env" shim and the NAME=value assignments
// that follow it, e.g. "env GDK_BACKEND=x11 /usr/bin/app -x" -> "/usr/bin/app -x".
func StripEnvWrapper(exec string) string {
	rest := strings.TrimSpace(exec)
	if !strings.HasPrefix(rest, "env ") {
		return rest
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "env "))
	for {
		tok, tail, _ := strings.Cut(rest, " ")
		if !isAssignment(tok) {
			return rest
		}
		rest = strings.TrimSpace(tail)
	}
}

// FirstToken returns the first whitespace-delimited token of s, or s itself.
func FirstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}

func isAssignment(tok string) bool {
	name, _, ok := strings.Cut(tok, "=")
	if !ok || name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
