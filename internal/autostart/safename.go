package autostart

import "strings"

var unsafeNameChars = strings.NewReplacer(" ", "-", "/", "-", `\`, "-")

// SafeName turns a display name into a lower-case file name stem.
func SafeName(name string) string {
	return strings.ToLower(unsafeNameChars.Replace(name))
}
