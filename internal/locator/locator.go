// Package locator identifies the backing store of a startup entry.
// A Locator is either a real file on disk or a value under one of the
// registry run-keys; callers switch on Kind instead of sniffing strings.
package locator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// registryPrefix marks the string form of a registry locator.
const registryPrefix = "REGISTRY::"

// ErrInvalidLocator is returned when a registry locator string is malformed.
var ErrInvalidLocator = errors.New("invalid registry path format")

// Kind discriminates the two locator variants.
type Kind int

const (
	KindFile Kind = iota
	KindRegistry
)

// Hive names a registry root that carries a run-key.
type Hive string

const (
	HKCU Hive = "HKCU" // per-user
	HKLM Hive = "HKLM" // per-machine
)

// Valid reports whether h is one of the supported hives.
func (h Hive) Valid() bool {
	return h == HKCU || h == HKLM
}

// Locator is a tagged union: File{path} | Registry{hive, name}.
type Locator struct {
	kind Kind
	path string
	hive Hive
	name string
}

// File returns a locator for a filesystem-backed entry.
func File(path string) Locator {
	return Locator{kind: KindFile, path: path}
}

// Registry returns a locator for a run-key value.
func Registry(hive Hive, name string) Locator {
	return Locator{kind: KindRegistry, hive: hive, name: name}
}

// Parse converts the string form produced by String back into a Locator.
// Anything without the registry marker is taken as a file path.
func Parse(s string) (Locator, error) {
	if !strings.HasPrefix(s, registryPrefix) {
		if s == "" {
			return Locator{}, fmt.Errorf("empty path")
		}
		return File(s), nil
	}

	// Value names may contain "::" themselves, so split only once.
	parts := strings.SplitN(strings.TrimPrefix(s, registryPrefix), "::", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidLocator, s)
	}
	hive := Hive(parts[0])
	if !hive.Valid() {
		return Locator{}, fmt.Errorf("%w: unknown hive %q", ErrInvalidLocator, parts[0])
	}
	return Registry(hive, parts[1]), nil
}

// Kind returns the variant of the locator.
func (l Locator) Kind() Kind { return l.kind }

// IsRegistry reports whether l denotes a registry value.
func (l Locator) IsRegistry() bool { return l.kind == KindRegistry }

// Path returns the filesystem path of a file locator, or "" otherwise.
func (l Locator) Path() string {
	if l.kind != KindFile {
		return ""
	}
	return l.path
}

// Hive returns the hive of a registry locator.
func (l Locator) Hive() Hive { return l.hive }

// Name returns the value name of a registry locator.
func (l Locator) Name() string { return l.name }

// String renders the locator in its self-describing string form.
func (l Locator) String() string {
	if l.kind == KindRegistry {
		return registryPrefix + string(l.hive) + "::" + l.name
	}
	return l.path
}

// MarshalJSON encodes the locator as its string form.
func (l Locator) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a locator from its string form.
func (l *Locator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML encodes the locator as its string form.
func (l Locator) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}
