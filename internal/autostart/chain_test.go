package autostart

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/locator"
)

func TestChain_DispatchesByLocator(t *testing.T) {
	folder, dir := newFolder(t, false)
	store := &memRunKeys{values: map[locator.Hive][]RunValue{
		locator.HKCU: {{Name: "Steam", Data: `"C:\Steam\steam.exe" -silent`}},
	}}
	c := NewChain(folder, NewRegistryBackend(store, zap.NewNop()))

	assert.Equal(t, "startup-folder+registry-run-key", c.Name())
	assert.Len(t, c.Sources(), 3)

	require.NoError(t, c.Create("Launcher", `C:\l.exe`, ""))
	entries := c.Enumerate()
	require.Len(t, entries, 2)

	script := locator.File(filepath.Join(dir, "launcher.bat"))
	require.NoError(t, c.Toggle(script, false))

	reg := locator.Registry(locator.HKCU, "Steam")
	assert.True(t, errors.Is(c.Toggle(reg, false), ErrRegistryToggle))
	require.NoError(t, c.Delete(reg))
	assert.Empty(t, store.values[locator.HKCU])

	outside := locator.File(filepath.Join(t.TempDir(), "x.bat"))
	assert.False(t, c.Owns(outside))
	assert.True(t, errors.Is(c.Delete(outside), ErrOutsideSource))
}

func TestChain_Empty(t *testing.T) {
	c := NewChain()
	assert.Empty(t, c.Enumerate())
	assert.True(t, errors.Is(c.Create("a", "b", ""), ErrUnsupported))
}

func TestUnsupported(t *testing.T) {
	var b Backend = Unsupported{}
	assert.Empty(t, b.Enumerate())
	assert.True(t, errors.Is(b.Toggle(locator.File("/x"), true), ErrUnsupported))
	assert.True(t, errors.Is(b.Create("a", "b", "c"), ErrUnsupported))
	assert.True(t, errors.Is(b.Delete(locator.File("/x")), ErrUnsupported))
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MyApp", "myapp"},
		{"My App", "my-app"},
		{`a/b\c d`, "a-b-c-d"},
		{"ÄBC", "äbc"},
		{"", ""},
	}
	for _, tt := range tests {
		got := SafeName(tt.in)
		assert.Equal(t, tt.want, got)
		assert.NotContains(t, got, " ")
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, `\`)
	}
}

func TestWithinDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, withinDir(dir, filepath.Join(dir, "a.desktop")))
	assert.True(t, withinDir(dir, filepath.Join(dir, "sub", "a.desktop")))
	assert.False(t, withinDir(dir, dir))
	assert.False(t, withinDir(dir, filepath.Join(dir, "..", "x")))
	assert.True(t, withinDir(dir, filepath.Join(dir, "..evil")))
	assert.False(t, withinDir("", "/x"))
}
