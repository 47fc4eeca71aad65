package autostart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// memRunKeys is an in-memory RunKeyStore.
type memRunKeys struct {
	values     map[locator.Hive][]RunValue
	unreadable map[locator.Hive]bool
	denyWrite  map[locator.Hive]bool
}

func (m *memRunKeys) Values(h locator.Hive) ([]RunValue, error) {
	if m.unreadable[h] {
		return nil, fmt.Errorf("open key: %w", fs.ErrNotExist)
	}
	return append([]RunValue(nil), m.values[h]...), nil
}

func (m *memRunKeys) DeleteValue(h locator.Hive, name string) error {
	if m.denyWrite[h] {
		return fmt.Errorf("open key: %w", fs.ErrPermission)
	}
	for i, v := range m.values[h] {
		if v.Name == name {
			m.values[h] = append(m.values[h][:i], m.values[h][i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s: %w", name, fs.ErrNotExist)
}

func TestParseRunCommand(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`C:\tools\app.exe --flag`, `C:\tools\app.exe`},
		{`"C:\Program Files\App\app.exe" --minimized`, `C:\Program Files\App\app.exe`},
		{`"C:\Program Files\App\app.exe"`, `C:\Program Files\App\app.exe`},
		{`"C:\unterminated\app.exe -x`, `C:\unterminated\app.exe`},
		{`  rundll32.exe shell32.dll,Control_RunDLL`, `rundll32.exe`},
		{``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRunCommand(tt.in))
		})
	}
}

func TestRegistry_Enumerate(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "agent.exe")
	require.NoError(t, os.WriteFile(bin, make([]byte, 1572864), 0o644))

	store := &memRunKeys{values: map[locator.Hive][]RunValue{
		locator.HKCU: {{Name: "Tool", Data: `C:\tools\app.exe --flag`}},
		locator.HKLM: {{Name: "Agent", Data: `"` + bin + `" -service`}},
	}}
	b := NewRegistryBackend(store, zap.NewNop())

	entries := b.Enumerate()
	require.Len(t, entries, 2)

	tool := entries[0]
	assert.Equal(t, "REGISTRY::HKCU::Tool", tool.ID)
	assert.Equal(t, `C:\tools\app.exe`, tool.Command)
	assert.Equal(t, `C:\tools\app.exe --flag`, tool.FullCommand)
	assert.Equal(t, "Unknown", tool.Size)
	assert.True(t, tool.Enabled)
	assert.Equal(t, models.LocationRegistryHKCU, tool.Location)
	assert.Equal(t, models.PublisherUnknown, tool.Publisher)
	assert.Equal(t, "REGISTRY::HKCU::Tool", tool.Path.String())

	agent := entries[1]
	assert.Equal(t, bin, agent.Command)
	assert.Equal(t, "1.5 MB", agent.Size)
	assert.Equal(t, models.LocationRegistryHKLM, agent.Location)
	assert.Equal(t, models.PublisherSystem, agent.Publisher)
}

func TestRegistry_EnumerateSameNameInBothHives(t *testing.T) {
	store := &memRunKeys{values: map[locator.Hive][]RunValue{
		locator.HKCU: {{Name: "Updater", Data: `C:\u\updater.exe`}},
		locator.HKLM: {{Name: "Updater", Data: `C:\m\updater.exe`}},
	}}
	entries := NewRegistryBackend(store, zap.NewNop()).Enumerate()
	require.Len(t, entries, 2)

	assert.Equal(t, "REGISTRY::HKCU::Updater", entries[0].ID)
	assert.Equal(t, "REGISTRY::HKLM::Updater", entries[1].ID)
	for _, e := range entries {
		assert.Equal(t, e.Path.String(), e.ID)
		assert.Equal(t, "Updater", e.Name)
	}
}

func TestRegistry_EnumerateSkipsUnreadableHive(t *testing.T) {
	store := &memRunKeys{
		values:     map[locator.Hive][]RunValue{locator.HKLM: {{Name: "A", Data: "a.exe"}}},
		unreadable: map[locator.Hive]bool{locator.HKCU: true},
	}
	entries := NewRegistryBackend(store, zap.NewNop()).Enumerate()
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].Name)
}

func TestRegistry_ToggleUnsupported(t *testing.T) {
	b := NewRegistryBackend(&memRunKeys{}, zap.NewNop())
	err := b.Toggle(locator.Registry(locator.HKCU, "x"), false)
	assert.True(t, errors.Is(err, ErrRegistryToggle))
	assert.Contains(t, err.Error(), "delete")
}

func TestRegistry_Delete(t *testing.T) {
	store := &memRunKeys{values: map[locator.Hive][]RunValue{
		locator.HKCU: {{Name: "A", Data: "a.exe"}, {Name: "B", Data: "b.exe"}},
	}}
	b := NewRegistryBackend(store, zap.NewNop())
	loc := locator.Registry(locator.HKCU, "A")

	require.NoError(t, b.Delete(loc))
	require.Len(t, b.Enumerate(), 1)

	err := b.Delete(loc)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRegistry_DeletePermissionDenied(t *testing.T) {
	store := &memRunKeys{
		values:    map[locator.Hive][]RunValue{locator.HKLM: {{Name: "Sys", Data: "s.exe"}}},
		denyWrite: map[locator.Hive]bool{locator.HKLM: true},
	}
	err := NewRegistryBackend(store, zap.NewNop()).Delete(locator.Registry(locator.HKLM, "Sys"))

	var perr *PermissionError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "Access Denied")
	assert.Contains(t, err.Error(), "delete system items")
}

func TestRegistry_RejectsFiles(t *testing.T) {
	b := NewRegistryBackend(&memRunKeys{}, zap.NewNop())
	assert.False(t, b.Owns(locator.File("/x")))
	assert.True(t, errors.Is(b.Delete(locator.File("/x")), ErrOutsideSource))
	assert.True(t, errors.Is(b.Create("a", "b", ""), ErrUnsupported))
}
