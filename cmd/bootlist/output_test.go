package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

func sampleEntries() []models.Entry {
	return []models.Entry{
		{
			ID:        "syncthing.desktop",
			Name:      "Syncthing",
			Command:   "/usr/bin/syncthing",
			Enabled:   true,
			Path:      locator.File("/home/u/.config/autostart/syncthing.desktop"),
			Size:      "12.3 MB",
			Location:  models.LocationStartupFolder,
			Publisher: models.PublisherDesktopEntry,
			Running:   true,
		},
		{
			ID:        "Discord",
			Name:      "Discord",
			Command:   `C:\Users\u\Discord\Update.exe`,
			Enabled:   false,
			Path:      locator.Registry(locator.HKCU, "Discord"),
			Size:      "Unknown",
			Location:  models.LocationRegistryHKCU,
			Publisher: models.PublisherUnknown,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "json", "yaml"} {
		f, err := parseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, outputFormat(s), f)
	}
	_, err := parseFormat("xml")
	assert.Error(t, err)
}

func TestWriteStructured_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStructured(&buf, formatJSON, sampleEntries()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "/home/u/.config/autostart/syncthing.desktop", decoded[0]["path"])
	assert.Equal(t, "REGISTRY::HKCU::Discord", decoded[1]["path"])
	assert.Equal(t, true, decoded[0]["running"])
}

func TestWriteStructured_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStructured(&buf, formatYAML, sampleEntries()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "REGISTRY::HKCU::Discord", decoded[1]["path"])
	assert.Equal(t, false, decoded[1]["enabled"])
}

func TestWriteStructured_TableIsRejected(t *testing.T) {
	assert.Error(t, writeStructured(&bytes.Buffer{}, formatTable, nil))
}

func TestEntriesTable(t *testing.T) {
	out := entriesTable(sampleEntries(), false)
	assert.Contains(t, out, "Syncthing")
	assert.Contains(t, out, "Discord")
	assert.Contains(t, out, "NAME")
	assert.NotContains(t, out, "REGISTRY::HKCU::Discord")

	wide := entriesTable(sampleEntries(), true)
	assert.Contains(t, wide, "REGISTRY::HKCU::Discord")
	assert.Contains(t, wide, "FULL COMMAND")
}

func TestServicesTable(t *testing.T) {
	out := servicesTable([]models.Service{
		{Name: "sshd.service", State: models.ServiceEnabled},
		{Name: "cups.service", State: models.ServiceDisabled},
	})
	assert.Contains(t, out, "sshd.service")
	assert.Contains(t, out, "disabled")
}

func TestConfirmDelete_NonInteractiveRefuses(t *testing.T) {
	ok, err := confirmDelete("/x.desktop", false)
	assert.False(t, ok)
	assert.ErrorIs(t, err, errNotConfirmed)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Enable", capitalize("enable"))
	assert.Equal(t, "", capitalize(""))
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "bootlist dev", strings.TrimSpace(buf.String()))
}
