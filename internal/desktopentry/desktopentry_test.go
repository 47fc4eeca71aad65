package desktopentry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `[Desktop Entry]
Type=Application
Name=Syncthing
Exec=env GDK_BACKEND=x11 /usr/bin/syncthing serve --no-browser
# keep me
Icon=syncthing
Name[de]=Syncthing DE
`

func TestLookup(t *testing.T) {
	v, ok := Lookup(sample, KeyName)
	assert.True(t, ok)
	assert.Equal(t, "Syncthing", v)

	_, ok = Lookup(sample, KeyHidden)
	assert.False(t, ok)

	v, ok = Lookup("Name=  padded  \nName=second\n", KeyName)
	assert.True(t, ok)
	assert.Equal(t, "padded", v, "first matching line wins, value trimmed")
}

func TestIsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"no keys", "Name=a\n", true},
		{"hidden true", "Hidden=true\n", false},
		{"hidden TRUE", "Hidden=TRUE\n", false},
		{"hidden false", "Hidden=false\n", true},
		{"gnome false", "X-GNOME-Autostart-enabled=false\n", false},
		{"gnome True", "X-GNOME-Autostart-enabled=True\n", true},
		{"gnome garbage", "X-GNOME-Autostart-enabled=yes\n", false},
		{"both", "Hidden=false\nX-GNOME-Autostart-enabled=true\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEnabled(tt.content))
		})
	}
}

func TestSetEnabled_AppendsMissingKeys(t *testing.T) {
	out := SetEnabled(sample, false)
	assert.False(t, IsEnabled(out))
	assert.True(t, strings.HasPrefix(out, sample), "original lines must be untouched")
	assert.True(t, strings.HasSuffix(out, "Hidden=true\nX-GNOME-Autostart-enabled=false\n"))
}

func TestSetEnabled_RewritesInPlace(t *testing.T) {
	in := "[Desktop Entry]\nHidden=false\nName=x\nX-GNOME-Autostart-enabled=true"
	out := SetEnabled(in, false)
	assert.Equal(t, "[Desktop Entry]\nHidden=true\nName=x\nX-GNOME-Autostart-enabled=false", out)
}

func TestSetEnabled_PreservesCRLF(t *testing.T) {
	in := "[Desktop Entry]\r\nName=x\r\nHidden=false\r\n"
	out := SetEnabled(in, false)
	assert.Equal(t, "[Desktop Entry]\r\nName=x\r\nHidden=true\r\nX-GNOME-Autostart-enabled=false\r\n", out)
}

func TestSetEnabled_RoundTripKeepsUnrelatedLines(t *testing.T) {
	inputs := []string{
		sample,
		"",
		"\n",
		"Name=a",
		"[Desktop Entry]\nHidden=true\nExec=foo\n\n\nComment=with = sign\n",
		"X-GNOME-Autostart-enabled=false\nType=Application\r\n",
	}
	for _, in := range inputs {
		original := IsEnabled(in)
		out := SetEnabled(SetEnabled(in, !original), original)
		assert.Equal(t, original, IsEnabled(out))
		assert.Equal(t, unrelated(in), unrelated(out), "input %q", in)
	}
}

func TestSetEnabled_KeepsLoneBlankLine(t *testing.T) {
	assert.Equal(t, "\nHidden=true\nX-GNOME-Autostart-enabled=false\n", SetEnabled("\n", false))
}

func unrelated(content string) []string {
	var keep []string
	if content == "" {
		return keep
	}
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		if strings.HasPrefix(line, KeyHidden+"=") || strings.HasPrefix(line, KeyAutostartEnabled+"=") {
			continue
		}
		keep = append(keep, line)
	}
	return keep
}

func TestTemplate(t *testing.T) {
	out := Template("MyApp", "/usr/bin/myapp", "desc")
	assert.Equal(t, "[Desktop Entry]\nType=Application\nName=MyApp\nExec=/usr/bin/myapp\nComment=desc\nHidden=false\nX-GNOME-Autostart-enabled=true\n", out)
	assert.True(t, IsEnabled(out))
}

func TestStripEnvWrapper(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"env GDK_BACKEND=x11 /usr/bin/app --flag", "/usr/bin/app --flag"},
		{"env /usr/bin/app", "/usr/bin/app"},
		{"env A=1 B_2=two app", "app"},
		{"/usr/bin/myenv run", "/usr/bin/myenv run"},
		{"envoy --config x", "envoy --config x"},
		{"  /usr/bin/app  ", "/usr/bin/app"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripEnvWrapper(tt.in))
		})
	}
}

func TestFirstToken(t *testing.T) {
	assert.Equal(t, "/usr/bin/app", FirstToken("/usr/bin/app --x y"))
	assert.Equal(t, "app", FirstToken("app"))
	assert.Equal(t, "", FirstToken(""))
}
