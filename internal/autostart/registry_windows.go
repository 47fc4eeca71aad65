//go:build windows

package autostart

import (
	"golang.org/x/sys/windows/registry"

	"github.com/Guliveer/bootlist/internal/locator"
)

// runKeys is the RunKeyStore backed by the live Windows registry.
type runKeys struct{}

func rootKey(hive locator.Hive) registry.Key {
	if hive == locator.HKCU {
		return registry.CURRENT_USER
	}
	return registry.LOCAL_MACHINE
}

// Values reads every string value under the hive's run-key. Values of
// other types are skipped.
func (runKeys) Values(hive locator.Hive) ([]RunValue, error) {
	k, err := registry.OpenKey(rootKey(hive), RunKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, err
	}
	values := make([]RunValue, 0, len(names))
	for _, name := range names {
		data, _, err := k.GetStringValue(name)
		if err != nil {
			// REG_BINARY, REG_DWORD and friends cannot hold a command.
			continue
		}
		values = append(values, RunValue{Name: name, Data: data})
	}
	return values, nil
}

// DeleteValue opens the run-key with only SET_VALUE|QUERY_VALUE access and
// deletes name.
func (runKeys) DeleteValue(hive locator.Hive, name string) error {
	k, err := registry.OpenKey(rootKey(hive), RunKeyPath, registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	return k.DeleteValue(name)
}
