package inventory

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/osv-scalibr/common/windows/registry"
)

// MachineHiveName is the machine hive holding the HKLM uninstall keys
const MachineHiveName = "SOFTWARE"

var errNoHive = errors.New("no hive configured for scope")

// Offline reads uninstall keys from hive files of a mounted or exported
// Windows installation.
type Offline struct {
	machineHive string
	userHive    string
}

// NewOffline creates an offline store. hiveDir is the directory holding the
// SOFTWARE hive (usually Windows\System32\config); userHive is the path of a
// NTUSER.DAT. Either may be empty.
func NewOffline(hiveDir, userHive string) *Offline {
	o := &Offline{userHive: userHive}
	if hiveDir != "" {
		o.machineHive = filepath.Join(hiveDir, MachineHiveName)
	}
	return o
}

// hiveFor maps a location to the hive file and the key path inside it.
func (o *Offline) hiveFor(loc Location) (string, string) {
	if loc.Scope == ScopeUser {
		return o.userHive, loc.Path
	}
	// The SOFTWARE hive root is HKLM\SOFTWARE itself
	path := loc.Path
	prefix := MachineHiveName + `\`
	if len(path) >= len(prefix) && strings.EqualFold(path[:len(prefix)], prefix) {
		path = path[len(prefix):]
	}
	return o.machineHive, path
}

// UninstallKeys implements Store
func (o *Offline) UninstallKeys(loc Location) ([]KeyValues, error) {
	hivePath, keyPath := o.hiveFor(loc)
	if hivePath == "" {
		return nil, fmt.Errorf("%s: %w", loc.Scope, errNoHive)
	}

	hive, err := registry.NewOfflineOpener(hivePath).Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open hive %s: %w", hivePath, err)
	}
	defer func() { _ = hive.Close() }()

	key, err := hive.OpenKey("", keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key %s: %w", keyPath, err)
	}
	subkeys, err := key.Subkeys()
	if err != nil {
		return nil, fmt.Errorf("failed to list subkeys of %s: %w", keyPath, err)
	}

	keys := make([]KeyValues, 0, len(subkeys))
	for _, sub := range subkeys {
		keys = append(keys, snapshot(func(name string) (string, bool) {
			val, err := sub.ValueString(name)
			if err != nil {
				return "", false
			}
			return val, true
		}))
	}
	return keys, nil
}
