//go:build windows

package inventory

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// Live reads uninstall keys from the running system's registry
type Live struct{}

// NewLive creates the live registry store
func NewLive() *Live {
	return &Live{}
}

func rootFor(scope Scope) (registry.Key, uint32) {
	switch scope {
	case ScopeUser:
		return registry.CURRENT_USER, 0
	case ScopeMachine32:
		// The WOW6432Node path already selects the 32-bit view
		return registry.LOCAL_MACHINE, 0
	default:
		return registry.LOCAL_MACHINE, registry.WOW64_64KEY
	}
}

// UninstallKeys implements Store
func (l *Live) UninstallKeys(loc Location) ([]KeyValues, error) {
	root, view := rootFor(loc.Scope)
	key, err := registry.OpenKey(root, loc.Path, registry.READ|view)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s\\%s: %w", loc.Scope, loc.Path, err)
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s\\%s: %w", loc.Scope, loc.Path, err)
	}

	keys := make([]KeyValues, 0, len(names))
	for _, name := range names {
		sub, err := registry.OpenKey(key, name, registry.QUERY_VALUE|view)
		if err != nil {
			continue
		}
		keys = append(keys, snapshot(func(value string) (string, bool) {
			return liveString(sub, value)
		}))
		sub.Close()
	}
	return keys, nil
}

func liveString(key registry.Key, name string) (string, bool) {
	val, valType, err := key.GetStringValue(name)
	if err != nil {
		return "", false
	}
	if valType == registry.EXPAND_SZ {
		if expanded, err := registry.ExpandString(val); err == nil {
			val = expanded
		}
	}
	return val, true
}
