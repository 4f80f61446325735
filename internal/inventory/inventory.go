// Package inventory enumerates installed software from the host's software registry
package inventory

import (
	"context"
	"errors"

	"github.com/ilexum-group/browserscan/internal/utils"
	"github.com/ilexum-group/browserscan/pkg/models"
)

// ErrUnsupported is returned by stores that cannot read on this platform
var ErrUnsupported = errors.New("inventory store not supported on this platform")

// Inventory produces software records. Enumerate never fails; sources
// that cannot be read contribute no records.
type Inventory interface {
	Enumerate(ctx context.Context) []models.InstalledApp
}

// Count returns the number of records inv enumerates.
func Count(ctx context.Context, inv Inventory) int {
	return len(inv.Enumerate(ctx))
}

// Multi concatenates inventories in order
type Multi []Inventory

// Enumerate implements Inventory
func (m Multi) Enumerate(ctx context.Context) []models.InstalledApp {
	apps := make([]models.InstalledApp, 0)
	for _, inv := range m {
		if ctx.Err() != nil {
			break
		}
		apps = append(apps, inv.Enumerate(ctx)...)
	}
	return apps
}

// Scope names one of the registry locations holding uninstall entries
type Scope string

const (
	// ScopeMachine64 is the native machine-wide view
	ScopeMachine64 Scope = "HKLM64"
	// ScopeMachine32 is the 32-bit compatibility view on 64-bit Windows
	ScopeMachine32 Scope = "HKLM32"
	// ScopeUser is the current user's view
	ScopeUser Scope = "HKCU"
)

// Location is a registry key whose subkeys are uninstall entries
type Location struct {
	Scope Scope
	Path  string
}

// DefaultLocations are scanned in this order without deduplication.
var DefaultLocations = []Location{
	{ScopeMachine64, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{ScopeMachine32, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
	{ScopeUser, `Software\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// KeyValues exposes the string values of one uninstall subkey
type KeyValues interface {
	StringValue(name string) (string, bool)
}

// Store reads the uninstall subkeys below a location, in enumeration order
type Store interface {
	UninstallKeys(loc Location) ([]KeyValues, error)
}

// Registry is the registry-backed Inventory
type Registry struct {
	store     Store
	locations []Location
}

// NewRegistry creates a registry inventory. Without locations the
// DefaultLocations are used.
func NewRegistry(store Store, locations ...Location) *Registry {
	if len(locations) == 0 {
		locations = DefaultLocations
	}
	return &Registry{store: store, locations: locations}
}

// Enumerate implements Inventory
func (r *Registry) Enumerate(ctx context.Context) []models.InstalledApp {
	apps := make([]models.InstalledApp, 0)
	for _, loc := range r.locations {
		if ctx.Err() != nil {
			break
		}
		keys, err := r.store.UninstallKeys(loc)
		if err != nil {
			// Some locations do not exist on every host
			utils.LogDebug("Inventory location unavailable", map[string]string{
				"scope": string(loc.Scope),
				"path":  loc.Path,
				"error": err.Error(),
			})
			continue
		}
		for _, key := range keys {
			app, ok := recordFromKey(key)
			if !ok {
				continue
			}
			app.Source = string(loc.Scope)
			apps = append(apps, app)
		}
	}
	return apps
}
