//go:build !windows

package inventory

// Live reads uninstall keys from the running system's registry. There is no
// registry outside Windows, so every location is unsupported.
type Live struct{}

// NewLive creates the live registry store
func NewLive() *Live {
	return &Live{}
}

// UninstallKeys implements Store
func (l *Live) UninstallKeys(loc Location) ([]KeyValues, error) {
	return nil, ErrUnsupported
}
