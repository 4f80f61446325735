package inventory

import (
	"strings"

	"github.com/ilexum-group/browserscan/pkg/models"
)

// Registry value names read from each uninstall subkey
const (
	valueDisplayName          = "DisplayName"
	valueInstallLocation      = "InstallLocation"
	valueInstallSource        = "InstallSource"
	valueURLInfoAbout         = "URLInfoAbout"
	valueDisplayIcon          = "DisplayIcon"
	valueUninstallString      = "UninstallString"
	valueQuietUninstallString = "QuietUninstallString"
	valueDisplayVersion       = "DisplayVersion"
	valuePublisher            = "Publisher"
)

var valueNames = []string{
	valueDisplayName,
	valueInstallLocation,
	valueInstallSource,
	valueURLInfoAbout,
	valueDisplayIcon,
	valueUninstallString,
	valueQuietUninstallString,
	valueDisplayVersion,
	valuePublisher,
}

// Values is a KeyValues snapshot of one subkey
type Values map[string]string

// StringValue implements KeyValues
func (v Values) StringValue(name string) (string, bool) {
	val, ok := v[name]
	return val, ok
}

// snapshot copies the values a record needs so the key can be closed.
func snapshot(get func(name string) (string, bool)) Values {
	vals := make(Values, len(valueNames))
	for _, name := range valueNames {
		if val, ok := get(name); ok {
			vals[name] = val
		}
	}
	return vals
}

func readValue(key KeyValues, name string) string {
	val, ok := key.StringValue(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(val, "\x00"))
}

// firstValue returns the first non-empty value among names.
func firstValue(key KeyValues, names ...string) string {
	for _, name := range names {
		if val := readValue(key, name); val != "" {
			return val
		}
	}
	return ""
}

// recordFromKey builds a record, reporting false for keys without a display name.
func recordFromKey(key KeyValues) (models.InstalledApp, bool) {
	name := readValue(key, valueDisplayName)
	if name == "" {
		return models.InstalledApp{}, false
	}

	return models.InstalledApp{
		DisplayName:     name,
		InstallLocation: firstValue(key, valueInstallLocation, valueInstallSource, valueURLInfoAbout),
		DisplayIcon:     readValue(key, valueDisplayIcon),
		UninstallString: firstValue(key, valueUninstallString, valueQuietUninstallString),
		DisplayVersion:  readValue(key, valueDisplayVersion),
		Publisher:       readValue(key, valuePublisher),
	}, true
}
