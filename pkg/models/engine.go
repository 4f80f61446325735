package models

import "fmt"

// EngineFamily identifies the rendering/runtime technology of a browser install
type EngineFamily int

const (
	EngineUnknown EngineFamily = iota
	EngineLibCef
	EngineElectron
	EngineNWJS
	EngineCefSharp
	EngineMiniBlink
	EngineChromeChromium
	EngineEdge
	EngineFirefox
	EngineOther
)

var engineLabels = [...]string{
	EngineUnknown:        "Unknown",
	EngineLibCef:         "libcef",
	EngineElectron:       "Electron",
	EngineNWJS:           "NWJS",
	EngineCefSharp:       "CefSharp",
	EngineMiniBlink:      "MiniBlink",
	EngineChromeChromium: "Chrome/Chromium",
	EngineEdge:           "Edge",
	EngineFirefox:        "Firefox",
	EngineOther:          "Other",
}

// String returns the label shown to report consumers.
func (e EngineFamily) String() string {
	if e >= 0 && int(e) < len(engineLabels) {
		return engineLabels[e]
	}
	return fmt.Sprintf("EngineFamily(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler
func (e EngineFamily) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// EngineFamilies lists every family, Unknown first.
func EngineFamilies() []EngineFamily {
	out := make([]EngineFamily, len(engineLabels))
	for i := range engineLabels {
		out[i] = EngineFamily(i)
	}
	return out
}
