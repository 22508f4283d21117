package config

import "fmt"

// Preset names a commonly used filter chain.
type Preset string

const (
	PresetDefault  Preset = "default"
	PresetFast     Preset = "fast"
	PresetAccurate Preset = "accurate"
	PresetDeint    Preset = "deint"
)

var presetSpecs = map[Preset]string{
	PresetDefault:  "de",
	PresetFast:     "fa",
	PresetAccurate: "ac",
	PresetDeint:    "de,lb",
}

// Presets lists the preset names in a stable order.
func Presets() []Preset {
	return []Preset{PresetDefault, PresetFast, PresetAccurate, PresetDeint}
}

// PresetSpec returns the filter chain for a preset. An empty name is the default.
func PresetSpec(p Preset) (string, error) {
	if p == "" {
		p = PresetDefault
	}
	spec, ok := presetSpecs[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, p)
	}
	return spec, nil
}
