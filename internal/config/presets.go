package config

import "sort"

var Presets = map[string]func(c *Config){
	"draft": func(c *Config) {
		c.DensityFactor = 2
	},
	"standard": func(c *Config) {},
	"fine": func(c *Config) {
		c.DensityFactor = 8
	},
	"smeary": func(c *Config) {
		c.Tuning.PointerFriction = 0.1
		c.Tuning.DragAttenuation = 0.7
		c.Tuning.MinDragTransfer = 0.005
	},
	"clean": func(c *Config) {
		c.Tuning.PointerFriction = 0.6
		c.Tuning.DragAttenuation = 0.3
		c.Tuning.MinDragTransfer = 0.02
	},
}

// GetPreset returns the default configuration with the named preset
// applied, or nil for an unknown name.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply layers the named preset over c. It reports whether the preset exists.
func (c *Config) Apply(preset string) bool {
	apply, ok := Presets[preset]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
