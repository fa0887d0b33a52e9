package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/etchsim/internal/command"
	"github.com/san-kum/etchsim/internal/etch"
)

const (
	DefaultThickness     = 0.01
	DefaultDensityFactor = 5.0
	DefaultDataDir       = ".etchsim"
	DefaultLogLevel      = "info"
)

type Config struct {
	CoatingThickness float64      `yaml:"coating_thickness"`
	DensityFactor    float64      `yaml:"density_factor"`
	Density          float64      `yaml:"density,omitempty"` // overrides DensityFactor when positive
	Tuning           TuningConfig `yaml:"tuning"`
	Output           OutputConfig `yaml:"output"`
	DataDir          string       `yaml:"data_dir"`
	LogLevel         string       `yaml:"log_level"`
}

type TuningConfig struct {
	PointerFriction float64 `yaml:"pointer_friction"`
	DragDirection   float64 `yaml:"drag_direction"`
	DragAttenuation float64 `yaml:"drag_attenuation"`
	MinDragTransfer float64 `yaml:"min_drag_transfer"`
}

// TuningNames lists the tuning keys accepted by Set, in yaml spelling.
var TuningNames = []string{"pointer_friction", "drag_direction", "drag_attenuation", "min_drag_transfer"}

// Set assigns the tuning value named by its yaml key.
func (t *TuningConfig) Set(name string, v float64) error {
	switch name {
	case "pointer_friction":
		t.PointerFriction = v
	case "drag_direction":
		t.DragDirection = v
	case "drag_attenuation":
		t.DragAttenuation = v
	case "min_drag_transfer":
		t.MinDragTransfer = v
	default:
		return fmt.Errorf("unknown tuning parameter %q (available: %v)", name, TuningNames)
	}
	return nil
}

type OutputConfig struct {
	Image string `yaml:"image"`
	SVG   string `yaml:"svg,omitempty"`
	CSV   string `yaml:"csv,omitempty"`
	Save  bool   `yaml:"save"`
}

func DefaultConfig() *Config {
	t := etch.DefaultTuning()
	return &Config{
		CoatingThickness: DefaultThickness,
		DensityFactor:    DefaultDensityFactor,
		Tuning: TuningConfig{
			PointerFriction: t.PointerFriction,
			DragDirection:   t.DragDirection,
			DragAttenuation: t.DragAttenuation,
			MinDragTransfer: t.MinDragTransfer,
		},
		Output: OutputConfig{
			Image: "etch.png",
			Save:  true,
		},
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys missing from the file keep
// their base values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DensityFor returns the sampling density for a stylus of the given radius:
// the explicit density when set, else DensityFactor grid points per radius.
func (c *Config) DensityFor(radius float64) float64 {
	if c.Density > 0 {
		return c.Density
	}
	return c.DensityFactor / radius
}

func (c *Config) EtchTuning() etch.Tuning {
	return etch.Tuning{
		PointerFriction: c.Tuning.PointerFriction,
		DragDirection:   c.Tuning.DragDirection,
		DragAttenuation: c.Tuning.DragAttenuation,
		MinDragTransfer: c.Tuning.MinDragTransfer,
	}
}

// Params combines the configuration with a command file header.
func (c *Config) Params(f *command.File) etch.Params {
	return etch.Params{
		Thickness: c.CoatingThickness,
		Extent:    f.Extent(),
		Density:   c.DensityFor(f.PointerRadius),
		Start:     f.Start(),
		Radius:    f.PointerRadius,
		Tuning:    c.EtchTuning(),
	}
}
