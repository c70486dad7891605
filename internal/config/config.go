package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/reactorsim/internal/reactor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataPath    = "reactor.bin"
	DefaultBackend     = "file"
	DefaultChartOutput = "transient.png"
	DefaultChartWidth  = 1024
	DefaultChartHeight = 640
	DefaultASCIIWidth  = 72
	DefaultASCIIHeight = 16
	DefaultTheme       = "lab"
)

// ErrInvalidConfig wraps every configuration problem found by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	DataPath string                    `yaml:"data_path"`
	Backend  string                    `yaml:"backend"`
	Chart    ChartConfig               `yaml:"chart"`
	Theme    string                    `yaml:"theme"`
	Presets  map[string]reactor.Params `yaml:"presets,omitempty"`
}

type ChartConfig struct {
	// Output is the PNG or SVG path; empty disables the image.
	Output      string `yaml:"output"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	ASCII       bool   `yaml:"ascii"`
	ASCIIWidth  int    `yaml:"ascii_width"`
	ASCIIHeight int    `yaml:"ascii_height"`
}

func DefaultConfig() *Config {
	return &Config{
		DataPath: DefaultDataPath,
		Backend:  DefaultBackend,
		Chart: ChartConfig{
			Output:      DefaultChartOutput,
			Width:       DefaultChartWidth,
			Height:      DefaultChartHeight,
			ASCII:       true,
			ASCIIWidth:  DefaultASCIIWidth,
			ASCIIHeight: DefaultASCIIHeight,
		},
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the backend kind, chart sizes and every user preset.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("%w: backend %q (want file or sqlite)", ErrInvalidConfig, c.Backend))
	}
	if c.DataPath == "" {
		errs = append(errs, fmt.Errorf("%w: empty data_path", ErrInvalidConfig))
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 || c.Chart.ASCIIWidth < 0 || c.Chart.ASCIIHeight < 0 {
		errs = append(errs, fmt.Errorf("%w: negative chart size", ErrInvalidConfig))
	}
	for name, p := range c.Presets {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: preset %s: %w", ErrInvalidConfig, name, err))
		}
	}

	return errors.Join(errs...)
}

// Preset looks a name up in the user presets first, then the built-ins.
func (c *Config) Preset(name string) (reactor.Params, bool) {
	if p, ok := c.Presets[name]; ok {
		return p, true
	}
	return GetPreset(name)
}

// PresetNames lists the presets defined in the config file, sorted.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StorePath is DataPath, except that the stock binary image name maps to
// reactor.db when the SQLite backend is selected.
func (c *Config) StorePath() string {
	if c.Backend == "sqlite" && c.DataPath == DefaultDataPath {
		return "reactor.db"
	}
	return c.DataPath
}
