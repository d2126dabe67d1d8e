package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 200
	DefaultHeight   = 200
	DefaultScale    = 3
	DefaultTPS      = 60
	DefaultFrames   = 300
	DefaultInterval = 16 * time.Millisecond
	MaxForceMode    = 30
	MinGrid         = 3
	MaxGrid         = 4096
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	Scale         int            `yaml:"scale"`
	ForceMode     uint8          `yaml:"force_mode"`
	IntensityOnly bool           `yaml:"intensity_only"`
	Pulse         int            `yaml:"pulse"`
	TPS           int            `yaml:"tps"`
	Audio         bool           `yaml:"audio"`
	LogLevel      string         `yaml:"log_level"`
	CPUProfile    string         `yaml:"cpu_profile"`
	Headless      HeadlessConfig `yaml:"headless"`
}

type HeadlessConfig struct {
	Frames   int           `yaml:"frames"`
	Interval time.Duration `yaml:"interval"`
	Snapshot string        `yaml:"snapshot"`
	Plot     bool          `yaml:"plot"`
	// Clicks are grid cells forced before the run starts, as [x, y].
	Clicks [][2]int `yaml:"clicks"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Scale:    DefaultScale,
		Pulse:    DefaultWidth / 4,
		TPS:      DefaultTPS,
		LogLevel: "info",
		Headless: HeadlessConfig{
			Frames:   DefaultFrames,
			Interval: DefaultInterval,
			Plot:     true,
		},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges the rest of the program relies on.
func (c *Config) Validate() error {
	switch {
	case c.Width < MinGrid || c.Width > MaxGrid:
		return fmt.Errorf("%w: width %d outside [%d, %d]", ErrInvalid, c.Width, MinGrid, MaxGrid)
	case c.Height < MinGrid || c.Height > MaxGrid:
		return fmt.Errorf("%w: height %d outside [%d, %d]", ErrInvalid, c.Height, MinGrid, MaxGrid)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale %d", ErrInvalid, c.Scale)
	case c.ForceMode > MaxForceMode:
		return fmt.Errorf("%w: force_mode %d above %d", ErrInvalid, c.ForceMode, MaxForceMode)
	case c.Pulse < 0:
		return fmt.Errorf("%w: pulse %d", ErrInvalid, c.Pulse)
	case c.TPS < 1:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	case c.Headless.Frames < 0:
		return fmt.Errorf("%w: headless.frames %d", ErrInvalid, c.Headless.Frames)
	case c.Headless.Interval <= 0:
		return fmt.Errorf("%w: headless.interval %v", ErrInvalid, c.Headless.Interval)
	}
	for _, p := range c.Headless.Clicks {
		if p[0] < 0 || p[0] >= c.Width || p[1] < 0 || p[1] >= c.Height {
			return fmt.Errorf("%w: click %v outside %dx%d grid", ErrInvalid, p, c.Width, c.Height)
		}
	}
	return nil
}
