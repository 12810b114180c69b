package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Board and timing defaults
const (
	DefaultGridSize      = 20
	DefaultTickInterval  = 100 * time.Millisecond
	DefaultFrameInterval = 16600 * time.Microsecond

	MinGridSize = 2
	MaxGridSize = 100
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds the tunable constants of a session
type Config struct {
	GridSize      int           `yaml:"gridSize"`
	TickInterval  time.Duration `yaml:"tickInterval"`  // logic tick period
	FrameInterval time.Duration `yaml:"frameInterval"` // presentation tick period
	Seed          uint64        `yaml:"seed"`          // 0 picks a time-based seed
	Sound         bool          `yaml:"sound"`
	LogFile       string        `yaml:"logFile"` // empty keeps the frontend default
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		GridSize:      DefaultGridSize,
		TickInterval:  DefaultTickInterval,
		FrameInterval: DefaultFrameInterval,
		Sound:         true,
	}
}

// Parse overlays YAML data onto the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks ranges of all fields
func (c *Config) Validate() error {
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return fmt.Errorf("%w: gridSize %d outside [%d, %d]", ErrInvalid, c.GridSize, MinGridSize, MaxGridSize)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tickInterval must be positive, got %v", ErrInvalid, c.TickInterval)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frameInterval must be positive, got %v", ErrInvalid, c.FrameInterval)
	}
	return nil
}

// EffectiveSeed returns Seed, or a time-based seed when it is zero
func (c *Config) EffectiveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
