// Package config loads the daemon configuration from a YAML file.
// Missing files and missing fields fall back to defaults, so a bare unit
// runs with the production wiring out of the box.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/lift-controller/internal/gpio"
)

// Config represents the application configuration.
type Config struct {
	Pins     gpio.Pins      `yaml:"pins"`
	Timing   TimingConfig   `yaml:"timing"`
	Blink    BlinkConfig    `yaml:"blink"`
	Broker   string         `yaml:"broker"`
	HTTP     string         `yaml:"http"`
	Store    string         `yaml:"store"`
	Settle   SettleConfig   `yaml:"settle"`
	Debounce DebounceConfig `yaml:"debounce"`
}

// TimingConfig contains loop and timeout durations.
type TimingConfig struct {
	Poll      time.Duration `yaml:"poll"`      // tick interval
	Lockout   time.Duration `yaml:"lockout"`   // post-autostop guard
	Heartbeat time.Duration `yaml:"heartbeat"` // system heartbeat (0 disables)
}

// BlinkConfig contains blink periods in tick counts.
type BlinkConfig struct {
	FastTicks int `yaml:"fast_ticks"`
	SlowTicks int `yaml:"slow_ticks"`
}

// SettleConfig contains the middle-position settle parameters.
type SettleConfig struct {
	Duration time.Duration `yaml:"duration"` // mechanical settle grace period
	Window   int32         `yaml:"window"`   // clicks below middle threshold
}

// DebounceConfig contains the input debounce parameters.
type DebounceConfig struct {
	Width int `yaml:"width"` // agreeing samples for a stable reading
}

// Default returns the production configuration.
func Default() *Config {
	return &Config{
		Pins: gpio.DefaultPins(),
		Timing: TimingConfig{
			Poll:      10 * time.Millisecond,
			Lockout:   500 * time.Millisecond,
			Heartbeat: 15 * time.Minute,
		},
		Blink: BlinkConfig{
			FastTicks: 5,
			SlowTicks: 10,
		},
		Broker: "tcp://192.168.1.200:1883",
		HTTP:   ":80",
		Store:  "/var/lib/lift-controller/thresholds.bin",
		Settle: SettleConfig{
			Duration: 2 * time.Second,
			Window:   10,
		},
		Debounce: DebounceConfig{
			Width: 8,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults fills required fields that the file left unset.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Pins.Chip == "" {
		c.Pins.Chip = def.Pins.Chip
	}

	if c.Timing.Poll == 0 {
		c.Timing.Poll = def.Timing.Poll
	}
	if c.Timing.Lockout == 0 {
		c.Timing.Lockout = def.Timing.Lockout
	}

	if c.Blink.FastTicks == 0 {
		c.Blink.FastTicks = def.Blink.FastTicks
	}
	if c.Blink.SlowTicks == 0 {
		c.Blink.SlowTicks = def.Blink.SlowTicks
	}

	if c.Broker == "" {
		c.Broker = def.Broker
	}
	if c.Store == "" {
		c.Store = def.Store
	}

	if c.Settle.Duration == 0 {
		c.Settle.Duration = def.Settle.Duration
	}
	if c.Settle.Window == 0 {
		c.Settle.Window = def.Settle.Window
	}

	if c.Debounce.Width == 0 {
		c.Debounce.Width = def.Debounce.Width
	}
}

// Validate rejects configurations the controller cannot run with.
func (c *Config) Validate() error {
	if c.Timing.Lockout >= c.Settle.Duration {
		return fmt.Errorf("lockout duration (%v) must be shorter than settle duration (%v)",
			c.Timing.Lockout, c.Settle.Duration)
	}
	if c.Debounce.Width < 1 || c.Debounce.Width > 32 {
		return fmt.Errorf("debounce width %d out of range [1,32]", c.Debounce.Width)
	}
	if c.Settle.Window < 0 {
		return fmt.Errorf("settle window must not be negative")
	}
	return nil
}
