package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10*time.Millisecond, cfg.Timing.Poll)
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.Lockout)
	assert.Equal(t, 2*time.Second, cfg.Settle.Duration)
	assert.Equal(t, int32(10), cfg.Settle.Window)
	assert.Equal(t, 8, cfg.Debounce.Width)
	assert.Equal(t, 5, cfg.Blink.FastTicks)
	assert.Equal(t, 10, cfg.Blink.SlowTicks)
	assert.Equal(t, "gpiochip0", cfg.Pins.Chip)
	assert.NotEmpty(t, cfg.Broker)
	assert.NotEmpty(t, cfg.Store)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
timing:
  poll: 20ms
  lockout: 250ms
broker: tcp://10.0.0.5:1883
settle:
  duration: 3s
debounce:
  width: 16
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Timing.Poll)
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.Lockout)
	assert.Equal(t, "tcp://10.0.0.5:1883", cfg.Broker)
	assert.Equal(t, 3*time.Second, cfg.Settle.Duration)
	assert.Equal(t, 16, cfg.Debounce.Width)

	// Unset fields fall back to defaults.
	def := Default()
	assert.Equal(t, def.Settle.Window, cfg.Settle.Window)
	assert.Equal(t, def.Blink.FastTicks, cfg.Blink.FastTicks)
	assert.Equal(t, def.Store, cfg.Store)
	assert.Equal(t, def.Pins.Chip, cfg.Pins.Chip)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "lockout not shorter than settle",
			mutate: func(c *Config) {
				c.Timing.Lockout = 2 * time.Second
				c.Settle.Duration = 2 * time.Second
			},
			wantErr: "lockout duration",
		},
		{
			name:    "debounce width too small",
			mutate:  func(c *Config) { c.Debounce.Width = 0 },
			wantErr: "debounce width",
		},
		{
			name:    "debounce width too large",
			mutate:  func(c *Config) { c.Debounce.Width = 64 },
			wantErr: "debounce width",
		},
		{
			name:    "negative settle window",
			mutate:  func(c *Config) { c.Settle.Window = -1 },
			wantErr: "settle window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Broker = "tcp://roundtrip:1883"
	cfg.Timing.Poll = 25 * time.Millisecond
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
