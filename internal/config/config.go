package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "loopmark"

type Config struct {
	// KeybindsFile overrides the keybinds file location
	// (default: $XDG_CONFIG_HOME/loopmark/keybinds.txt).
	KeybindsFile string `koanf:"keybinds_file"`

	// Media backend settings
	Backend BackendConfig `koanf:"backend"`

	// Step sizes of the playback commands
	Playback PlaybackConfig `koanf:"playback"`

	// Loop controller and slot capture settings
	Loop LoopConfig `koanf:"loop"`

	// Logging settings (environment variables take precedence)
	Log LogConfig `koanf:"log"`
}

// BackendConfig selects and tunes the media backend.
type BackendConfig struct {
	// SimulatedLength is the length reported by the clock-driven backend
	// (default: 1h).
	SimulatedLength time.Duration `koanf:"simulated_length"`
}

// PlaybackConfig holds the playback command steps.
type PlaybackConfig struct {
	SeekStep   time.Duration `koanf:"seek_step"`   // default: 10s
	VolumeStep int           `koanf:"volume_step"` // default: 5
	SpeedStep  float64       `koanf:"speed_step"`  // default: 0.1
}

// LoopConfig holds loop polling and capture settings.
type LoopConfig struct {
	PollInterval  time.Duration `koanf:"poll_interval"`  // default: 100ms
	Tolerance     time.Duration `koanf:"tolerance"`      // default: 200ms
	SettleDelay   time.Duration `koanf:"settle_delay"`   // pause before frame capture (default: 200ms)
	PreviewWidth  uint          `koanf:"preview_width"`  // default: 320
	PreviewHeight uint          `koanf:"preview_height"` // default: 180
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error (default: info)
	Format string `koanf:"format"` // "text" or "json" (default: text)
	File   string `koanf:"file"`   // default: $XDG_STATE_HOME/loopmark/loopmark.log
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order; later files win and missing
// files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	// Durations are written as strings like "150ms".
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.KeybindsFile = expandPath(cfg.KeybindsFile)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/loopmark/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// KeybindsPath returns the keybinds file path, creating its directory
// under the XDG config home when no override is set.
func (c *Config) KeybindsPath() (string, error) {
	if c.KeybindsFile != "" {
		return c.KeybindsFile, nil
	}
	return xdg.ConfigFile(filepath.Join(appName, "keybinds.txt"))
}

// LogPath returns the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// GetBackendConfig returns the backend configuration with defaults applied.
func (c *Config) GetBackendConfig() BackendConfig {
	cfg := c.Backend
	if cfg.SimulatedLength <= 0 {
		cfg.SimulatedLength = time.Hour
	}
	return cfg
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 10 * time.Second
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 100 {
		cfg.VolumeStep = 5
	}
	if cfg.SpeedStep <= 0 || cfg.SpeedStep > 1 {
		cfg.SpeedStep = 0.1
	}

	return cfg
}

// GetLoopConfig returns the loop configuration with defaults applied.
func (c *Config) GetLoopConfig() LoopConfig {
	cfg := c.Loop

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 200 * time.Millisecond
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 200 * time.Millisecond
	}
	if cfg.PreviewWidth == 0 {
		cfg.PreviewWidth = 320
	}
	if cfg.PreviewHeight == 0 {
		cfg.PreviewHeight = 180
	}

	return cfg
}
