// Package config handles TOML-based configuration loading and validation.
// TOML is parsed as data only — no code execution is possible.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	OutputDir    string `toml:"output_dir"`     // Where resolved media is written
	MaxPayloadMB int    `toml:"max_payload_mb"` // Per-item download cap
	SearchLimit  int    `toml:"search_limit"`   // Default item cap for searches
	Transcode    bool   `toml:"transcode"`      // Re-encode videos with ffmpeg
	History      bool   `toml:"history"`        // Record resolutions in the history DB
	Debug        bool   `toml:"debug"`

	// Upstream hosts. Overridable because mirrors come and go.
	ResolverBase  string `toml:"resolver_base"`  // Instagram/YouTube resolver API
	TikwmBase     string `toml:"tikwm_base"`     // TikTok resolver API
	PinterestBase string `toml:"pinterest_base"` // Pinterest frontend
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		OutputDir:     "~/Downloads/magpie",
		MaxPayloadMB:  64,
		SearchLimit:   10,
		Transcode:     true,
		History:       true,
		Debug:         false,
		ResolverBase:  "https://nayan-video-downloader.vercel.app",
		TikwmBase:     "https://www.tikwm.com",
		PinterestBase: "https://br.pinterest.com",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "magpie"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "magpie"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.MaxPayloadMB < 1 || c.MaxPayloadMB > 512 {
		return fmt.Errorf("max_payload_mb %d out of range (1-512)", c.MaxPayloadMB)
	}
	if c.SearchLimit < 1 || c.SearchLimit > 50 {
		return fmt.Errorf("search_limit %d out of range (1-50)", c.SearchLimit)
	}
	for name, base := range map[string]string{
		"resolver_base":  c.ResolverBase,
		"tikwm_base":     c.TikwmBase,
		"pinterest_base": c.PinterestBase,
	} {
		if !strings.HasPrefix(base, "https://") {
			return fmt.Errorf("%s must be an https:// URL, got %q", name, base)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	return nil
}

// ExpandOutputDir resolves ~ in the output directory path.
func (c *Config) ExpandOutputDir() (string, error) {
	dir := c.OutputDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the resolution history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "magpie", "history.db"), nil
}
