package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	serr "imgview/internal/errors"
	"imgview/pkg/types"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the viewer configuration.
type Config struct {
	Viewer struct {
		MaxWidth     int `yaml:"max_width"`     // Largest displayed image width before scaling down
		MaxHeight    int `yaml:"max_height"`    // Largest displayed image height before scaling down
		WindowWidth  int `yaml:"window_width"`  // Initial GUI window width
		WindowHeight int `yaml:"window_height"` // Initial GUI window height
	} `yaml:"viewer"`
	Cache struct {
		Left    int `yaml:"left"`    // Entries before the selection kept decoded
		Right   int `yaml:"right"`   // Entries after the selection kept decoded
		Workers int `yaml:"workers"` // Concurrent background decodes
	} `yaml:"cache"`
	Sort struct {
		Default   string `yaml:"default"`   // Field applied after every scan: mtime, btime, size or none
		Ascending bool   `yaml:"ascending"` // Initial direction of the default field
	} `yaml:"sort"`
	Listing struct {
		Exclude         []string `yaml:"exclude"`          // Glob patterns matched against file names
		ExtraExtensions []string `yaml:"extra_extensions"` // Additional extensions treated as images
	} `yaml:"listing"`
	Watch struct {
		Enabled    bool `yaml:"enabled"`     // Rescan the open directory when images appear or vanish
		DebounceMs int  `yaml:"debounce_ms"` // Quiet period before a rescan
	} `yaml:"watch"`
	Logging struct {
		Debug bool   `yaml:"debug"`
		JSON  bool   `yaml:"json"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Metrics struct {
		Addr string `yaml:"addr"` // host:port for /metrics, empty disables
	} `yaml:"metrics"`
}

// DefaultPath returns ~/.config/imgview/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "imgview", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decoding on top of the defaults leaves unset keys untouched
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Viewer.MaxWidth = 1024
	cfg.Viewer.MaxHeight = 728
	cfg.Viewer.WindowWidth = 1100
	cfg.Viewer.WindowHeight = 820

	cfg.Cache.Left = 1
	cfg.Cache.Right = 1
	cfg.Cache.Workers = 4

	cfg.Sort.Default = types.SortModTime.String()
	cfg.Sort.Ascending = true

	cfg.Listing.Exclude = []string{"._*"}
	cfg.Listing.ExtraExtensions = []string{}

	cfg.Watch.Enabled = true
	cfg.Watch.DebounceMs = 250

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return serr.NewConfigError("nil config", "", serr.InvalidConfig, nil)
	}

	if c.Viewer.MaxWidth < 1 || c.Viewer.MaxHeight < 1 {
		return serr.NewConfigError("max image size must be positive", "viewer", serr.InvalidConfig, nil)
	}
	if c.Viewer.WindowWidth < 0 || c.Viewer.WindowHeight < 0 {
		return serr.NewConfigError("window size must be >= 0", "viewer", serr.InvalidConfig, nil)
	}

	if c.Cache.Left < 0 || c.Cache.Right < 0 {
		return serr.NewConfigError("neighbor window must be >= 0", "cache", serr.InvalidConfig, nil)
	}
	if c.Cache.Workers < 1 {
		return serr.NewConfigError("workers must be >= 1", "cache.workers", serr.InvalidConfig, nil)
	}

	if _, err := types.ParseSortField(c.Sort.Default); err != nil {
		return serr.NewConfigError("invalid sort field", "sort.default", serr.InvalidConfig, err)
	}

	for i, pattern := range c.Listing.Exclude {
		if pattern == "" {
			return serr.NewConfigError(fmt.Sprintf("exclude pattern %d is empty", i), "listing.exclude", serr.InvalidConfig, nil)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return serr.NewConfigError(fmt.Sprintf("exclude pattern %q", pattern), "listing.exclude", serr.InvalidConfig, err)
		}
	}

	for _, ext := range c.Listing.ExtraExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return serr.NewConfigError(fmt.Sprintf("extension %q must start with a dot", ext), "listing.extra_extensions", serr.InvalidConfig, nil)
		}
	}

	if c.Watch.DebounceMs < 0 {
		return serr.NewConfigError("debounce must be >= 0", "watch.debounce_ms", serr.InvalidConfig, nil)
	}

	return nil
}

// SortField returns the parsed default sort field. Validate guarantees it parses.
func (c *Config) SortField() types.SortField {
	field, _ := types.ParseSortField(c.Sort.Default)
	return field
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Cache.Workers = 2
	cfg.Watch.Enabled = false
	cfg.Watch.DebounceMs = 0
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
