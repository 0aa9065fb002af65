package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dinktools/chess/pkg/pipeline"
)

// Config holds persistent user preferences loaded from
// ~/.config/chess/config.toml. Command-line flags override these values.
type Config struct {
	// KeyColor is the default transparency key: white, black or none.
	KeyColor string `toml:"key_color"`

	// Tolerance is the default per-channel key match tolerance.
	Tolerance int `toml:"tolerance"`

	// OutputDir is the default directory for converted files. Empty means
	// outputs are written next to their inputs.
	OutputDir string `toml:"output_dir"`

	// NoCache disables the conversion cache by default.
	NoCache bool `toml:"no_cache"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		KeyColor:  pipeline.DefaultKeyColor,
		Tolerance: 0,
	}
}

// LoadConfig reads the config file at path. Fields absent from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the user config file, falling back to the
// defaults when the file is missing or unreadable.
func LoadConfigOrDefault() *Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}
