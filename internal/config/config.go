// Package config handles the cmdref configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/logging"
)

// Config represents the cmdref configuration.
type Config struct {
	// Data is the catalog location: a CSV directory, a YAML file or a SQLite
	// file. Relative paths are resolved against the config file's directory.
	Data string `toml:"data"`

	// Format forces a storage format: auto, csv, yaml or sqlite.
	Format string `toml:"format"`

	// Files overrides the CSV file names.
	Files FilesConfig `toml:"files"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Log controls diagnostic logging.
	Log LogConfig `toml:"log"`

	// path is where the config was loaded from, empty for defaults.
	path string
}

// FilesConfig names the three CSV files of a catalog directory.
type FilesConfig struct {
	Commands   string `toml:"commands"`
	Parameters string `toml:"parameters"`
	Enums      string `toml:"enums"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// LogConfig configures logging. Level is a logrus level name.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	JSON       bool   `toml:"json"`
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// DataPath returns the catalog location, defaulting to the working
// directory.
func (c *Config) DataPath() string {
	data := strings.TrimSpace(c.Data)
	if data == "" {
		return "."
	}
	data = expandHome(data)
	if !filepath.IsAbs(data) && c.path != "" {
		return filepath.Join(filepath.Dir(c.path), data)
	}
	return data
}

// StorageFormat parses Format.
func (c *Config) StorageFormat() (loader.Format, error) {
	f, err := loader.ParseFormat(c.Format)
	if err != nil {
		return "", fmt.Errorf("config %s: %w", c.path, err)
	}
	return f, nil
}

// FileNames returns the CSV file names with defaults filled in.
func (c *Config) FileNames() loader.FileNames {
	names := loader.DefaultFileNames
	if v := strings.TrimSpace(c.Files.Commands); v != "" {
		names.Commands = v
	}
	if v := strings.TrimSpace(c.Files.Parameters); v != "" {
		names.Parameters = v
	}
	if v := strings.TrimSpace(c.Files.Enums); v != "" {
		names.Enums = v
	}
	return names
}

// Logging converts the [log] section into logging settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		JSON:       c.Log.JSON,
		File:       expandHome(c.Log.File),
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logging.WithComponent("config").
			WithField("keys", strings.Join(keys, ", ")).
			Warn("ignoring unknown config keys")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	config.path = path
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/cmdref/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "cmdref", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/cmdref/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cmdref", "config.toml"), nil
}

const defaultConfig = `# cmdref configuration

# Catalog location: a directory of CSV files, a .yaml file or a .db file.
# Relative paths are resolved against this file's directory.
# data = "/path/to/catalog"

# Storage format: auto, csv, yaml or sqlite.
# format = "auto"

# CSV file names inside the catalog directory.
# [files]
# commands = "master_commands.csv"
# parameters = "parameter_metadata.csv"
# enums = "enum_definitions.csv"

# Optional UI accent color. ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"

# Diagnostic logging. Logs go to stderr, and also to file when set.
# [log]
# level = "warn"
# file = "~/.local/state/cmdref/cmdref.log"
# max_size_mb = 10
# max_backups = 3
# max_age_days = 28
# json = false
`

// CreateDefault writes a commented config template to path if no file
// exists there. It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
