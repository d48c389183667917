package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/cmdref/internal/atomicfile"
)

type persistedConfig struct {
	Data   *string              `toml:"data,omitempty"`
	Format *string              `toml:"format,omitempty"`
	Files  *persistedFiles      `toml:"files,omitempty"`
	UI     *persistedUISettings `toml:"ui,omitempty"`
	Log    *persistedLog        `toml:"log,omitempty"`
}

type persistedFiles struct {
	Commands   *string `toml:"commands,omitempty"`
	Parameters *string `toml:"parameters,omitempty"`
	Enums      *string `toml:"enums,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

type persistedLog struct {
	Level      *string `toml:"level,omitempty"`
	File       *string `toml:"file,omitempty"`
	MaxSizeMB  int     `toml:"max_size_mb,omitempty"`
	MaxBackups int     `toml:"max_backups,omitempty"`
	MaxAgeDays int     `toml:"max_age_days,omitempty"`
	JSON       bool    `toml:"json,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes cfg to path atomically, omitting unset keys.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Data:   nonEmptyPtr(cfg.Data),
		Format: nonEmptyPtr(cfg.Format),
	}

	files := persistedFiles{
		Commands:   nonEmptyPtr(cfg.Files.Commands),
		Parameters: nonEmptyPtr(cfg.Files.Parameters),
		Enums:      nonEmptyPtr(cfg.Files.Enums),
	}
	if files != (persistedFiles{}) {
		out.Files = &files
	}

	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	log := persistedLog{
		Level:      nonEmptyPtr(cfg.Log.Level),
		File:       nonEmptyPtr(cfg.Log.File),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		JSON:       cfg.Log.JSON,
	}
	if log != (persistedLog{}) {
		out.Log = &log
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
