package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/config"
	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/logging"
	"github.com/aidanlsb/cmdref/internal/ui"
)

// loadConfig reads --config, or the default config file when it exists.
func (a *app) loadConfig() error {
	if a.cfg != nil {
		return nil
	}

	var (
		cfg *config.Config
		err error
	)
	if strings.TrimSpace(a.configPath) != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return configInvalid(err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	a.cfg = cfg
	return nil
}

// resolvedConfigPath is --config, or the default config location.
func (a *app) resolvedConfigPath() string {
	if p := strings.TrimSpace(a.configPath); p != "" {
		return p
	}
	return config.DefaultPath()
}

// location resolves the catalog path and format: flags win over the config
// file, which wins over the defaults.
func (a *app) location() (loader.Format, string, error) {
	cfg := a.cfg
	if cfg == nil {
		cfg = &config.Config{}
	}

	path := cfg.DataPath()
	if p := strings.TrimSpace(a.dataPath); p != "" {
		path = p
	}

	var (
		format loader.Format
		err    error
	)
	if strings.TrimSpace(a.format) != "" {
		format, err = loader.ParseFormat(a.format)
		if err != nil {
			return "", "", invalidInput(err)
		}
	} else {
		format, err = cfg.StorageFormat()
		if err != nil {
			return "", "", configInvalid(err)
		}
	}
	return format, path, nil
}

func (a *app) fileNames() loader.FileNames {
	if a.cfg == nil {
		return loader.DefaultFileNames
	}
	return a.cfg.FileNames()
}

// session returns the process loader, creating it on first use.
func (a *app) session() (*loader.Loader, error) {
	if a.loader != nil {
		return a.loader, nil
	}

	format, path, err := a.location()
	if err != nil {
		return nil, err
	}
	source, err := loader.NewSource(format, path, a.fileNames())
	if err != nil {
		return nil, invalidInput(err)
	}

	logging.WithComponent("cli").
		WithField("format", format).
		WithField("path", path).
		Debug("catalog source selected")

	a.loader = loader.New(source)
	return a.loader, nil
}

// catalog loads the catalog once per process, with a spinner on stderr.
func (a *app) catalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	l, err := a.session()
	if err != nil {
		return nil, err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr(), "Loading catalog...")
	spin.Start()
	cat, err := l.Load(cmd.Context())
	spin.Stop()
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// complete serves dynamic shell completions. Failures complete nothing.
func (a *app) complete(kind, toComplete string) []string {
	if kind != commands.CompleteCommands {
		return nil
	}
	if err := a.loadConfig(); err != nil {
		return nil
	}
	l, err := a.session()
	if err != nil {
		return nil
	}
	cat, err := l.Load(context.Background())
	if err != nil {
		return nil
	}

	var names []string
	for _, cmd := range cat.Commands() {
		if strings.HasPrefix(cmd.Command, toComplete) {
			names = append(names, cmd.Command)
		}
	}
	sort.Strings(names)
	return names
}

// absPath makes p absolute for output and for paths saved to config.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
