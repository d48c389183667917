// Package testutil provides reusable fixtures for cmdref tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/loader"
)

// Minimal CSV fixtures mirroring the CMD_SET_MODE example.
const (
	SetModeCommandsCSV = `Command,HexCode,Description,Params
CMD_SET_MODE,0xB104,Sets mode,Mode
`
	SetModeParamsCSV = `ParamID,Type,EnumSet,Range
Mode,enum,ARM_MODE,
`
	SetModeEnumsCSV = `EnumSet,Value,Label
ARM_MODE,0,SAFE
ARM_MODE,1,LIVE
ARM_MODE,2,TEST
`
)

// TestCatalog builds a CSV catalog directory for a test.
type TestCatalog struct {
	Path    string
	t       *testing.T
	files   loader.FileNames
	content map[loader.Table]string
	omit    map[loader.Table]bool
}

// NewTestCatalog creates a catalog builder preloaded with the CMD_SET_MODE
// fixture. Call Build to write it.
func NewTestCatalog(t *testing.T) *TestCatalog {
	t.Helper()
	return &TestCatalog{
		t:     t,
		files: loader.DefaultFileNames,
		content: map[loader.Table]string{
			loader.TableCommands:   SetModeCommandsCSV,
			loader.TableParameters: SetModeParamsCSV,
			loader.TableEnums:      SetModeEnumsCSV,
		},
		omit: make(map[loader.Table]bool),
	}
}

// WithCommands replaces the commands CSV.
func (c *TestCatalog) WithCommands(csv string) *TestCatalog {
	c.content[loader.TableCommands] = csv
	return c
}

// WithParameters replaces the parameter metadata CSV.
func (c *TestCatalog) WithParameters(csv string) *TestCatalog {
	c.content[loader.TableParameters] = csv
	return c
}

// WithEnums replaces the enum definitions CSV.
func (c *TestCatalog) WithEnums(csv string) *TestCatalog {
	c.content[loader.TableEnums] = csv
	return c
}

// Without leaves a relation's file out of the directory.
func (c *TestCatalog) Without(table loader.Table) *TestCatalog {
	c.omit[table] = true
	return c
}

// Build writes the files into a fresh temp directory.
func (c *TestCatalog) Build() *TestCatalog {
	c.t.Helper()
	c.Path = c.t.TempDir()

	names := map[loader.Table]string{
		loader.TableCommands:   c.files.Commands,
		loader.TableParameters: c.files.Parameters,
		loader.TableEnums:      c.files.Enums,
	}
	for _, table := range loader.Tables {
		if c.omit[table] {
			continue
		}
		path := filepath.Join(c.Path, names[table])
		if err := os.WriteFile(path, []byte(c.content[table]), 0o644); err != nil {
			c.t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return c
}

// Source returns a CSV source over the built directory.
func (c *TestCatalog) Source() *loader.CSVSource {
	return &loader.CSVSource{Dir: c.Path, Files: c.files}
}

// WriteSample writes the built-in sample catalog in the given format and
// returns its location: a directory for CSV, a file otherwise.
func WriteSample(t *testing.T, format loader.Format) string {
	t.Helper()
	return WriteCatalog(t, format, catalog.Sample())
}

// WriteCatalog writes cat in the given format under a temp directory.
func WriteCatalog(t *testing.T, format loader.Format, cat *catalog.Catalog) string {
	t.Helper()

	dir := t.TempDir()
	var path string
	switch format {
	case loader.FormatYAML:
		path = filepath.Join(dir, "catalog.yaml")
	case loader.FormatSQLite:
		path = filepath.Join(dir, "catalog.db")
	default:
		path = filepath.Join(dir, "csv")
	}

	if err := loader.Write(context.Background(), format, path, loader.DefaultFileNames, cat); err != nil {
		t.Fatalf("failed to write %s catalog: %v", format, err)
	}
	return path
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
