package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Source reads raw relations from one storage location.
//
// Implementations must be safe for concurrent ReadTable calls on different
// tables; the Loader reads all three relations in parallel.
type Source interface {
	// ReadTable returns the raw rows of one relation. Errors wrap
	// ErrStorageNotFound or ErrSchemaMismatch.
	ReadTable(ctx context.Context, table Table) (*RawTable, error)

	// Location describes where a relation lives, for error messages.
	Location(table Table) string
}

// Format selects a storage backend.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatCSV    Format = "csv"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Formats lists the concrete formats.
var Formats = []Format{FormatCSV, FormatYAML, FormatSQLite}

// ParseFormat validates a user-supplied format name. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatYAML, FormatSQLite:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "db", "sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q (want csv, yaml or sqlite)", s)
	}
}

// DetectFormat picks a format from a catalog path: SQLite and YAML catalogs
// are single files recognised by extension, anything else is a CSV directory.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// FileNames are the CSV file names of the three relations.
type FileNames struct {
	Commands   string
	Parameters string
	Enums      string
}

// DefaultFileNames are the well-known CSV names.
var DefaultFileNames = FileNames{
	Commands:   "master_commands.csv",
	Parameters: "parameter_metadata.csv",
	Enums:      "enum_definitions.csv",
}

func (f FileNames) name(t Table) string {
	var name, fallback string
	switch t {
	case TableCommands:
		name, fallback = f.Commands, DefaultFileNames.Commands
	case TableParameters:
		name, fallback = f.Parameters, DefaultFileNames.Parameters
	case TableEnums:
		name, fallback = f.Enums, DefaultFileNames.Enums
	}
	if name == "" {
		return fallback
	}
	return name
}

// NewSource returns the Source for a catalog location. FormatAuto is
// resolved with DetectFormat.
func NewSource(format Format, path string, files FileNames) (Source, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	switch format {
	case FormatCSV:
		return &CSVSource{Dir: path, Files: files}, nil
	case FormatYAML:
		return &YAMLSource{Path: path}, nil
	case FormatSQLite:
		return &SQLiteSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
}
