package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/cmdref/internal/atomicfile"
)

// CSVSource reads each relation from its own comma-separated file with a
// header row. Empty cells are null.
type CSVSource struct {
	Dir   string
	Files FileNames
}

// Location returns the file path of a relation.
func (s *CSVSource) Location(table Table) string {
	return filepath.Join(s.Dir, s.Files.name(table))
}

// ReadTable reads one relation's file.
func (s *CSVSource) ReadTable(ctx context.Context, table Table) (*RawTable, error) {
	path := s.Location(table)

	f, err := os.Open(path)
	if err != nil {
		return nil, storageNotFound(table, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, schemaMismatch(table, path, "file is empty, expected a header row")
	}
	if err != nil {
		return nil, storageNotFound(table, path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	raw := &RawTable{Columns: header}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, storageNotFound(table, path, err)
		}
		if len(record) > len(header) {
			return nil, schemaMismatch(table, path, "row %d has %d fields, header has %d", line, len(record), len(header))
		}

		row := make([]*string, len(header))
		for i, v := range record {
			v := v // per-iteration copy; module targets go 1.21 loop semantics
			if v != "" {
				row[i] = &v
			}
		}
		raw.Rows = append(raw.Rows, row)
	}

	return raw, nil
}

func writeCSV(dir string, files FileNames, tables map[Table]*RawTable) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	for _, table := range Tables {
		raw := tables[table]
		path := filepath.Join(dir, files.name(table))
		err := atomicfile.WriteWith(path, 0, func(w io.Writer) error {
			cw := csv.NewWriter(w)
			if err := cw.Write(raw.Columns); err != nil {
				return err
			}
			record := make([]string, len(raw.Columns))
			for _, row := range raw.Rows {
				for i, cell := range row {
					record[i] = ""
					if cell != nil {
						record[i] = *cell
					}
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
			cw.Flush()
			return cw.Error()
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
