package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/cmdref/internal/atomicfile"
	"github.com/aidanlsb/cmdref/internal/catalog"
)

// YAMLSource reads all three relations from a single YAML document with
// top-level "commands", "parameters" and "enums" sequences. Each row is a
// mapping from column name to scalar.
//
// Scalars are read through the node API so that text columns keep their
// source spelling: 0xB104 stays "0xB104" rather than decoding as 45316.
type YAMLSource struct {
	Path string
}

// Location returns the YAML file path and section.
func (s *YAMLSource) Location(table Table) string {
	return fmt.Sprintf("%s#%s", s.Path, table)
}

// ReadTable parses the document and extracts one section.
func (s *YAMLSource) ReadTable(ctx context.Context, table Table) (*RawTable, error) {
	loc := s.Location(table)

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, storageNotFound(table, loc, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, storageNotFound(table, loc, fmt.Errorf("expected a mapping with commands, parameters and enums"))
	}

	section := lookupKey(doc.Content[0], string(table))
	if section == nil {
		return nil, storageNotFound(table, loc, fmt.Errorf("section %q not found", table))
	}

	// Declared columns always exist; a key a row leaves out is null.
	raw := &RawTable{Columns: ColumnNames(table)}
	if isNull(section) {
		return raw, nil
	}
	if section.Kind != yaml.SequenceNode {
		return nil, schemaMismatch(table, loc, "section must be a list of rows")
	}

	colIndex := make(map[string]int, len(raw.Columns))
	for i, name := range raw.Columns {
		colIndex[name] = i
	}
	var rows []map[string]*string
	for i, item := range section.Content {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item.Kind != yaml.MappingNode {
			return nil, schemaMismatch(table, loc, "row %d is not a mapping", i+1)
		}
		row := make(map[string]*string, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key, val := item.Content[j].Value, item.Content[j+1]
			if val.Kind != yaml.ScalarNode {
				return nil, schemaMismatch(table, loc, "row %d: column %s must be a scalar", i+1, key)
			}
			if _, ok := colIndex[key]; !ok {
				colIndex[key] = len(raw.Columns)
				raw.Columns = append(raw.Columns, key)
			}
			row[key] = nil
			if !isNull(val) && val.Value != "" {
				v := val.Value
				row[key] = &v
			}
		}
		rows = append(rows, row)
	}

	for _, row := range rows {
		cells := make([]*string, len(raw.Columns))
		for key, v := range row {
			cells[colIndex[key]] = v
		}
		raw.Rows = append(raw.Rows, cells)
	}
	return raw, nil
}

func lookupKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

type yamlCatalog struct {
	Commands   []catalog.CommandDef `yaml:"commands"`
	Parameters []catalog.ParamMeta  `yaml:"parameters"`
	Enums      []catalog.EnumLabel  `yaml:"enums"`
}

func writeYAML(path string, cat *catalog.Catalog) error {
	doc := yamlCatalog{
		Commands:   cat.Commands(),
		Parameters: cat.Params(),
		Enums:      cat.Enums(),
	}
	return atomicfile.WriteWith(path, 0, func(w io.Writer) error {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := io.Copy(w, &buf)
		return err
	})
}
