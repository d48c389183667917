package loader

import (
	"strconv"
	"strings"

	"github.com/aidanlsb/cmdref/internal/catalog"
)

// Table names one of the three relations.
type Table string

const (
	TableCommands   Table = "commands"
	TableParameters Table = "parameters"
	TableEnums      Table = "enums"
)

// Tables lists the relations in load order.
var Tables = []Table{TableCommands, TableParameters, TableEnums}

// Kind is the declared type of a column.
type Kind int

const (
	// KindText cells are kept verbatim, even when they look numeric.
	KindText Kind = iota
	// KindInt cells are parsed as base-10 integers.
	KindInt
)

// ColumnSpec declares one required column.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Schemas declares the required columns of each relation. Types are applied
// at load time rather than inferred from the data.
var Schemas = map[Table][]ColumnSpec{
	TableCommands: {
		{Name: "Command", Kind: KindText},
		{Name: "HexCode", Kind: KindText},
		{Name: "Description", Kind: KindText},
		{Name: "Params", Kind: KindText},
	},
	TableParameters: {
		{Name: "ParamID", Kind: KindText},
		{Name: "Type", Kind: KindText},
		{Name: "EnumSet", Kind: KindText},
		{Name: "Range", Kind: KindText},
	},
	TableEnums: {
		{Name: "EnumSet", Kind: KindText},
		{Name: "Value", Kind: KindInt},
		{Name: "Label", Kind: KindText},
	},
}

// RawTable is a relation as read from storage: a header and rows of
// optional text cells. A nil cell is null.
type RawTable struct {
	Columns []string
	Rows    [][]*string
}

// columnKind returns the declared kind of a column. Undeclared columns are
// text.
func columnKind(t Table, name string) Kind {
	for _, spec := range Schemas[t] {
		if spec.Name == name {
			return spec.Kind
		}
	}
	return KindText
}

// ColumnNames returns the required column names of a relation.
func ColumnNames(t Table) []string {
	specs := Schemas[t]
	names := make([]string, len(specs))
	for i, c := range specs {
		names[i] = c.Name
	}
	return names
}

// rowReader resolves declared columns against a raw header.
type rowReader struct {
	table Table
	path  string
	index map[string]int
}

func newRowReader(table Table, path string, raw *RawTable) (*rowReader, error) {
	index := make(map[string]int, len(raw.Columns))
	for i, name := range raw.Columns {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range Schemas[table] {
		if _, ok := index[col.Name]; !ok {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return nil, schemaMismatch(table, path, "missing required column(s): %s", strings.Join(missing, ", "))
	}

	return &rowReader{table: table, path: path, index: index}, nil
}

func (r *rowReader) cell(row []*string, column string) *string {
	i := r.index[column]
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func (r *rowReader) text(row []*string, column string) string {
	return catalog.Deref(r.cell(row, column))
}

func (r *rowReader) integer(row []*string, rowNum int, column string) (int, error) {
	v := r.cell(row, column)
	if v == nil {
		return 0, schemaMismatch(r.table, r.path, "row %d: column %s is empty, want integer", rowNum, column)
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		return 0, schemaMismatch(r.table, r.path, "row %d: column %s: %q is not an integer", rowNum, column, *v)
	}
	return n, nil
}

func decodeCommands(path string, raw *RawTable) ([]catalog.CommandDef, error) {
	r, err := newRowReader(TableCommands, path, raw)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.CommandDef, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		out = append(out, catalog.CommandDef{
			Command:     r.text(row, "Command"),
			HexCode:     r.text(row, "HexCode"),
			Description: r.text(row, "Description"),
			Params:      r.cell(row, "Params"),
		})
	}
	return out, nil
}

func decodeParams(path string, raw *RawTable) ([]catalog.ParamMeta, error) {
	r, err := newRowReader(TableParameters, path, raw)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.ParamMeta, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		out = append(out, catalog.ParamMeta{
			ParamID: r.text(row, "ParamID"),
			Type:    r.text(row, "Type"),
			EnumSet: r.cell(row, "EnumSet"),
			Range:   r.cell(row, "Range"),
		})
	}
	return out, nil
}

func decodeEnums(path string, raw *RawTable) ([]catalog.EnumLabel, error) {
	r, err := newRowReader(TableEnums, path, raw)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.EnumLabel, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		// Row numbers count the header as row 1, matching spreadsheet views.
		value, err := r.integer(row, i+2, "Value")
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.EnumLabel{
			EnumSet: r.text(row, "EnumSet"),
			Value:   value,
			Label:   r.text(row, "Label"),
		})
	}
	return out, nil
}

// encodeCommands and friends produce raw tables in declared column order for
// the writers.
func encodeCommands(rows []catalog.CommandDef) *RawTable {
	raw := &RawTable{Columns: ColumnNames(TableCommands)}
	for _, c := range rows {
		raw.Rows = append(raw.Rows, []*string{
			catalog.Text(c.Command), catalog.Text(c.HexCode), catalog.Text(c.Description), c.Params,
		})
	}
	return raw
}

func encodeParams(rows []catalog.ParamMeta) *RawTable {
	raw := &RawTable{Columns: ColumnNames(TableParameters)}
	for _, p := range rows {
		raw.Rows = append(raw.Rows, []*string{
			catalog.Text(p.ParamID), catalog.Text(p.Type), p.EnumSet, p.Range,
		})
	}
	return raw
}

func encodeEnums(rows []catalog.EnumLabel) *RawTable {
	raw := &RawTable{Columns: ColumnNames(TableEnums)}
	for _, e := range rows {
		raw.Rows = append(raw.Rows, []*string{
			catalog.Text(e.EnumSet), catalog.Text(strconv.Itoa(e.Value)), catalog.Text(e.Label),
		})
	}
	return raw
}

func encodeCatalog(cat *catalog.Catalog) map[Table]*RawTable {
	return map[Table]*RawTable{
		TableCommands:   encodeCommands(cat.Commands()),
		TableParameters: encodeParams(cat.Params()),
		TableEnums:      encodeEnums(cat.Enums()),
	}
}
