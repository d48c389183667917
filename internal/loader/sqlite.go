package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/cmdref/internal/atomicfile"
	"github.com/aidanlsb/cmdref/internal/sqlutil"
)

// SQLiteSource reads the relations from tables named commands, parameters
// and enums in a single SQLite file. Rows come back in rowid order, which
// is insertion order for catalogs written by cmdref.
type SQLiteSource struct {
	Path string
}

// Location returns the database path and table.
func (s *SQLiteSource) Location(table Table) string {
	return fmt.Sprintf("%s#%s", s.Path, table)
}

// ReadTable reads one table.
func (s *SQLiteSource) ReadTable(ctx context.Context, table Table) (*RawTable, error) {
	loc := s.Location(table)

	// sql.Open would create a missing file; refuse instead.
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}
	if info.IsDir() {
		return nil, storageNotFound(table, loc, fmt.Errorf("%s is a directory", s.Path))
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, storageNotFound(table, loc, err)
	}

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", string(table)).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, storageNotFound(table, loc, fmt.Errorf("table %q does not exist", table))
	}
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}

	cols, err := sqliteColumns(ctx, db, table)
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}

	// Text columns go through CAST so values stored with numeric affinity
	// keep their spelling instead of being reformatted by database/sql.
	selects := make([]string, len(cols))
	for i, col := range cols {
		selects[i] = sqlutil.TextColumn(col)
		if columnKind(table, col) == KindInt {
			selects[i] = sqlutil.QuoteIdent(col)
		}
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid",
		strings.Join(selects, ", "), sqlutil.QuoteIdent(string(table))))
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}
	defer rows.Close()

	raw := &RawTable{Columns: cols}
	raw.Rows, err = sqlutil.ScanRows(rows, func(rows *sql.Rows) ([]*string, error) {
		return sqlutil.NullableStrings(rows, len(cols))
	})
	if err != nil {
		return nil, storageNotFound(table, loc, err)
	}
	return raw, nil
}

func sqliteColumns(ctx context.Context, db *sql.DB, table Table) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", sqlutil.QuoteIdent(string(table))))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}

func writeSQLite(ctx context.Context, path string, tables map[Table]*RawTable) error {
	return atomicfile.Commit(path, 0, func(tmpPath string, f *os.File) error {
		if err := f.Close(); err != nil {
			return err
		}

		db, err := sql.Open("sqlite", tmpPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", tmpPath, err)
		}
		defer db.Close()

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, table := range Tables {
			if err := writeSQLiteTable(ctx, tx, table, tables[table]); err != nil {
				return fmt.Errorf("write %s table: %w", table, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		return db.Close()
	})
}

func writeSQLiteTable(ctx context.Context, tx *sql.Tx, table Table, raw *RawTable) error {
	specs := Schemas[table]
	defs := make([]string, len(specs))
	for i, col := range specs {
		typ := "TEXT"
		if col.Kind == KindInt {
			typ = "INTEGER"
		}
		defs[i] = sqlutil.QuoteIdent(col.Name) + " " + typ
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)",
		sqlutil.QuoteIdent(string(table)), strings.Join(defs, ", "))); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		sqlutil.QuoteIdent(string(table)), sqlutil.Placeholders(len(specs))))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(specs))
	for _, row := range raw.Rows {
		for i, col := range specs {
			args[i] = nil
			if row[i] == nil {
				continue
			}
			args[i] = *row[i]
			if col.Kind == KindInt {
				n, err := strconv.Atoi(*row[i])
				if err != nil {
					return err
				}
				args[i] = n
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}
