package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageNotFound indicates a relation's backing source is missing or
	// cannot be read.
	ErrStorageNotFound = errors.New("storage not found")

	// ErrSchemaMismatch indicates a relation lacks a required column, or a
	// cell does not match its declared column type.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// TableError reports which relation failed to load and why.
type TableError struct {
	Table Table
	Path  string
	Err   error
}

func (e *TableError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s table (%s): %v", e.Table, e.Path, e.Err)
	}
	return fmt.Sprintf("%s table: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func storageNotFound(table Table, path string, err error) error {
	return &TableError{Table: table, Path: path, Err: fmt.Errorf("%w: %v", ErrStorageNotFound, err)}
}

func schemaMismatch(table Table, path, format string, args ...any) error {
	return &TableError{Table: table, Path: path, Err: fmt.Errorf("%w: %s", ErrSchemaMismatch, fmt.Sprintf(format, args...))}
}
