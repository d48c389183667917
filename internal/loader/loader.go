// Package loader reads the command catalog from tabular storage.
//
// A Loader reads the three relations once, applies the declared column
// types, and hands out the same immutable *catalog.Catalog for the rest of
// the process. Storage can be a directory of CSV files, a YAML document, or
// a SQLite file; the resulting Catalog does not depend on the format.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/logging"
)

// Loader loads a catalog from a Source exactly once.
//
// Load is safe for concurrent use. The first call performs the read; every
// other call, concurrent or later, blocks until it finishes and then sees
// the same catalog or the same error. A failed load is not retried: the
// session is over and the caller should report the error. The exception is
// a load cut short by the caller's context, which says nothing about the
// storage and leaves the Loader ready for the next call.
type Loader struct {
	source Source

	mu   sync.Mutex
	done bool
	cat  *catalog.Catalog
	err  error
}

// New creates a Loader for source. Nothing is read until Load.
func New(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the cached catalog, reading storage on the first call.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.cat, l.err
	}
	cat, err := read(ctx, l.source)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	l.cat, l.err, l.done = cat, err, true
	return l.cat, l.err
}

func read(ctx context.Context, source Source) (*catalog.Catalog, error) {
	log := logging.WithComponent("loader")
	start := time.Now()

	var (
		commands []catalog.CommandDef
		params   []catalog.ParamMeta
		enums    []catalog.EnumLabel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := source.ReadTable(gctx, TableCommands)
		if err != nil {
			return err
		}
		commands, err = decodeCommands(source.Location(TableCommands), raw)
		return err
	})
	g.Go(func() error {
		raw, err := source.ReadTable(gctx, TableParameters)
		if err != nil {
			return err
		}
		params, err = decodeParams(source.Location(TableParameters), raw)
		return err
	})
	g.Go(func() error {
		raw, err := source.ReadTable(gctx, TableEnums)
		if err != nil {
			return err
		}
		enums, err = decodeEnums(source.Location(TableEnums), raw)
		return err
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Debug("catalog load failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"commands":   len(commands),
		"parameters": len(params),
		"enums":      len(enums),
		"elapsed":    time.Since(start).String(),
	}).Debug("catalog loaded")

	return catalog.New(commands, params, enums), nil
}

// Write stores cat in the given format. For CSV, path is a directory and
// files names the three files; for YAML and SQLite, path is the file.
// Existing files are replaced atomically.
func Write(ctx context.Context, format Format, path string, files FileNames, cat *catalog.Catalog) error {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	switch format {
	case FormatCSV:
		return writeCSV(path, files, encodeCatalog(cat))
	case FormatYAML:
		return writeYAML(path, cat)
	case FormatSQLite:
		return writeSQLite(ctx, path, encodeCatalog(cat))
	default:
		return fmt.Errorf("unknown catalog format %q", format)
	}
}
