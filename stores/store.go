package stores

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/reusee/gamesheet/loaders"
)

// Store persists entry sources and the prelude. Evaluated values are never
// stored. DeleteEntry records the name as removed, so that Load reports it
// in Document.Removed and the deletion survives merging over other
// documents; PutEntry clears that mark.
type Store interface {
	Load(ctx context.Context) (*loaders.Document, error)
	PutEntry(ctx context.Context, name string, source string) error
	DeleteEntry(ctx context.Context, name string) error
	PutPrelude(ctx context.Context, source string) error
	Close() error
}

var ErrUnknownBackend = errors.New("unknown store backend")

// Open opens a store by file extension: .db, .sqlite and .sqlite3 for
// SQLite; .bolt and .bbolt for bbolt.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLite(path)
	case ".bolt", ".bbolt":
		return NewBolt(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, path)
}

// Save makes the store hold exactly the entries and prelude of doc. Names
// the store held but doc lacks, and the names doc lists as removed, are
// recorded as removed.
func Save(ctx context.Context, store Store, doc *loaders.Document) error {
	existing, err := store.Load(ctx)
	if err != nil {
		return err
	}
	for name := range existing.Entries {
		if _, ok := doc.Entries[name]; ok {
			continue
		}
		if err := store.DeleteEntry(ctx, name); err != nil {
			return err
		}
	}
	for name, source := range doc.Entries {
		if prev, ok := existing.Entries[name]; ok && prev == source {
			continue
		}
		if err := store.PutEntry(ctx, name, source); err != nil {
			return err
		}
	}
	for _, name := range doc.Removed {
		if _, ok := doc.Entries[name]; ok || slices.Contains(existing.Removed, name) {
			continue
		}
		if err := store.DeleteEntry(ctx, name); err != nil {
			return err
		}
	}
	if existing.Prelude != doc.Prelude {
		if err := store.PutPrelude(ctx, doc.Prelude); err != nil {
			return err
		}
	}
	return nil
}
