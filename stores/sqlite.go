package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reusee/gamesheet/loaders"
	_ "modernc.org/sqlite"
)

const SchemaVersion = "2"

type SQLite struct {
	db *sql.DB
}

var _ Store = new(SQLite)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init(ctx context.Context) error {
	return withTx(ctx, s.db, func(tx Tx) error {
		_, err := tx.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS entries (
				name TEXT PRIMARY KEY,
				source TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS removed (
				name TEXT PRIMARY KEY
			);
			CREATE TABLE IF NOT EXISTS metadata (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`)
		if err != nil {
			return err
		}

		version, err := getMetadata(ctx, tx, "schema_version")
		if err != nil {
			return err
		}
		switch version {
		case "", "1":
			// version 1 lacks only the removed table, created above
			return setMetadata(ctx, tx, "schema_version", SchemaVersion)
		case SchemaVersion:
			return nil
		}
		return fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	})
}

func getMetadata(ctx context.Context, tx Tx, key string) (string, error) {
	var value string
	err := tx.QueryRow(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func setMetadata(ctx context.Context, tx Tx, key string, value string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLite) Load(ctx context.Context) (*loaders.Document, error) {
	doc := &loaders.Document{
		Entries: make(map[string]string),
	}
	err := withTx(ctx, s.db, func(tx Tx) error {
		prelude, err := getMetadata(ctx, tx, keyPrelude)
		if err != nil {
			return err
		}
		doc.Prelude = prelude

		if err := queryEach(ctx, tx, "SELECT name, source FROM entries", func(rows *sql.Rows) error {
			var name, source string
			if err := rows.Scan(&name, &source); err != nil {
				return err
			}
			doc.Entries[name] = source
			return nil
		}); err != nil {
			return err
		}

		return queryEach(ctx, tx, "SELECT name FROM removed ORDER BY name", func(rows *sql.Rows) error {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			doc.Removed = append(doc.Removed, name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func queryEach(ctx context.Context, tx Tx, query string, fn func(*sql.Rows) error) error {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLite) PutEntry(ctx context.Context, name string, source string) error {
	return withTx(ctx, s.db, func(tx Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM removed WHERE name = ?", name); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO entries (name, source) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET source = excluded.source
		`, name, source)
		return err
	})
}

func (s *SQLite) DeleteEntry(ctx context.Context, name string) error {
	return withTx(ctx, s.db, func(tx Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM entries WHERE name = ?", name); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "INSERT OR IGNORE INTO removed (name) VALUES (?)", name)
		return err
	})
}

func (s *SQLite) PutPrelude(ctx context.Context, source string) error {
	return withTx(ctx, s.db, func(tx Tx) error {
		return setMetadata(ctx, tx, keyPrelude, source)
	})
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
