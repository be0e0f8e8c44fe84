package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reusee/gamesheet/loaders"
	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/starlarks"
	"github.com/reusee/gamesheet/stores"
)

type session struct {
	ctx     context.Context
	sheet   *sheets.Sheet
	store   stores.Store
	prelude string
	out     io.Writer
	tap     starlarks.Tap
	logger  logs.Logger
}

// newSession applies the loaded documents, then the store overlay, to a
// new sheet.
func newSession(
	ctx context.Context,
	sheet *sheets.Sheet,
	compiler loaders.PreludeCompiler,
	doc *loaders.Document,
	store stores.Store,
	logger logs.Logger,
) (*session, error) {
	docs := []*loaders.Document{doc}
	if store != nil {
		overlay, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}
		docs = append(docs, overlay)
	}
	merged := loaders.Merge(docs...)
	if err := merged.Apply(sheet, compiler); err != nil {
		return nil, err
	}
	return &session{
		ctx:     ctx,
		sheet:   sheet,
		store:   store,
		prelude: merged.Prelude,
		out:     os.Stdout,
		logger:  logger,
	}, nil
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *session) get(name string) error {
	value, err := s.sheet.Read(s.ctx, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, value.String())
	return err
}

func (s *session) set(name string, source string) error {
	if err := s.sheet.SetSource(name, source); err != nil {
		return err
	}
	return s.persist(name, source)
}

func (s *session) create(name string, source string) error {
	if err := s.sheet.Create(name, source); err != nil {
		return err
	}
	return s.persist(name, source)
}

func (s *session) persist(name string, source string) error {
	if s.store == nil {
		return nil
	}
	return s.store.PutEntry(s.ctx, name, source)
}

func (s *session) remove(name string) error {
	if err := s.sheet.Remove(name); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	return s.store.DeleteEntry(s.ctx, name)
}

func (s *session) names() error {
	for _, name := range s.sheet.Names() {
		if _, err := fmt.Fprintln(s.out, name); err != nil {
			return err
		}
	}
	return nil
}

// edges are recorded by evaluation, so the entry is read first.
func (s *session) edges(name string, fn func(string) ([]string, error)) error {
	s.readForEdges(name)
	names, err := fn(name)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(s.out, name); err != nil {
			return err
		}
	}
	return nil
}

// readForEdges evaluates an entry for its edges. A failed evaluation still
// records what it read, so the error is only logged.
func (s *session) readForEdges(name string) {
	if _, err := s.sheet.Read(s.ctx, name); err != nil {
		s.logger.DebugContext(s.ctx, "read for edges",
			"entry", name,
			"error", err,
		)
	}
}

func (s *session) dependencies(name string) error {
	return s.edges(name, s.sheet.Dependencies)
}

func (s *session) dependents(name string) error {
	// dependents are known only once every reader has been evaluated
	for _, other := range s.sheet.Names() {
		s.readForEdges(other)
	}
	return s.edges(name, s.sheet.Dependents)
}

func (s *session) dump() error {
	for _, name := range s.sheet.Names() {
		value, err := s.sheet.Read(s.ctx, name)
		if err != nil {
			s.logger.WarnContext(s.ctx, "read failed",
				"entry", name,
				"error", err,
			)
			if _, err := fmt.Fprintf(s.out, "%s\t!\t%v\n", name, err); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(s.out, "%s\t=\t%s\n", name, value.String()); err != nil {
			return err
		}
	}
	return nil
}

// export writes the sheet sources to a document file, or to a store when
// the path has a store extension.
func (s *session) export(path string) error {
	doc, err := loaders.Snapshot(s.sheet, s.prelude)
	if err != nil {
		return err
	}

	store, err := stores.Open(path)
	if err == nil {
		defer store.Close()
		return stores.Save(s.ctx, store, doc)
	} else if !errors.Is(err, stores.ErrUnknownBackend) {
		return err
	}

	format, err := loaders.FormatOf(path)
	if err != nil {
		return err
	}
	content, err := loaders.Encode(format, doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
