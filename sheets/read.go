package sheets

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/values"
)

// Read returns the value of an entry, evaluating it and anything it reads
// if not cached.
func (s *Sheet) Read(ctx context.Context, name string) (values.Value, error) {
	if s.newSpan != nil && logs.SpanFrom(ctx) == "" {
		ctx, _ = s.newSpan(ctx, "", "read", name)
	}
	value, err := s.read(ctx, name)
	s.verify()
	return value, err
}

func (s *Sheet) read(ctx context.Context, name string) (values.Value, error) {
	entry, ok := s.entries[name]
	if !ok {
		return nil, unknownEntry("read", name)
	}

	switch entry.status {

	case Clean:
		return values.Clone(entry.cached), nil

	case Errored:
		return nil, entry.cachedErr

	case Computing:
		start := slices.Index(s.computing, name)
		path := append(slices.Clone(s.computing[start:]), name)
		s.logger.DebugContext(ctx, "cyclic dependency",
			"path", path,
		)
		return nil, &CycleError{
			Path: path,
		}

	}

	return s.evaluate(ctx, entry)
}

func (s *Sheet) evaluate(ctx context.Context, entry *Entry) (values.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", entry.name, err)
	}

	entry.status = Computing
	s.computing = append(s.computing, entry.name)
	defer func() {
		s.computing = s.computing[:len(s.computing)-1]
	}()

	if !entry.isParsed {
		entry.parsed, entry.parseErr = s.adapter.Parse(entry.name, entry.source)
		entry.isParsed = true
	}

	observed := make(nameSet)
	var cycle *CycleError
	var value values.Value
	var err error

	if entry.parseErr != nil {
		err = &ScriptError{
			Entry: entry.name,
			Kind:  ErrParse,
			Err:   entry.parseErr,
		}

	} else {
		value, err = s.adapter.Evaluate(ctx, entry.parsed, func(name string) (values.Value, error) {
			// recorded before reading, so a self reference is an edge too
			observed[name] = struct{}{}
			v, err := s.read(ctx, name)
			if err != nil && cycle == nil {
				errors.As(err, &cycle)
			}
			return v, err
		}, s.prelude)
		if err == nil && value == nil {
			value = values.Unit{}
		}
		if err != nil && cycle == nil {
			errors.As(err, &cycle)
		}
	}

	// failed evaluations still performed real reads
	s.relink(entry, observed)

	switch {

	case cycle != nil:
		// not cached; the next read retries
		entry.status = Stale
		return nil, cycle

	case err != nil && ctx.Err() != nil:
		entry.status = Stale
		return nil, fmt.Errorf("evaluate %s: %w", entry.name, errors.Join(ctx.Err(), err))

	case err != nil:
		var scriptErr *ScriptError
		if !errors.As(err, &scriptErr) || scriptErr.Entry != entry.name {
			err = &ScriptError{
				Entry: entry.name,
				Kind:  ErrRuntime,
				Err:   err,
			}
		}
		entry.status = Errored
		entry.cachedErr = err
		s.logger.DebugContext(ctx, "evaluation failed",
			"entry", entry.name,
			"dependencies", len(observed),
			"error", err,
		)
		return nil, err

	}

	entry.status = Clean
	entry.cached = value
	s.logger.DebugContext(ctx, "evaluated",
		"entry", entry.name,
		"dependencies", len(observed),
	)
	return values.Clone(value), nil
}
