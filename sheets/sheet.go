package sheets

import (
	"log/slog"
	"slices"

	"github.com/reusee/gamesheet/logs"
	"github.com/samber/lo"
)

type Options struct {
	Logger logs.Logger
	// NewSpan, if set, opens a span for every top-level Read
	NewSpan logs.NewSpan
	// CheckInvariants verifies edge symmetry and cache exposure after every
	// operation, panicking on violation
	CheckInvariants bool
}

// Sheet is a set of named entries evaluated lazily and cached until
// something they read changes.
//
// A Sheet is not safe for concurrent use; see Guarded.
type Sheet struct {
	adapter Adapter
	prelude *Prelude
	entries map[string]*Entry
	// dependents of names that have no entry, either never created or removed
	pending map[string]nameSet
	// entries being evaluated, outermost first
	computing []string

	logger  logs.Logger
	newSpan logs.NewSpan
	check   bool
}

func New(adapter Adapter, options Options) *Sheet {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sheet{
		adapter: adapter,
		prelude: NewPrelude(),
		entries: make(map[string]*Entry),
		pending: make(map[string]nameSet),
		logger:  logger,
		newSpan: options.NewSpan,
		check:   options.CheckInvariants,
	}
}

func (s *Sheet) Prelude() *Prelude {
	return s.prelude
}

// Define replaces a prelude function and invalidates every entry, since
// what a function reads is attributed to its callers, not recorded on it.
func (s *Sheet) Define(name string, fn Function) {
	s.prelude.Define(name, fn)
	s.InvalidateAll()
}

func (s *Sheet) Create(name string, source string) error {
	if _, ok := s.entries[name]; ok {
		return &NameError{
			Op:   "create",
			Name: name,
			Kind: ErrDuplicateName,
		}
	}
	entry := newEntry(name, source)
	// entries that already tried to read this name
	if waiting, ok := s.pending[name]; ok {
		entry.dependents = waiting
		delete(s.pending, name)
	}
	s.entries[name] = entry
	s.invalidate(name)
	s.verify()
	return nil
}

// Source returns the raw script text of an entry.
func (s *Sheet) Source(name string) (string, error) {
	entry, ok := s.entries[name]
	if !ok {
		return "", unknownEntry("source", name)
	}
	return entry.source, nil
}

// SetSource replaces an entry's script and invalidates everything that
// depended on its previous value.
func (s *Sheet) SetSource(name string, source string) error {
	entry, ok := s.entries[name]
	if !ok {
		return unknownEntry("set source", name)
	}
	entry.setSource(source)
	s.invalidate(name)
	s.verify()
	return nil
}

// Remove deletes an entry. Entries that read it are invalidated and will
// fail with ErrUnknownEntry until the name is created again.
func (s *Sheet) Remove(name string) error {
	entry, ok := s.entries[name]
	if !ok {
		return unknownEntry("remove", name)
	}
	s.invalidate(name)
	for dep := range entry.dependencies {
		s.unlink(name, dep)
	}
	delete(s.entries, name)
	if len(entry.dependents) > 0 {
		s.pending[name] = entry.dependents
	}
	s.verify()
	return nil
}

func (s *Sheet) Names() []string {
	names := lo.Keys(s.entries)
	slices.Sort(names)
	return names
}

func (s *Sheet) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

func (s *Sheet) Status(name string) (Status, error) {
	entry, ok := s.entries[name]
	if !ok {
		return 0, unknownEntry("status", name)
	}
	return entry.status, nil
}

// Dependencies returns the names read by the entry's most recent evaluation.
func (s *Sheet) Dependencies(name string) ([]string, error) {
	entry, ok := s.entries[name]
	if !ok {
		return nil, unknownEntry("dependencies", name)
	}
	return entry.dependencies.sorted(), nil
}

// Dependents returns the entries whose most recent evaluation read name.
func (s *Sheet) Dependents(name string) ([]string, error) {
	entry, ok := s.entries[name]
	if !ok {
		return nil, unknownEntry("dependents", name)
	}
	return entry.dependents.sorted(), nil
}
