package stores

import (
	"context"
	"slices"
	"sync"

	"github.com/reusee/gamesheet/loaders"
)

type Memory struct {
	mu  sync.Mutex
	doc *loaders.Document
}

var _ Store = new(Memory)

func NewMemory() *Memory {
	return &Memory{
		doc: &loaders.Document{
			Entries: make(map[string]string),
		},
	}
}

func (m *Memory) Load(ctx context.Context) (*loaders.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone(), nil
}

func (m *Memory) PutEntry(ctx context.Context, name string, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Entries[name] = source
	m.doc.Removed = slices.DeleteFunc(m.doc.Removed, func(removed string) bool {
		return removed == name
	})
	return nil
}

func (m *Memory) DeleteEntry(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.doc.Entries, name)
	if !slices.Contains(m.doc.Removed, name) {
		m.doc.Removed = append(m.doc.Removed, name)
		slices.Sort(m.doc.Removed)
	}
	return nil
}

func (m *Memory) PutPrelude(ctx context.Context, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Prelude = source
	return nil
}

func (m *Memory) Close() error {
	return nil
}
