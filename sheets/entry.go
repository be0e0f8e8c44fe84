package sheets

import (
	"slices"

	"github.com/reusee/gamesheet/values"
	"github.com/samber/lo"
)

type nameSet map[string]struct{}

func (n nameSet) sorted() []string {
	ret := lo.Keys(n)
	slices.Sort(ret)
	return ret
}

// Entry is a named cell of a sheet.
type Entry struct {
	name   string
	source string

	// parsed and parseErr are valid when isParsed is set; they follow source, not status
	parsed   Script
	parseErr error
	isParsed bool

	status    Status
	cached    values.Value
	cachedErr error

	// names read by the most recent evaluation
	dependencies nameSet
	// entries whose most recent evaluation read this one
	dependents nameSet
}

func newEntry(name string, source string) *Entry {
	return &Entry{
		name:         name,
		source:       source,
		status:       Stale,
		dependencies: make(nameSet),
		dependents:   make(nameSet),
	}
}

// reset drops the cached outcome, keeping edges for the next cascade
func (e *Entry) reset() {
	e.status = Stale
	e.cached = nil
	e.cachedErr = nil
}

func (e *Entry) setSource(source string) {
	e.source = source
	e.parsed = nil
	e.parseErr = nil
	e.isParsed = false
	e.reset()
}
