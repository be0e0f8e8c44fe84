package sheets

import (
	"context"

	"github.com/reusee/gamesheet/values"
)

// Script is the parsed form of an entry's source, owned by the entry.
type Script any

// Lookup reads another entry on behalf of the script being evaluated.
type Lookup func(name string) (values.Value, error)

// Adapter parses and evaluates scripts.
//
// Evaluate must call lookup synchronously for every cross-entry read the
// script performs, including reads made inside prelude functions, and must
// fail if any lookup fails.
type Adapter interface {
	Parse(name string, source string) (Script, error)
	Evaluate(ctx context.Context, script Script, lookup Lookup, prelude *Prelude) (values.Value, error)
}
