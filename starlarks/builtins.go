package starlarks

import (
	"fmt"

	"github.com/reusee/gamesheet/sheets"
	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
)

// thread local holding the sheets.Lookup of the entry being evaluated
const lookupKey = "gamesheet.lookup"

// g reads another entry. Prelude functions run on the caller's thread, so
// their reads are attributed to the calling entry.
var getBuiltin = starlark.NewBuiltin("g", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	lookup, ok := thread.Local(lookupKey).(sheets.Lookup)
	if !ok {
		return nil, fmt.Errorf("%s: no sheet bound to thread %s", fn.Name(), thread.Name)
	}
	value, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return fromValue(value)
})

var builtins = starlark.StringDict{
	"g":    getBuiltin,
	"math": starlarkmath.Module,
}

// unknownFunction stands in for a free name the prelude does not define.
// It fails only when called, so untaken branches do not fail.
type unknownFunction string

var _ starlark.Callable = unknownFunction("")

func (u unknownFunction) String() string {
	return "<unknown function " + string(u) + ">"
}

func (u unknownFunction) Type() string {
	return "unknown_function"
}

func (u unknownFunction) Freeze() {}

func (u unknownFunction) Truth() starlark.Bool {
	return starlark.False
}

func (u unknownFunction) Hash() (uint32, error) {
	return starlark.String(u).Hash()
}

func (u unknownFunction) Name() string {
	return string(u)
}

func (u unknownFunction) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return nil, &sheets.NameError{
		Op:   "call",
		Name: string(u),
		Kind: sheets.ErrUnknownFunction,
	}
}
