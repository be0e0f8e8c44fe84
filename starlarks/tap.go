package starlarks

import (
	"context"

	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/values"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap opens an interactive Starlark session on a sheet.
type Tap func(ctx context.Context, sheet *sheets.Sheet)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, sheet *sheets.Sheet) {
		logger.InfoContext(ctx, "tap",
			"entries", len(sheet.Names()),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end")
		}()

		var lookup sheets.Lookup = func(name string) (values.Value, error) {
			return sheet.Read(ctx, name)
		}
		thread := &starlark.Thread{
			Name: "repl",
		}
		thread.SetLocal(lookupKey, lookup)

		repl.REPLOptions(fileOptions, thread, TapGlobals(sheet))
	}
}

// TapGlobals returns the names available in a Tap session: the builtins,
// the prelude and functions that edit the sheet.
func TapGlobals(sheet *sheets.Sheet) starlark.StringDict {
	globals := make(starlark.StringDict)
	prelude := sheet.Prelude()
	for _, name := range prelude.Names() {
		globals[name] = resolveFree(name, prelude)
	}
	for name, value := range builtins {
		globals[name] = value
	}

	globals["set"] = starlark.NewBuiltin("set", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name, source string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &source); err != nil {
			return nil, err
		}
		if !sheet.Has(name) {
			return starlark.None, sheet.Create(name, source)
		}
		return starlark.None, sheet.SetSource(name, source)
	})

	globals["remove"] = starlark.NewBuiltin("remove", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		return starlark.None, sheet.Remove(name)
	})

	globals["source"] = starlark.NewBuiltin("source", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		src, err := sheet.Source(name)
		if err != nil {
			return nil, err
		}
		return starlark.String(src), nil
	})

	globals["names"] = starlark.NewBuiltin("names", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return stringList(sheet.Names()), nil
	})

	globals["deps"] = starlark.NewBuiltin("deps", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		names, err := sheet.Dependencies(name)
		if err != nil {
			return nil, err
		}
		return stringList(names), nil
	})

	globals["dependents"] = starlark.NewBuiltin("dependents", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		names, err := sheet.Dependents(name)
		if err != nil {
			return nil, err
		}
		return stringList(names), nil
	})

	return globals
}

func stringList(strs []string) *starlark.List {
	elems := make([]starlark.Value, len(strs))
	for i, str := range strs {
		elems[i] = starlark.String(str)
	}
	return starlark.NewList(elems)
}
