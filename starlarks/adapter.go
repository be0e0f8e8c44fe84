package starlarks

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/values"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// Adapter evaluates entry scripts written in Starlark.
//
// A script that is a single expression evaluates to that expression.
// Otherwise it is a program whose result is the global named value, or
// unit if it never assigns one. Entries are read with g("name").
type Adapter struct {
	// MaxSteps bounds the computation of one evaluation; zero means no bound
	MaxSteps uint64
	Logger   logs.Logger
}

var _ sheets.Adapter = new(Adapter)

func (a *Adapter) logger() logs.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Adapter) Evaluate(ctx context.Context, s sheets.Script, lookup sheets.Lookup, prelude *sheets.Prelude) (values.Value, error) {
	script, ok := s.(*Script)
	if !ok {
		return nil, fmt.Errorf("not a starlark script: %T", s)
	}

	predeclared := make(starlark.StringDict, len(script.free))
	for _, name := range script.free {
		predeclared[name] = resolveFree(name, prelude)
	}

	thread, stop := a.newThread(ctx, script.name, lookup)
	defer stop()

	globals, err := script.program.Init(thread, predeclared)
	if err != nil {
		return nil, err
	}

	result, ok := globals[valueGlobal]
	if !ok {
		return values.Unit{}, nil
	}
	return toValue(result)
}

func (a *Adapter) newThread(ctx context.Context, name string, lookup sheets.Lookup) (*starlark.Thread, func() bool) {
	logger := a.logger()
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			logger.InfoContext(ctx, "print",
				"entry", name,
				"message", msg,
			)
		},
	}
	if lookup != nil {
		thread.SetLocal(lookupKey, lookup)
	}
	if a.MaxSteps > 0 {
		thread.SetMaxExecutionSteps(a.MaxSteps)
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	return thread, stop
}

// resolveFree binds a free name: builtins first, then the prelude.
func resolveFree(name string, prelude *sheets.Prelude) starlark.Value {
	if v, ok := builtins[name]; ok {
		return v
	}
	if prelude == nil {
		return unknownFunction(name)
	}
	fn, err := prelude.Resolve(name)
	if err != nil {
		return unknownFunction(name)
	}
	return preludeValue(name, fn)
}

func preludeValue(name string, fn sheets.Function) starlark.Value {
	switch fn := fn.(type) {
	case starlark.Value:
		return fn
	case nil:
		return starlark.None
	}
	if reflect.TypeOf(fn).Kind() == reflect.Func {
		return starlarkutil.MakeFunc(name, fn)
	}
	return toStarlarkValue(fn)
}
