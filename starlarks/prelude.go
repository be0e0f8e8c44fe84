package starlarks

import (
	"context"
	"fmt"

	"github.com/reusee/gamesheet/sheets"
	"go.starlark.net/starlark"
)

// CompilePrelude runs a prelude program and defines each of its globals in
// prelude. Prelude functions may call g; the read is made on behalf of
// whichever entry called the function.
func (a *Adapter) CompilePrelude(filename string, source string, prelude *sheets.Prelude) error {
	_, program, err := starlark.SourceProgramOptions(fileOptions, filename, source, builtins.Has)
	if err != nil {
		return fmt.Errorf("prelude %s: %w: %w", filename, sheets.ErrParse, err)
	}

	thread, stop := a.newThread(context.Background(), filename, nil)
	defer stop()

	globals, err := program.Init(thread, builtins)
	if err != nil {
		return fmt.Errorf("prelude %s: %w: %w", filename, sheets.ErrRuntime, err)
	}
	globals.Freeze()

	for name, value := range globals {
		prelude.Define(name, value)
	}
	a.logger().Debug("prelude compiled",
		"file", filename,
		"names", globals.Keys(),
	)
	return nil
}
