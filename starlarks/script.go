package starlarks

import (
	"fmt"
	"slices"

	"github.com/reusee/gamesheet/sheets"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// the global holding a program's result
const valueGlobal = "value"

// Script is a compiled entry.
type Script struct {
	name    string
	program *starlark.Program
	// names the program expects to be predeclared
	free []string
}

var _ sheets.Script = new(Script)

// every name outside the universe is predeclared, bound per evaluation
func isPredeclared(name string) bool {
	return !starlark.Universe.Has(name)
}

func (a *Adapter) Parse(name string, source string) (sheets.Script, error) {
	return compile(name, source)
}

func compile(name string, source string) (*Script, error) {
	// a lone expression is the value itself
	if _, err := fileOptions.ParseExpr(name, source, 0); err == nil {
		source = valueGlobal + " = (" + source + "\n)"
	}

	file, program, err := starlark.SourceProgramOptions(fileOptions, name, source, isPredeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sheets.ErrParse, err)
	}

	seen := make(map[string]bool)
	var free []string
	syntax.Walk(file, func(node syntax.Node) bool {
		ident, ok := node.(*syntax.Ident)
		if !ok {
			return true
		}
		binding, ok := ident.Binding.(*resolve.Binding)
		if !ok || binding.Scope != resolve.Predeclared {
			return true
		}
		if !seen[ident.Name] {
			seen[ident.Name] = true
			free = append(free, ident.Name)
		}
		return true
	})
	slices.Sort(free)

	return &Script{
		name:    name,
		program: program,
		free:    free,
	}, nil
}

// Free returns the predeclared names the script refers to.
func (s *Script) Free() []string {
	return slices.Clone(s.free)
}
