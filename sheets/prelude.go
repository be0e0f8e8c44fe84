package sheets

import (
	"slices"

	"github.com/samber/lo"
)

// Function is a prelude function in whatever form the adapter understands.
type Function any

// Prelude holds the named functions scripts may call.
type Prelude struct {
	funcs map[string]Function
}

func NewPrelude() *Prelude {
	return &Prelude{
		funcs: make(map[string]Function),
	}
}

// Define adds or replaces a function.
func (p *Prelude) Define(name string, fn Function) {
	p.funcs[name] = fn
}

func (p *Prelude) Resolve(name string) (Function, error) {
	fn, ok := p.funcs[name]
	if !ok {
		return nil, &NameError{
			Op:   "resolve",
			Name: name,
			Kind: ErrUnknownFunction,
		}
	}
	return fn, nil
}

func (p *Prelude) Names() []string {
	names := lo.Keys(p.funcs)
	slices.Sort(names)
	return names
}
