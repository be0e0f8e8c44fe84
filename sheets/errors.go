package sheets

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEntry     = errors.New("unknown entry")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrUnknownFunction  = errors.New("unknown function")
	ErrParse            = errors.New("parse error")
	ErrRuntime          = errors.New("runtime error")
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// NameError reports an operation against a name that does not resolve,
// or that collides with an existing one.
type NameError struct {
	Op   string
	Name string
	Kind error
}

func (e *NameError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Name)
}

func (e *NameError) Unwrap() error {
	return e.Kind
}

// ScriptError is the cached failure of an entry's evaluation.
// Kind is ErrParse or ErrRuntime; Err is the cause, possibly the failure
// of another entry read by the script.
type ScriptError struct {
	Entry string
	Kind  error
	Err   error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Entry, e.Kind, e.Err)
}

func (e *ScriptError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// CycleError carries the chain of entries that led back to the first one.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicDependency
}

func unknownEntry(op, name string) error {
	return &NameError{
		Op:   op,
		Name: name,
		Kind: ErrUnknownEntry,
	}
}
