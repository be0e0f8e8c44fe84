package cmds

import (
	"fmt"
	"reflect"
)

type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
	ArgNames    []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Args names the function parameters for usage output.
func (c *Command) Args(names ...string) *Command {
	if !c.Func.IsValid() || len(names) != c.Func.Type().NumIn() {
		panic(fmt.Errorf("%d argument names for %d parameters", len(names), c.numIn()))
	}
	c.ArgNames = names
	return c
}

func (c *Command) numIn() int {
	if !c.Func.IsValid() {
		return 0
	}
	return c.Func.Type().NumIn()
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	switch {
	case fnType.NumOut() >= 2:
		panic(fmt.Errorf("must return 0 or 1 value"))
	case fnType.NumOut() == 1 && fnType.Out(0) != errorType:
		panic(fmt.Errorf("must return error"))
	case fnType.IsVariadic():
		panic(fmt.Errorf("variadic function not supported"))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
