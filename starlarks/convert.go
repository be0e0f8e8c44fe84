package starlarks

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strings"

	"github.com/reusee/gamesheet/values"
	"github.com/reusee/starlarkutil"
	"github.com/samber/lo"
	"go.starlark.net/starlark"
)

// toValue converts a script result.
func toValue(v starlark.Value) (values.Value, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return values.Unit{}, nil

	case starlark.Bool:
		return values.Boolean(v), nil

	case starlark.Int:
		return values.Number(v.Float()), nil
	case starlark.Float:
		return values.Number(v), nil

	case starlark.String:
		return values.Text(v), nil
	case starlark.Bytes:
		return values.Text(v), nil

	case *starlark.Dict:
		ret := make(values.Mapping, v.Len())
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("mapping key must be string, got %s", item[0].Type())
			}
			value, err := toValue(item[1])
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}
			ret[key] = value
		}
		return ret, nil

	case starlark.Indexable:
		n := v.Len()
		ret := make(values.Sequence, 0, n)
		for i := range n {
			elem, err := toValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			ret = append(ret, elem)
		}
		return ret, nil

	}

	return nil, fmt.Errorf("unsupported value type: %s", v.Type())
}

// fromValue converts an entry value for use in a script. Containers are
// frozen; a script cannot modify another entry's value.
func fromValue(v values.Value) (starlark.Value, error) {
	switch v := v.(type) {

	case nil, values.Unit:
		return starlark.None, nil

	case values.Boolean:
		return starlark.Bool(v), nil

	case values.Number:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return starlark.MakeInt64(int64(f)), nil
		}
		return starlark.Float(f), nil

	case values.Text:
		return starlark.String(v), nil

	case values.Sequence:
		elems := make([]starlark.Value, 0, len(v))
		for _, elem := range v {
			e, err := fromValue(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		list := starlark.NewList(elems)
		list.Freeze()
		return list, nil

	case values.Mapping:
		keys := lo.Keys(v)
		slices.Sort(keys)
		d := starlark.NewDict(len(v))
		for _, key := range keys {
			elem, err := fromValue(v[key])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(key), elem); err != nil {
				return nil, err
			}
		}
		d.Freeze()
		return d, nil

	}

	return nil, fmt.Errorf("unsupported value: %T", v)
}

// toStarlarkValue converts Go data, as decoded from documents or defined
// by the host, into a Starlark value. It panics on unsupported types.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v
	case values.Value:
		ret, err := fromValue(v)
		if err != nil {
			panic(err)
		}
		return ret

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)
	case *big.Int:
		return starlark.MakeBigInt(v)

	case float32:
		return starlark.Float(v)
	case float64:
		return starlark.Float(v)

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toStarlarkValue(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		keys := lo.Keys(v)
		slices.Sort(keys)
		d := starlark.NewDict(len(v))
		for _, key := range keys {
			d.SetKey(starlark.String(key), toStarlarkValue(v[key]))
		}
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// Literal renders decoded document data as Starlark source that evaluates
// to the same value.
func Literal(v any) (ret string, err error) {
	defer func() {
		if p := recover(); p != nil {
			e, ok := p.(error)
			if !ok {
				panic(p)
			}
			err = e
		}
	}()
	value := toStarlarkValue(v)
	if _, ok := value.(starlark.Callable); ok {
		return "", fmt.Errorf("function is not a literal: %T", v)
	}
	buf := new(strings.Builder)
	writeLiteral(buf, value)
	return buf.String(), nil
}

// writeLiteral writes v like v.String(), except that non-finite floats are
// spelled as float() calls, which read back.
func writeLiteral(w *strings.Builder, v starlark.Value) {
	switch v := v.(type) {

	case starlark.Float:
		f := float64(v)
		switch {
		case math.IsNaN(f):
			w.WriteString(`float("nan")`)
			return
		case math.IsInf(f, 1):
			w.WriteString(`float("inf")`)
			return
		case math.IsInf(f, -1):
			w.WriteString(`float("-inf")`)
			return
		}

	case *starlark.List:
		w.WriteString("[")
		for i := range v.Len() {
			if i > 0 {
				w.WriteString(", ")
			}
			writeLiteral(w, v.Index(i))
		}
		w.WriteString("]")
		return

	case *starlark.Dict:
		w.WriteString("{")
		for i, item := range v.Items() {
			if i > 0 {
				w.WriteString(", ")
			}
			writeLiteral(w, item[0])
			w.WriteString(": ")
			writeLiteral(w, item[1])
		}
		w.WriteString("}")
		return

	}
	w.WriteString(v.String())
}
