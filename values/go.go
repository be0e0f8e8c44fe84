package values

import (
	"fmt"
	"math/big"
	"reflect"
)

// FromGo converts decoded document data into a Value.
func FromGo(v any) (Value, error) {
	switch v := v.(type) {

	case nil:
		return Unit{}, nil
	case Value:
		return Clone(v), nil

	case bool:
		return Boolean(v), nil
	case string:
		return Text(v), nil
	case []byte:
		return Text(v), nil

	case int:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case uint64:
		return Number(v), nil
	case float32:
		return Number(v), nil
	case float64:
		return Number(v), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return Number(f), nil

	case []any:
		ret := make(Sequence, 0, len(v))
		for _, elem := range v {
			value, err := FromGo(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, value)
		}
		return ret, nil

	case map[string]any:
		ret := make(Mapping, len(v))
		for key, elem := range v {
			value, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", key, err)
			}
			ret[key] = value
		}
		return ret, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return Boolean(value.Bool()), nil
	case reflect.String:
		return Text(value.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(value.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(value.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Number(value.Float()), nil

	case reflect.Slice, reflect.Array:
		ret := make(Sequence, 0, value.Len())
		for i := range value.Len() {
			elem, err := FromGo(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			ret = append(ret, elem)
		}
		return ret, nil

	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type: %v", value.Type().Key())
		}
		ret := make(Mapping, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			elem, err := FromGo(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			ret[iter.Key().String()] = elem
		}
		return ret, nil

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return Unit{}, nil
		}
		return FromGo(value.Elem().Interface())

	}

	return nil, fmt.Errorf("unsupported type: %T", v)
}

// ToGo converts v into plain Go data suitable for encoding.
func ToGo(v Value) any {
	switch v := v.(type) {
	case nil, Unit:
		return nil
	case Number:
		return float64(v)
	case Boolean:
		return bool(v)
	case Text:
		return string(v)
	case Sequence:
		ret := make([]any, len(v))
		for i, elem := range v {
			ret[i] = ToGo(elem)
		}
		return ret
	case Mapping:
		ret := make(map[string]any, len(v))
		for key, elem := range v {
			ret[key] = ToGo(elem)
		}
		return ret
	}
	return nil
}
