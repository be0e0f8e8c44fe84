package values

import "math"

// Equal reports whether a and b hold the same data.
// A nil Value is treated as Unit.
func Equal(a, b Value) bool {
	if a == nil {
		a = Unit{}
	}
	if b == nil {
		b = Unit{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {

	case Unit:
		return true

	case Number:
		b := b.(Number)
		// NaN equals itself here
		return a == b || math.IsNaN(float64(a)) && math.IsNaN(float64(b))

	case Boolean:
		return a == b.(Boolean)

	case Text:
		return a == b.(Text)

	case Sequence:
		b := b.(Sequence)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true

	case Mapping:
		b := b.(Mapping)
		if len(a) != len(b) {
			return false
		}
		for key, av := range a {
			bv, ok := b[key]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true

	}
	return false
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch v := v.(type) {

	case nil:
		return Unit{}

	case Sequence:
		if v == nil {
			return Sequence(nil)
		}
		ret := make(Sequence, len(v))
		for i, elem := range v {
			ret[i] = Clone(elem)
		}
		return ret

	case Mapping:
		if v == nil {
			return Mapping(nil)
		}
		ret := make(Mapping, len(v))
		for key, elem := range v {
			ret[key] = Clone(elem)
		}
		return ret

	}
	return v
}
