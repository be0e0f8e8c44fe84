package values

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type Kind uint8

const (
	KindUnit Kind = iota
	KindNumber
	KindBoolean
	KindText
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the result of evaluating an entry.
// Values are never mutated after being produced; Sequence and Mapping are
// copied by Clone before being handed to a caller.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

type (
	Unit     struct{}
	Number   float64
	Boolean  bool
	Text     string
	Sequence []Value
	Mapping  map[string]Value
)

var (
	_ Value = Unit{}
	_ Value = Number(0)
	_ Value = Boolean(false)
	_ Value = Text("")
	_ Value = Sequence(nil)
	_ Value = Mapping(nil)
)

func (Unit) Kind() Kind     { return KindUnit }
func (Number) Kind() Kind   { return KindNumber }
func (Boolean) Kind() Kind  { return KindBoolean }
func (Text) Kind() Kind     { return KindText }
func (Sequence) Kind() Kind { return KindSequence }
func (Mapping) Kind() Kind  { return KindMapping }

func (Unit) isValue()     {}
func (Number) isValue()   {}
func (Boolean) isValue()  {}
func (Text) isValue()     {}
func (Sequence) isValue() {}
func (Mapping) isValue()  {}

func (Unit) String() string {
	return "()"
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (t Text) String() string {
	return string(t)
}

func (s Sequence) String() string {
	buf := new(strings.Builder)
	buf.WriteString("[")
	for i, elem := range s {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(quoted(elem))
	}
	buf.WriteString("]")
	return buf.String()
}

func (m Mapping) String() string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	buf := new(strings.Builder)
	buf.WriteString("{")
	for i, key := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(strconv.Quote(key))
		buf.WriteString(": ")
		buf.WriteString(quoted(m[key]))
	}
	buf.WriteString("}")
	return buf.String()
}

// text nested in containers is quoted
func quoted(v Value) string {
	if t, ok := v.(Text); ok {
		return strconv.Quote(string(t))
	}
	if v == nil {
		return Unit{}.String()
	}
	return v.String()
}
