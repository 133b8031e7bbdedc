package lang

import "strconv"

// ValueType enumerates the runtime value categories.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	// TypeUninitialized marks a declared variable that has never been
	// assigned. It is distinct from nil: reading it is a runtime error,
	// while nil is a legitimate storable value.
	TypeUninitialized
)

// Value represents any runtime object in the interpreter.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Nil is the nil value.
var Nil = Value{Type: TypeNil}

// Uninitialized is the sentinel bound by a var declaration without an
// initializer.
var Uninitialized = Value{Type: TypeUninitialized}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a floating-point Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

// Truthy applies the conditional rule: only nil and false are falsy.
func (v Value) Truthy() bool {
	switch v.Type {
	case TypeNil:
		return false
	case TypeBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal is defined across all value kinds; values of different kinds are
// always unequal, and nil equals only nil.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeNil:
		return true
	case TypeBool:
		return v.Bool() == o.Bool()
	case TypeNumber:
		return v.Number() == o.Number()
	case TypeString:
		return v.Str() == o.Str()
	default:
		return false
	}
}

// String returns the display form used by print and by the :+ operator:
// integral numbers print without a fractional part, strings print raw.
func (v Value) String() string {
	switch v.Type {
	case TypeNil:
		return "nil"
	case TypeBool:
		return strconv.FormatBool(v.Bool())
	case TypeNumber:
		return strconv.FormatFloat(v.Number(), 'g', -1, 64)
	case TypeString:
		return v.Str()
	case TypeUninitialized:
		return "<uninitialized>"
	default:
		return "<unknown>"
	}
}
