package ast

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	InvalidKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a typed weather parameter: one of bool, int, float or string.
// The zero Value has InvalidKind and cannot be encoded.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: IntKind, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }

// String returns a bare string Value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the supported variants.
func (v Value) IsValid() bool { return v.kind != InvalidKind }

// AsBool returns the boolean held by v. ok is false for other kinds.
func (v Value) AsBool() (b, ok bool) { return v.b, v.kind == BoolKind }

// AsInt returns the integer held by v. ok is false for other kinds.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == IntKind }

// AsFloat returns the float held by v. ok is false for other kinds.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == FloatKind }

// AsString returns the string held by v. ok is false for other kinds.
func (v Value) AsString() (string, bool) { return v.s, v.kind == StringKind }

// IsZero reports whether v is a numeric zero (int 0 or float 0.0).
func (v Value) IsZero() bool {
	switch v.kind {
	case IntKind:
		return v.i == 0
	case FloatKind:
		return v.f == 0
	}
	return false
}

// Equal reports whether v and o hold the same variant and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case BoolKind:
		return v.b == o.b
	case IntKind:
		return v.i == o.i
	case FloatKind:
		return v.f == o.f
	case StringKind:
		return v.s == o.s
	}
	return true
}

// Interface returns the held value as bool, int64, float64 or string,
// or nil for an invalid Value.
func (v Value) Interface() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	case StringKind:
		return v.s
	}
	return nil
}

// String returns a debugging representation of v. It is not the file
// encoding; use the codec for that.
func (v Value) String() string {
	switch v.kind {
	case BoolKind:
		return strconv.FormatBool(v.b)
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringKind:
		return strconv.Quote(v.s)
	}
	return "<invalid>"
}

// GoString implements fmt.GoStringer so test failures print the variant.
func (v Value) GoString() string {
	return fmt.Sprintf("ast.Value{%s: %s}", v.kind, v)
}
