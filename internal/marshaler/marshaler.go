package marshaler

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/errors"
)

// Value converts a decoded Go value into an ast.Value.
//
// Booleans, integers, floats and strings map to the variant of the same name.
// A json.Number becomes an int when it is written without a fraction or
// exponent, and a float otherwise. Everything else, including nil, fails with
// ErrUnsupportedValueKind.
func Value(v any) (ast.Value, error) {
	if n, ok := v.(json.Number); ok {
		return number(n)
	}
	return marshal(reflect.ValueOf(v))
}

func number(n json.Number) (ast.Value, error) {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return ast.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return ast.Value{}, fmt.Errorf("weathercfg: number %s: %w", n, errors.ErrUnsupportedValueKind)
	}
	return ast.Float(f), nil
}

func marshal(v reflect.Value) (ast.Value, error) {
	// Follow pointers and interfaces to find the concrete value.
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ast.Value{}, fmt.Errorf("weathercfg: null value: %w", errors.ErrUnsupportedValueKind)
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		return ast.Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val := v.Uint()
		if val > math.MaxInt64 {
			return ast.Value{}, fmt.Errorf("weathercfg: %d overflows int64: %w", val, errors.ErrUnsupportedValueKind)
		}
		return ast.Int(int64(val)), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return ast.Value{}, fmt.Errorf("weathercfg: non-finite float %v: %w", f, errors.ErrUnsupportedValueKind)
		}
		return ast.Float(f), nil
	case reflect.String:
		return ast.String(v.String()), nil
	case reflect.Invalid:
		return ast.Value{}, fmt.Errorf("weathercfg: null value: %w", errors.ErrUnsupportedValueKind)
	default:
		return ast.Value{}, fmt.Errorf("weathercfg: cannot use %s as a field value: %w", v.Type(), errors.ErrUnsupportedValueKind)
	}
}
