// Package codec converts between value tokens as they appear in weather
// configuration files and typed ast.Values.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/errors"
)

const floatSuffix = "f"

// Decode converts a token into a Value. It never fails: a token that is not
// a boolean, a suffixed float or an integer is returned as a string.
func Decode(tok string) ast.Value {
	switch tok {
	case "true":
		return ast.Bool(true)
	case "false":
		return ast.Bool(false)
	}

	if v, ok := decodeFloat(tok); ok {
		return ast.Float(v)
	}

	if isInteger(tok) {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return ast.Int(i)
		}
	}

	return ast.String(tok)
}

// decodeFloat accepts "<n>.f" and the canonical non-integral form "<n>f".
// The latter only when encoding the result gives back the same token, so a
// source token is never rewritten.
func decodeFloat(tok string) (float64, bool) {
	body, ok := strings.CutSuffix(tok, floatSuffix)
	if !ok || body == "" || !isDecimal(body) {
		return 0, false
	}
	f, err := strconv.ParseFloat(body, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if strings.HasSuffix(body, ".") {
		return f, true
	}
	if enc, err := encodeFloat(f); err == nil && enc == tok {
		return f, true
	}
	return 0, false
}

// Encode converts a Value into its token form.
func Encode(v ast.Value) (string, error) {
	switch v.Kind() {
	case ast.BoolKind:
		b, _ := v.AsBool()
		return strconv.FormatBool(b), nil
	case ast.IntKind:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10), nil
	case ast.FloatKind:
		f, _ := v.AsFloat()
		return encodeFloat(f)
	case ast.StringKind:
		s, _ := v.AsString()
		return s, nil
	default:
		return "", fmt.Errorf("weathercfg: cannot encode %s value: %w", v.Kind(), errors.ErrUnsupportedValueKind)
	}
}

// encodeFloat writes integral floats as "<int>.f" and everything else as the
// shortest decimal that parses back to f, followed by "f".
func encodeFloat(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("weathercfg: cannot encode non-finite float %v: %w", f, errors.ErrUnsupportedValueKind)
	}
	if f == math.Trunc(f) {
		if f == 0 {
			// -0 prints as "-0"; the format has no negative zero.
			return "0." + floatSuffix, nil
		}
		return strconv.FormatFloat(f, 'f', 0, 64) + "." + floatSuffix, nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + floatSuffix, nil
}

// isInteger reports whether s is an optional '-' followed by ASCII digits.
func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// isDecimal reports whether s is an optional '-', digits, and at most one '.'
// with at least one digit somewhere.
func isDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
