package weathercfg

import (
	"bytes"
	"strings"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/codec"
)

// Parse parses one weather configuration file. A leading UTF-8 byte order
// mark is ignored and both LF and CRLF line endings are accepted.
func Parse(data []byte, opts ...Option) (*ast.Config, error) {
	return NewDecoder(bytes.NewReader(data), opts...).Decode()
}

// Render returns the text of cfg, lines joined by "\n" with no trailing
// newline.
func Render(cfg *ast.Config, opts ...Option) (string, error) {
	return RenderAll([]*ast.Config{cfg}, opts...)
}

// RenderAll renders every config in the order given and joins them with a
// single newline.
func RenderAll(cfgs []*ast.Config, opts ...Option) (string, error) {
	var b strings.Builder
	if err := NewEncoder(&b, opts...).Encode(cfgs...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ParseValue converts a value token such as "50.f", "-1" or "true" into a
// typed value. Tokens that are not booleans or numbers become strings.
func ParseValue(tok string) ast.Value {
	return codec.Decode(tok)
}

// FormatValue converts a typed value into its token form. Integral floats are
// written "<n>.f", other floats as the shortest exact decimal followed by "f".
func FormatValue(v ast.Value) (string, error) {
	return codec.Encode(v)
}
