package weathercfg

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/errors"
	"github.com/KimNorgaard/go-weathercfg/internal/lexer"
	"github.com/KimNorgaard/go-weathercfg/internal/parser"
)

// Decoder reads a weather configuration file from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// It is the caller's responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the whole input and returns the config it describes.
//
// If the input is malformed, Decode returns a *ParseError and no config.
func (d *Decoder) Decode() (*ast.Config, error) {
	if d.r == nil {
		return nil, fmt.Errorf("weathercfg: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return nil, err
	}

	mode := parser.Mode{
		Strict:         o.strict,
		LegacyUnclosed: o.legacyUnclosed,
	}
	if o.warn != nil {
		mode.Warn = func(line int, msg string) { o.warn(o.filename, line, msg) }
	}

	cfg, err := parser.New(lexer.New(d.r), mode).Parse()
	if err != nil {
		var perr *errors.ParseError
		if stderrors.As(err, &perr) {
			perr.File = o.filename
			return nil, perr
		}
		return nil, fmt.Errorf("weathercfg: reading %s: %w", o.filename, err)
	}
	cfg.Filename = o.filename
	return cfg, nil
}
