package weathercfg

import (
	"io"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/formatter"
)

// Encoder writes configs to an output stream in the game's text format.
type Encoder struct {
	w    io.Writer
	opts []Option
	f    *formatter.Formatter
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes each config in order. Configs are separated by a single
// newline, including across calls on the same Encoder. No trailing newline is
// written.
func (e *Encoder) Encode(cfgs ...*ast.Config) error {
	if e.f == nil {
		o, err := newOptions(e.opts)
		if err != nil {
			return err
		}
		e.f = formatter.New(e.w, o.schema)
	}
	for _, cfg := range cfgs {
		if err := e.f.Format(cfg); err != nil {
			return err
		}
	}
	return nil
}
