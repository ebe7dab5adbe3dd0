package formatter

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/codec"
)

const (
	fieldIndent = "   "
	paramIndent = "      "
	newline     = "\n"
)

// Schema describes the parts of the output layout that are not derived from
// the config itself.
type Schema struct {
	// FieldOrder lists the weather-type fields that are written, in order.
	// Fields not listed are dropped.
	FieldOrder []string
	// TightColon lists weather-type names whose block opener is written
	// "Name: struct.begin" instead of "Name : struct.begin".
	TightColon []string
}

// DefaultSchema returns the layout used by the game's own files.
func DefaultSchema() Schema {
	return Schema{
		FieldOrder: []string{
			"BlendWeight",
			"BlendWeightIncrease",
			"WeatherDurationMin",
			"WeatherDurationMax",
			"MaximumRepeatAmount",
			"MaximumCooldownWeatherAmount",
			"bAllowInDialogueTransition",
		},
		TightColon: []string{"Underground"},
	}
}

// FieldError reports a weather-type field that could not be encoded.
type FieldError struct {
	SID     string
	Weather string
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("weathercfg: config %s: %s.%s: %v", e.SID, e.Weather, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Formatter writes configs to an output stream.
type Formatter struct {
	w      io.Writer
	schema Schema
	n      int // configs written so far
}

// New returns a new formatter that writes to w.
func New(w io.Writer, schema Schema) *Formatter {
	return &Formatter{w: w, schema: schema}
}

// Format writes cfg. Consecutive configs are separated by a single newline;
// no trailing newline is written.
//
// The config is rendered completely before anything is written, so an
// encoding error never leaves a partial config in the output.
func (f *Formatter) Format(cfg *ast.Config) error {
	lines, err := f.lines(cfg)
	if err != nil {
		return err
	}
	text := strings.Join(lines, newline)
	if f.n > 0 {
		text = newline + text
	}
	if _, err := io.WriteString(f.w, text); err != nil {
		return err
	}
	f.n++
	return nil
}

func (f *Formatter) lines(cfg *ast.Config) ([]string, error) {
	out := make([]string, 0, 4+len(cfg.WeatherOrder)*(len(f.schema.FieldOrder)+2))

	header := cfg.ID + " : struct.begin"
	if cfg.RefKey != "" {
		header += " {refkey=" + cfg.RefKey + "}"
	}
	out = append(out, header, fieldIndent+"SID = "+cfg.SID)

	if cfg.Priority != nil {
		out = append(out, fieldIndent+"Priority = "+strconv.Itoa(*cfg.Priority))
	}
	for _, p := range cfg.ExtraParams() {
		out = append(out, fieldIndent+p.Name+" = "+p.Value)
	}

	for _, name := range cfg.WeatherOrder {
		w, ok := cfg.WeatherTypes[name]
		if !ok {
			return nil, fmt.Errorf("weathercfg: config %s: weather type %q listed in order but missing", cfg.SID, name)
		}
		out = append(out, fieldIndent+f.blockOpener(name))
		for _, field := range f.schema.FieldOrder {
			v, ok := w.Params[field]
			if !ok {
				continue
			}
			tok, err := codec.Encode(v)
			if err != nil {
				return nil, &FieldError{SID: cfg.SID, Weather: name, Field: field, Err: err}
			}
			out = append(out, paramIndent+field+" = "+tok)
		}
		out = append(out, fieldIndent+"struct.end")
	}

	return append(out, "struct.end"), nil
}

func (f *Formatter) blockOpener(name string) string {
	if slices.Contains(f.schema.TightColon, name) {
		return name + ": struct.begin"
	}
	return name + " : struct.begin"
}
