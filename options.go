package weathercfg

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-weathercfg/internal/formatter"
)

// Option configures parsing and rendering.
type Option func(*options) error

type options struct {
	schema         formatter.Schema
	filename       string
	strict         bool
	legacyUnclosed bool
	warn           func(file string, line int, msg string)
}

func newOptions(opts []Option) (*options, error) {
	o := &options{schema: formatter.DefaultSchema()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// FieldOrder returns an Option that replaces the canonical order of
// weather-type fields on output. Fields not listed are not written.
//
// At least one field must be given and names must be unique.
func FieldOrder(fields ...string) Option {
	return func(o *options) error {
		if len(fields) == 0 {
			return fmt.Errorf("weathercfg: field order must not be empty")
		}
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if f == "" || seen[f] {
				return fmt.Errorf("weathercfg: invalid or repeated field %q in field order", f)
			}
			seen[f] = true
		}
		o.schema.FieldOrder = slices.Clone(fields)
		return nil
	}
}

// TightColon returns an Option that sets the weather types whose block opener
// is written without a space before the colon. The default is Underground.
func TightColon(names ...string) Option {
	return func(o *options) error {
		o.schema.TightColon = slices.Clone(names)
		return nil
	}
}

// Filename returns an Option that records the source file name on parsed
// configs and in parse errors.
func Filename(name string) Option {
	return func(o *options) error {
		o.filename = name
		return nil
	}
}

// Strict returns an Option that makes lines matching no known production a
// parse error. By default they are skipped with a warning.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// LegacyUnclosedBlocks returns an Option that drops a weather block still
// open at the end of the file, as the original tooling did, instead of
// failing with ErrUnclosedBlock.
func LegacyUnclosedBlocks() Option {
	return func(o *options) error {
		o.legacyUnclosed = true
		return nil
	}
}

// WarnFunc returns an Option that receives problems the parser tolerated.
func WarnFunc(fn func(file string, line int, msg string)) Option {
	return func(o *options) error {
		o.warn = fn
		return nil
	}
}

// WithLogger returns an Option that logs tolerated problems at warn level.
func WithLogger(l zerolog.Logger) Option {
	return WarnFunc(func(file string, line int, msg string) {
		l.Warn().Str("file", file).Int("line", line).Msg(msg)
	})
}
