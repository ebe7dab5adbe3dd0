package weathercfg

import (
	"github.com/KimNorgaard/go-weathercfg/errors"
	"github.com/KimNorgaard/go-weathercfg/internal/formatter"
)

// Error kinds, re-exported from package errors for convenience.
var (
	ErrMalformedHeader      = errors.ErrMalformedHeader
	ErrMalformedPriority    = errors.ErrMalformedPriority
	ErrUnsupportedValueKind = errors.ErrUnsupportedValueKind
	ErrUnclosedBlock        = errors.ErrUnclosedBlock
	ErrNestedBlock          = errors.ErrNestedBlock
	ErrDuplicateWeatherType = errors.ErrDuplicateWeatherType
	ErrUnexpectedLine       = errors.ErrUnexpectedLine
)

// A ParseError describes malformed input at a file and line.
type ParseError = errors.ParseError

// A FieldError represents a weather-type field whose value could not be
// encoded. It wraps ErrUnsupportedValueKind.
type FieldError = formatter.FieldError
