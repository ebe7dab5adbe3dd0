// Package errors defines the error kinds reported while reading and writing
// weather configuration files.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kinds of failure. Every error returned by the parser and the serializer
// matches exactly one of these with errors.Is.
var (
	ErrMalformedHeader      = stderrors.New("malformed header")
	ErrMalformedPriority    = stderrors.New("malformed priority")
	ErrUnsupportedValueKind = stderrors.New("unsupported value kind")
	ErrUnclosedBlock        = stderrors.New("unclosed block")
	ErrNestedBlock          = stderrors.New("nested block")
	ErrDuplicateWeatherType = stderrors.New("duplicate weather type")
	ErrUnexpectedLine       = stderrors.New("unexpected line")
)

// ParseError represents a single error that occurred during parsing.
// It includes the file and line of the error.
type ParseError struct {
	Kind    error
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.File != "" {
		loc = e.File + ":" + fmt.Sprint(e.Line)
	}
	if e.Message == "" {
		return fmt.Sprintf("weathercfg: %s: %s", loc, e.Kind)
	}
	return fmt.Sprintf("weathercfg: %s: %s: %s", loc, e.Kind, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Newf returns a ParseError of the given kind at line.
func Newf(kind error, line int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
