// Package calcerr defines the typed failures returned by every calculator.
//
// A calculator never panics and never returns NaN or an infinity in place of
// a failure. Instead it returns an *Error carrying a Kind and the names of the
// input fields that caused it, so presentation code can map the failure to a
// message next to the right form control.
package calcerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of a calculation failure.
type Kind string

const (
	// DivisionByZero is a zero denominator or divisor.
	DivisionByZero Kind = "division_by_zero"
	// InvalidInput is a missing, non-finite, out-of-range or unknown input.
	InvalidInput Kind = "invalid_input"
	// UndefinedResult is a mathematically undefined combination of otherwise
	// valid inputs.
	UndefinedResult Kind = "undefined_result"
)

// Sentinels for use with errors.Is; they match any *Error of the same Kind.
var (
	ErrDivisionByZero  = &Error{Kind: DivisionByZero}
	ErrInvalidInput    = &Error{Kind: InvalidInput}
	ErrUndefinedResult = &Error{Kind: UndefinedResult}
)

// Error is a calculation failure.
type Error struct {
	Kind    Kind     `json:"kind"`
	Fields  []string `json:"fields,omitempty"`
	Message string   `json:"message"`
}

// New creates an Error of the given kind for the offending fields.
func New(kind Kind, message string, fields ...string) *Error {
	return &Error{Kind: kind, Fields: fields, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind Kind, fields []string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Fields: fields, Message: fmt.Sprintf(format, args...)}
}

// Invalid is shorthand for an InvalidInput error on a single field.
func Invalid(field, message string) *Error {
	return New(InvalidInput, message, field)
}

// Error implements error.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.ReplaceAll(string(e.Kind), "_", " ")
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, strings.Join(e.Fields, ", "), msg)
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when err
// is not a calculation failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// FieldsOf returns the offending fields of the first *Error in err's chain.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
