// Package errors defines the positioned errors reported while scanning and
// parsing alt-config documents.
package errors

import (
	"errors"
	"fmt"
)

// Kinds of parse failures. A *ParseError unwraps to one of these.
var (
	ErrUnexpectedEOF   = errors.New("unexpected end of file")
	ErrKeyExpected     = errors.New("key expected")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrMaxDepth        = errors.New("maximum nesting depth exceeded")
)

// ParseError represents a lexical or structural error. It includes the byte
// offset, the 1-based line and the column of the input position at which the
// error was detected.
type ParseError struct {
	Err     error
	Message string
	Offset  int
	Line    int
	Column  int
}

// New returns a ParseError of the given kind. The optional detail is appended
// to the kind's message.
func New(kind error, offset, line, column int, detail string) *ParseError {
	msg := kind.Error()
	if detail != "" {
		msg += ": " + detail
	}
	return &ParseError{Err: kind, Message: msg, Offset: offset, Line: line, Column: column}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("altcfg: %s at line %d, column %d (offset %d)", e.Message, e.Line, e.Column, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }
