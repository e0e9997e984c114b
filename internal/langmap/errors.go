package langmap

import (
	"errors"
	"fmt"
)

// ErrNoTree indicates the directory listing resolved to no tree (unknown
// repository, revision or path).
var ErrNoTree = errors.New("no tree at requested revision")

// TransportError reports a failed remote call or an unusable payload.
type TransportError struct {
	Op  string // "list", "fetch source", "fetch icon theme"
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a fetched source file that is not valid TypeScript.
// Line and Column are 1-indexed and zero when unknown.
type ParseError struct {
	Name   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %v", e.Name, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a failure writing an output artifact.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsIOError reports whether err is or wraps an IOError.
func IsIOError(err error) bool {
	var ie *IOError
	return errors.As(err, &ie)
}
