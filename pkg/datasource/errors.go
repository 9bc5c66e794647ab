package datasource

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLine    = errors.New("malformed line")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Error is returned for any problem with the data files: missing or
// unreadable files and lines that cannot be parsed.
// Line is 0 for errors concerning the whole file.
type Error struct {
	File string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewFileError(file string, err error) *Error {
	return &Error{File: file, Err: err}
}

// NewLineError creates an Error for a single line.
// msg is appended to cause to describe the offending content.
func NewLineError(file string, line int, cause error, msg string) *Error {
	return &Error{File: file, Line: line, Err: fmt.Errorf("%w: %s", cause, msg)}
}
