package loader

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one.
var (
	ErrIO     = errors.New("input unreadable")
	ErrFormat = errors.New("malformed input")
)

// Format causes. Each one matches ErrFormat through errors.Is.
var (
	ErrMissingHeader = fmt.Errorf("%w: missing header row", ErrFormat)
	ErrFieldCount    = fmt.Errorf("%w: wrong number of fields", ErrFormat)
	ErrInvalidWeight = fmt.Errorf("%w: weight is not an integer", ErrFormat)
	ErrDuplicateKey  = fmt.Errorf("%w: duplicate key", ErrFormat)
	ErrBadSource     = fmt.Errorf("%w: unsupported input location", ErrFormat)
)

// LoadError carries where a load failed.
type LoadError struct {
	Op      string // "open", "read", "decode"
	Path    string // input path or name
	Line    int    // 1-based line of the offending row, 0 if not row specific
	Field   string // field name within the row
	Cause   error
	Context string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s %s (field %s): %v", e.Op, loc, e.Field, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, loc, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, loc, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building LoadErrors.
type ErrorBuilder struct {
	err LoadError
}

// NewError creates a new error builder for the given operation and input.
func NewError(op, path string) *ErrorBuilder {
	return &ErrorBuilder{err: LoadError{Op: op, Path: path}}
}

// Line sets the offending line.
func (b *ErrorBuilder) Line(n int) *ErrorBuilder {
	b.err.Line = n
	return b
}

// Field sets the offending field.
func (b *ErrorBuilder) Field(name string) *ErrorBuilder {
	b.err.Field = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// ioError wraps an OS or network failure so it matches ErrIO.
func ioError(op, path string, cause error) error {
	return NewError(op, path).Cause(fmt.Errorf("%w: %w", ErrIO, cause)).Err()
}

// IsFormat reports whether err rejects the content of an input.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsIO reports whether err means an input could not be read at all.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}
