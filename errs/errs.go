// Package errs defines the sentinel error values shared across the SQW
// codec packages, plus a handful of structured error types for failures
// that carry extra diagnostic context (a tag byte, a byte position, a
// block name).
//
// Callers should use errors.Is/errors.As against the values and types
// declared here rather than matching on error strings.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated indicates the underlying stream ended before the
	// expected number of bytes could be read.
	ErrTruncated = errors.New("sqw: truncated read")

	// ErrEncoding indicates a character array did not decode as valid UTF-8.
	ErrEncoding = errors.New("sqw: invalid UTF-8 in character array")

	// ErrUnsupportedBlockType indicates a BAT descriptor names a block
	// type this implementation has no reader for.
	ErrUnsupportedBlockType = errors.New("sqw: unsupported block type")

	// ErrInvalidName indicates a caller passed a malformed block name
	// (wrong arity) to a lookup function.
	ErrInvalidName = errors.New("sqw: invalid block name")

	// ErrAlreadyRegistered indicates a single-shot builder mutator
	// (e.g. RegisterPixelData) was called more than once.
	ErrAlreadyRegistered = errors.New("sqw: already registered")

	// ErrInvalidHeaderSize indicates a fixed-size section was parsed
	// from a byte slice of the wrong length.
	ErrInvalidHeaderSize = errors.New("sqw: invalid header size")

	// ErrUnsupportedShape indicates an IR value's shape is not one this
	// codec or schema handler supports.
	ErrUnsupportedShape = errors.New("sqw: unsupported shape")

	// ErrBuilderClosed indicates a builder method was called after
	// Create() transferred ownership of its blocks to the written file.
	ErrBuilderClosed = errors.New("sqw: builder already created")

	// errSchemaAbort is raised by schema raisers and returned from
	// schema.Raise; sqw.Reader.ReadDataBlock never returns it, converting
	// it into a Warning and falling back to the raw IR.
	errSchemaAbort = errors.New("sqw: schema raise aborted")
)

// SchemaAbort wraps errSchemaAbort with the reason the schema layer gave
// up raising IR into a typed block. It is only ever produced and consumed
// within this module; package schema returns it, package sqw catches it.
func SchemaAbort(reason string) error {
	return fmt.Errorf("%w: %s", errSchemaAbort, reason)
}

// IsSchemaAbort reports whether err is (or wraps) a schema raise abort.
func IsSchemaAbort(err error) bool {
	return errors.Is(err, errSchemaAbort)
}

// UnsupportedTagError is returned when the type-tag codec has no handler
// registered for a tag encountered on read or requested on write.
type UnsupportedTagError struct {
	Tag      uint8
	Position int64
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("sqw: unsupported type tag 0x%02x at position %d", e.Tag, e.Position)
}

// Is reports whether target is also an *UnsupportedTagError, so that
// errors.Is(err, &UnsupportedTagError{}) can be used as a type probe.
func (e *UnsupportedTagError) Is(target error) bool {
	_, ok := target.(*UnsupportedTagError)
	return ok
}

// NotFoundError is returned when a BAT lookup misses.
type NotFoundError struct {
	Level1 string
	Level2 string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sqw: no data block named (%q, %q)", e.Level1, e.Level2)
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// WithPosition annotates err with the byte position at which it occurred,
// and the source path ("in-memory" if the stream has none).
func WithPosition(err error, path string, position int64) error {
	if err == nil {
		return nil
	}
	if path == "" {
		path = "in-memory"
	}

	return fmt.Errorf("%s: at position %d: %w", path, position, err)
}
