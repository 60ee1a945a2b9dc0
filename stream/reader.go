// Package stream implements the endian-aware primitive reads and writes
// SQW's binary grammar is built from: fixed-width scalars,
// length-prefixed character arrays, and position tracking over a seekable
// binary sink or source, encoding and decoding against an
// endian.EndianEngine.
package stream

import (
	"io"
	"math"
	"unicode/utf8"

	"github.com/pace-neutrons/sqw-go/endian"
	"github.com/pace-neutrons/sqw-go/errs"
)

// Reader reads SQW primitives from a seekable byte source in a chosen
// byte order, annotating every failure with the source's path (or
// "in-memory") and the byte position at which it occurred.
type Reader struct {
	src    io.ReadSeeker
	engine endian.EndianEngine
	path   string
}

// NewReader wraps src for reading in the given byte order.
func NewReader(src io.ReadSeeker, path string, engine endian.EndianEngine) *Reader {
	return &Reader{src: src, engine: engine, path: path}
}

// DetectByteorder peeks at the first four bytes available at src's
// current position (restoring the position afterward) and returns the
// EndianEngine the smaller-decoded-value heuristic selects.
func DetectByteorder(src io.ReadSeeker) (endian.EndianEngine, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	var buf [4]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return nil, errs.WithPosition(errs.ErrTruncated, "", start)
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}

	return endian.DetectPreamble(buf), nil
}

// Byteorder returns the reader's configured engine.
func (r *Reader) Byteorder() endian.EndianEngine { return r.engine }

// Position returns the current byte offset in the source.
func (r *Reader) Position() (int64, error) {
	return r.src.Seek(0, io.SeekCurrent)
}

// Seek moves to an absolute byte offset.
func (r *Reader) Seek(offset int64) error {
	_, err := r.src.Seek(offset, io.SeekStart)
	return err
}

func (r *Reader) fail(err error) error {
	pos, _ := r.Position()
	return errs.WithPosition(err, r.path, pos)
}

func (r *Reader) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, r.fail(errs.ErrTruncated)
	}

	return buf, nil
}

// ReadRaw reads n raw bytes.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	return r.readFull(n)
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.readFull(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadLogical reads a MATLAB-style logical, stored on the wire as a
// single byte (0 = false, any nonzero = true).
func (r *Reader) ReadLogical() (bool, error) {
	b, err := r.ReadU8()
	return b != 0, err
}

// ReadI8 reads a signed 8-bit integer.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

// ReadU32 reads an unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.readFull(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadI32 reads a signed 32-bit integer.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.readFull(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// ReadI64 reads a signed 64-bit integer.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads an IEEE-754 single-precision float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads an IEEE-754 double-precision float.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// ReadCharArray reads a length-prefixed UTF-8 string: a u32 byte length
// followed by that many UTF-8 bytes.
func (r *Reader) ReadCharArray() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}

	b, err := r.readFull(int(n))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", r.fail(errs.ErrEncoding)
	}

	return string(b), nil
}

// ReadF32Slice reads n contiguous float32 values.
func (r *Reader) ReadF32Slice(n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
