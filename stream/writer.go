package stream

import (
	"io"
	"math"

	"github.com/pace-neutrons/sqw-go/endian"
)

// Writer writes SQW primitives to a seekable byte sink in a chosen byte
// order. Unlike Reader, Writer never auto-detects: a builder always
// knows the byte order it is writing in.
type Writer struct {
	dst    io.WriteSeeker
	engine endian.EndianEngine
}

// NewWriter wraps dst for writing in the given byte order.
func NewWriter(dst io.WriteSeeker, engine endian.EndianEngine) *Writer {
	return &Writer{dst: dst, engine: engine}
}

// Byteorder returns the writer's configured engine.
func (w *Writer) Byteorder() endian.EndianEngine { return w.engine }

// Position returns the current byte offset in the sink.
func (w *Writer) Position() (int64, error) {
	return w.dst.Seek(0, io.SeekCurrent)
}

// Seek moves to an absolute byte offset.
func (w *Writer) Seek(offset int64) error {
	_, err := w.dst.Seek(offset, io.SeekStart)
	return err
}

// WriteRaw writes raw bytes as-is.
func (w *Writer) WriteRaw(b []byte) error {
	_, err := w.dst.Write(b)
	return err
}

// WriteU8 writes an unsigned 8-bit integer.
func (w *Writer) WriteU8(v uint8) error {
	return w.WriteRaw([]byte{v})
}

// WriteLogical writes a MATLAB-style logical as a single byte.
func (w *Writer) WriteLogical(v bool) error {
	if v {
		return w.WriteU8(1)
	}

	return w.WriteU8(0)
}

// WriteI8 writes a signed 8-bit integer.
func (w *Writer) WriteI8(v int8) error {
	return w.WriteU8(uint8(v))
}

// WriteU32 writes an unsigned 32-bit integer.
func (w *Writer) WriteU32(v uint32) error {
	b := make([]byte, 4)
	w.engine.PutUint32(b, v)
	return w.WriteRaw(b)
}

// WriteI32 writes a signed 32-bit integer.
func (w *Writer) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteU64 writes an unsigned 64-bit integer.
func (w *Writer) WriteU64(v uint64) error {
	b := make([]byte, 8)
	w.engine.PutUint64(b, v)
	return w.WriteRaw(b)
}

// WriteI64 writes a signed 64-bit integer.
func (w *Writer) WriteI64(v int64) error {
	return w.WriteU64(uint64(v))
}

// WriteF32 writes an IEEE-754 single-precision float.
func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

// WriteF64 writes an IEEE-754 double-precision float.
func (w *Writer) WriteF64(v float64) error {
	return w.WriteU64(math.Float64bits(v))
}

// WriteCharArray writes s as a u32 byte length followed by its UTF-8 bytes.
func (w *Writer) WriteCharArray(s string) error {
	if err := w.WriteU32(uint32(len(s))); err != nil {
		return err
	}

	return w.WriteRaw([]byte(s))
}

// WriteF32Slice writes a contiguous run of float32 values.
func (w *Writer) WriteF32Slice(vs []float32) error {
	for _, v := range vs {
		if err := w.WriteF32(v); err != nil {
			return err
		}
	}

	return nil
}
