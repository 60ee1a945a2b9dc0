package codec

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/stream"
)

// numericCodec handles every fixed-width numeric tag (f64, f32, i8, u8,
// i32, u32, i64, u64): prod(shape) elements of T stored contiguously in
// the stream's byte order, no length prefix beyond the shape itself.
type numericCodec[T any] struct {
	read  func(*stream.Reader) (T, error)
	write func(*stream.Writer, T) error
}

func (c numericCodec[T]) ReadPayload(r *stream.Reader, shape []uint32) ([]any, error) {
	n := ir.NumElements(shape)
	out := make([]any, n)
	for i := range out {
		v, err := c.read(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func (c numericCodec[T]) WritePayload(w *stream.Writer, _ []uint32, data []any) error {
	for i, v := range data {
		tv, ok := v.(T)
		if !ok {
			return fmt.Errorf("codec: element %d has type %T, want %T", i, v, tv)
		}
		if err := c.write(w, tv); err != nil {
			return err
		}
	}

	return nil
}

// logicalCodec handles the logical tag: a MATLAB-style boolean stored as
// a single byte per element.
type logicalCodec struct{}

func (logicalCodec) ReadPayload(r *stream.Reader, shape []uint32) ([]any, error) {
	n := ir.NumElements(shape)
	out := make([]any, n)
	for i := range out {
		v, err := r.ReadLogical()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func (logicalCodec) WritePayload(w *stream.Writer, _ []uint32, data []any) error {
	for i, v := range data {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("codec: logical element %d has type %T, want bool", i, v)
		}
		if err := w.WriteLogical(b); err != nil {
			return err
		}
	}

	return nil
}
