package codec

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/stream"
)

// cellCodec handles the cell tag: payload(cell) is prod(shape) nested
// ObjectArray values, each with its own tag/n_dims/shape envelope.
type cellCodec struct{}

func (cellCodec) ReadPayload(r *stream.Reader, shape []uint32) ([]any, error) {
	n := ir.NumElements(shape)
	out := make([]any, n)
	for i := range out {
		oa, err := ReadObject(r)
		if err != nil {
			return nil, err
		}
		out[i] = oa
	}

	return out, nil
}

func (cellCodec) WritePayload(w *stream.Writer, _ []uint32, data []any) error {
	for i, v := range data {
		oa, ok := v.(ir.ObjectArray)
		if !ok {
			return fmt.Errorf("codec: cell element %d has type %T, want ir.ObjectArray", i, v)
		}
		if err := WriteObject(w, oa); err != nil {
			return err
		}
	}

	return nil
}
