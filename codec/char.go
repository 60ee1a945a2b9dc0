package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/stream"
)

// charCodec handles the char tag. For shape (L,), the payload is exactly
// L raw UTF-8 bytes holding one string; for shape (L, k) it would repeat
// that L-byte string prod(shape[1:]) times, but no known SQW schema
// exercises a rank above 1, and the reference implementation itself
// raises NotImplementedError for it — so does this handler.
type charCodec struct{}

func (charCodec) ReadPayload(r *stream.Reader, shape []uint32) ([]any, error) {
	switch len(shape) {
	case 0:
		return []any{""}, nil
	case 1:
		b, err := r.ReadRaw(int(shape[0]))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, errs.ErrEncoding
		}

		return []any{string(b)}, nil
	default:
		return nil, fmt.Errorf("%w: char array of rank %d", errs.ErrUnsupportedShape, len(shape))
	}
}

func (charCodec) WritePayload(w *stream.Writer, shape []uint32, data []any) error {
	if len(shape) == 0 {
		return nil
	}
	if len(shape) != 1 {
		return fmt.Errorf("%w: char array of rank %d", errs.ErrUnsupportedShape, len(shape))
	}

	s, ok := data[0].(string)
	if !ok {
		return fmt.Errorf("codec: char element has type %T, want string", data[0])
	}

	return w.WriteRaw([]byte(s))
}
