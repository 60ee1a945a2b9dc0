// Package codec implements the type-tag codec: a registry-driven
// reader/writer for each IR variant against the binary wire grammar. One
// payloadHandler is registered per supported ir.Tag; ReadObject and
// WriteObject own the tag/n_dims/shape envelope common to every tag and
// delegate only the tag-specific payload bytes to the registered
// handler — one concrete implementation per tag, selected from a small
// keyed table, the same shape a columnar encoder registry takes when
// selecting per-encoding-scheme implementations.
package codec

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/stream"
)

// payloadHandler reads or writes the tag-specific payload bytes of an
// ObjectArray once its tag and shape have already been consumed.
type payloadHandler interface {
	ReadPayload(r *stream.Reader, shape []uint32) ([]any, error)
	WritePayload(w *stream.Writer, shape []uint32, data []any) error
}

var handlers = map[ir.Tag]payloadHandler{}

// register adds h to the registry for tag, panicking on a duplicate
// registration. It is only ever called from this package's own init(),
// so a duplicate would be a programming error caught immediately at
// package load.
func register(tag ir.Tag, h payloadHandler) {
	if _, exists := handlers[tag]; exists {
		panic(fmt.Sprintf("codec: duplicate handler registered for tag %s", tag))
	}
	handlers[tag] = h
}

func init() {
	register(ir.TagLogical, logicalCodec{})
	register(ir.TagF64, numericCodec[float64]{read: (*stream.Reader).ReadF64, write: (*stream.Writer).WriteF64})
	register(ir.TagF32, numericCodec[float32]{read: (*stream.Reader).ReadF32, write: (*stream.Writer).WriteF32})
	register(ir.TagI8, numericCodec[int8]{read: (*stream.Reader).ReadI8, write: (*stream.Writer).WriteI8})
	register(ir.TagU8, numericCodec[uint8]{read: (*stream.Reader).ReadU8, write: (*stream.Writer).WriteU8})
	register(ir.TagI32, numericCodec[int32]{read: (*stream.Reader).ReadI32, write: (*stream.Writer).WriteI32})
	register(ir.TagU32, numericCodec[uint32]{read: (*stream.Reader).ReadU32, write: (*stream.Writer).WriteU32})
	register(ir.TagI64, numericCodec[int64]{read: (*stream.Reader).ReadI64, write: (*stream.Writer).WriteI64})
	register(ir.TagU64, numericCodec[uint64]{read: (*stream.Reader).ReadU64, write: (*stream.Writer).WriteU64})
	register(ir.TagChar, charCodec{})
	register(ir.TagCell, cellCodec{})
	register(ir.TagStruct, structCodec{})
}

// ReadObject reads one ObjectArray: a tag byte, an n_dims byte, n_dims
// shape u32s, then the tag-specific payload.
//
// A tag of TagSerializable signals a self-describing object follows; it
// carries no shape of its own, so ReadObject consumes the tag and
// recurses.
func ReadObject(r *stream.Reader) (ir.ObjectArray, error) {
	pos, _ := r.Position()

	tagByte, err := r.ReadU8()
	if err != nil {
		return ir.ObjectArray{}, err
	}

	if ir.Tag(tagByte) == ir.TagSerializable {
		return ReadObject(r)
	}

	nDims, err := r.ReadU8()
	if err != nil {
		return ir.ObjectArray{}, err
	}

	shape := make([]uint32, nDims)
	for i := range shape {
		shape[i], err = r.ReadU32()
		if err != nil {
			return ir.ObjectArray{}, err
		}
	}

	h, ok := handlers[ir.Tag(tagByte)]
	if !ok {
		return ir.ObjectArray{}, &errs.UnsupportedTagError{Tag: tagByte, Position: pos}
	}

	data, err := h.ReadPayload(r, shape)
	if err != nil {
		return ir.ObjectArray{}, err
	}

	return ir.ObjectArray{Ty: ir.Tag(tagByte), Shape: shape, Data: data}, nil
}

// WriteObject writes oa's tag, n_dims, shape, and payload. TagSerializable
// is never emitted by this system — there is no handler for it, so
// writing one fails like any other unsupported tag.
func WriteObject(w *stream.Writer, oa ir.ObjectArray) error {
	h, ok := handlers[oa.Ty]
	if !ok {
		pos, _ := w.Position()
		return &errs.UnsupportedTagError{Tag: uint8(oa.Ty), Position: pos}
	}

	if err := w.WriteU8(uint8(oa.Ty)); err != nil {
		return err
	}
	if err := w.WriteU8(uint8(len(oa.Shape))); err != nil {
		return err
	}
	for _, s := range oa.Shape {
		if err := w.WriteU32(s); err != nil {
			return err
		}
	}

	return h.WritePayload(w, oa.Shape, oa.Data)
}
