package codec

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/stream"
)

// structCodec handles the struct tag: each struct is stored as a
// field-name table followed by a cell array of field values shaped
// (n_fields, 1), so field i's value lives at field_values.Data[i]. A
// struct array of prod(shape) elements repeats this whole record once
// per element.
//
//	n_fields:u32
//	name_lens[n_fields]:u32
//	names: n_fields raw UTF-8 byte runs, name_lens[i] bytes each
//	field_values: ObjectArray with tag=cell, shape=(n_fields,1)
type structCodec struct{}

func (structCodec) ReadPayload(r *stream.Reader, shape []uint32) ([]any, error) {
	n := ir.NumElements(shape)
	out := make([]any, n)
	for i := range out {
		s, err := readStruct(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

func (structCodec) WritePayload(w *stream.Writer, _ []uint32, data []any) error {
	for i, v := range data {
		s, ok := v.(ir.Struct)
		if !ok {
			return fmt.Errorf("codec: struct element %d has type %T, want ir.Struct", i, v)
		}
		if err := writeStruct(w, s); err != nil {
			return err
		}
	}

	return nil
}

func readStruct(r *stream.Reader) (ir.Struct, error) {
	nFields, err := r.ReadU32()
	if err != nil {
		return ir.Struct{}, err
	}

	nameLens := make([]uint32, nFields)
	for i := range nameLens {
		nameLens[i], err = r.ReadU32()
		if err != nil {
			return ir.Struct{}, err
		}
	}

	names := make([]string, nFields)
	for i, l := range nameLens {
		b, err := r.ReadRaw(int(l))
		if err != nil {
			return ir.Struct{}, err
		}
		names[i] = string(b)
	}

	fieldValuesOA, err := ReadObject(r)
	if err != nil {
		return ir.Struct{}, err
	}

	fieldValues, err := objectArrayToCellArray(fieldValuesOA)
	if err != nil {
		return ir.Struct{}, err
	}

	return ir.Struct{FieldNames: names, FieldValues: fieldValues}, nil
}

func writeStruct(w *stream.Writer, s ir.Struct) error {
	if err := w.WriteU32(uint32(len(s.FieldNames))); err != nil {
		return err
	}
	for _, name := range s.FieldNames {
		if err := w.WriteU32(uint32(len(name))); err != nil {
			return err
		}
	}
	for _, name := range s.FieldNames {
		if err := w.WriteRaw([]byte(name)); err != nil {
			return err
		}
	}

	return WriteObject(w, s.FieldValues.ToObjectArray())
}

// objectArrayToCellArray recovers a CellArray from the ObjectArray that
// ReadObject produces for a cell-tagged payload, where each element of
// Data is itself an ir.ObjectArray (see cellCodec.ReadPayload).
func objectArrayToCellArray(oa ir.ObjectArray) (ir.CellArray, error) {
	if oa.Ty != ir.TagCell {
		return ir.CellArray{}, fmt.Errorf("codec: struct field_values has tag %s, want cell", oa.Ty)
	}

	elems := make([]ir.ObjectArray, len(oa.Data))
	for i, v := range oa.Data {
		inner, ok := v.(ir.ObjectArray)
		if !ok {
			return ir.CellArray{}, fmt.Errorf("codec: cell element %d has type %T, want ir.ObjectArray", i, v)
		}
		elems[i] = inner
	}

	return ir.CellArray{Shape: oa.Shape, Data: elems}, nil
}
