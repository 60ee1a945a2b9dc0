// Package ir implements the intermediate representation SQW uses to model
// MATLAB's value universe: tagged scalars, typed n-dimensional arrays,
// cell arrays, and structs.
//
// The IR is deliberately a closed, flat value model — an ObjectArray
// tagged with a Tag plus a shape plus a slice of per-element data — and
// not a dynamic, reflection-based object graph. Schema types (package
// schema) raise from and lower to this representation at the reader/
// builder boundary; nothing above that boundary walks the IR by field
// reflection.
package ir

import (
	"fmt"
	"time"
)

// Tag identifies the wire type of an ObjectArray, matching the SQW
// type-tag grammar.
type Tag uint8

const (
	TagLogical      Tag = 0
	TagChar         Tag = 1
	TagF64          Tag = 3
	TagF32          Tag = 4
	TagI8           Tag = 5
	TagU8           Tag = 6
	TagI32          Tag = 9
	TagU32          Tag = 10
	TagI64          Tag = 11
	TagU64          Tag = 12
	TagCell         Tag = 23
	TagStruct       Tag = 24
	TagSerializable Tag = 32
)

func (t Tag) String() string {
	switch t {
	case TagLogical:
		return "logical"
	case TagChar:
		return "char"
	case TagF64:
		return "f64"
	case TagF32:
		return "f32"
	case TagI8:
		return "i8"
	case TagU8:
		return "u8"
	case TagI32:
		return "i32"
	case TagU32:
		return "u32"
	case TagI64:
		return "i64"
	case TagU64:
		return "u64"
	case TagCell:
		return "cell"
	case TagStruct:
		return "struct"
	case TagSerializable:
		return "serializable"
	default:
		return fmt.Sprintf("tag(0x%02x)", uint8(t))
	}
}

// ObjectArray is a homogeneous typed n-d array: every element shares Ty.
//
// The meaning of Data depends on Ty:
//   - TagChar: Data holds Go strings, one per prod(shape[1:]) "row";
//     shape[0] is the per-string byte length used on the wire.
//     The overwhelmingly common case is shape=(L,), a single string.
//   - TagCell: Data holds ObjectArray values (each cell's own typed array).
//   - TagStruct: Data holds Struct values.
//   - any other tag: Data holds the tag's native Go scalar type
//     (bool, float64, float32, int8, uint8, int32, uint32, int64, uint64).
type ObjectArray struct {
	Ty    Tag
	Shape []uint32
	Data  []any
}

// NumElements returns the product of Shape (1 for a 0-dimensional shape).
func NumElements(shape []uint32) int {
	n := 1
	for _, s := range shape {
		n *= int(s)
	}

	return n
}

// Validate checks the ObjectArray.Data.len() == prod(shape) contract,
// with the TagChar exception: a char array's element count is
// prod(shape[1:]) strings, not prod(shape) bytes.
func (o ObjectArray) Validate() error {
	var want int
	if o.Ty == TagChar {
		if len(o.Shape) == 0 {
			want = 1
		} else {
			want = NumElements(o.Shape[1:])
		}
	} else {
		want = NumElements(o.Shape)
	}

	if len(o.Data) != want {
		return fmt.Errorf("ir: %s array shape %v wants %d elements, got %d", o.Ty, o.Shape, want, len(o.Data))
	}

	return nil
}

// CellArray is a heterogeneous n-d array: each cell is itself a typed
// ObjectArray.
type CellArray struct {
	Shape []uint32
	Data  []ObjectArray
}

// ToObjectArray boxes a CellArray as the TagCell-tagged ObjectArray its
// wire grammar actually is: payload(cell) is a repeated ObjectArray, so
// CellArray carries no information ObjectArray lacks.
func (c CellArray) ToObjectArray() ObjectArray {
	data := make([]any, len(c.Data))
	for i, v := range c.Data {
		data[i] = v
	}

	return ObjectArray{Ty: TagCell, Shape: c.Shape, Data: data}
}

// Validate checks CellArray.Data.len() == prod(shape).
func (c CellArray) Validate() error {
	if want := NumElements(c.Shape); len(c.Data) != want {
		return fmt.Errorf("ir: cell array shape %v wants %d elements, got %d", c.Shape, want, len(c.Data))
	}

	return nil
}

// Struct is a named-field record. FieldValues is a cell array whose
// element count equals len(FieldNames) and whose shape is (n, 1), the
// reference implementation's 2-D convention that existing Horace readers
// require.
type Struct struct {
	FieldNames  []string
	FieldValues CellArray
}

// NewStruct builds a Struct from parallel name/value slices, shaping the
// field-value cell array as (n, 1) per the reference implementation's
// convention.
func NewStruct(fieldNames []string, fieldValues []ObjectArray) Struct {
	return Struct{
		FieldNames: fieldNames,
		FieldValues: CellArray{
			Shape: []uint32{uint32(len(fieldValues)), 1},
			Data:  fieldValues,
		},
	}
}

// ToObjectArray boxes a Struct as a shape-(1,) TagStruct ObjectArray, the
// shape required for any block's payload.
func (s Struct) ToObjectArray() ObjectArray {
	return ObjectArray{Ty: TagStruct, Shape: []uint32{1}, Data: []any{s}}
}

// Validate checks the field_values.shape == (len(field_names), 1) contract.
func (s Struct) Validate() error {
	if err := s.FieldValues.Validate(); err != nil {
		return err
	}
	if len(s.FieldValues.Shape) != 2 || s.FieldValues.Shape[0] != uint32(len(s.FieldNames)) || s.FieldValues.Shape[1] != 1 {
		return fmt.Errorf("ir: struct field_values shape %v does not match (%d, 1)", s.FieldValues.Shape, len(s.FieldNames))
	}
	if len(s.FieldValues.Data) != len(s.FieldNames) {
		return fmt.Errorf("ir: struct has %d field names but %d field values", len(s.FieldNames), len(s.FieldValues.Data))
	}

	return nil
}

// Field returns the value of the named field and true, or a zero value
// and false if no such field exists. Lookup is linear: structs carry at
// most a few dozen fields, so a map would not pay for its own allocation.
func (s Struct) Field(name string) (ObjectArray, bool) {
	for i, n := range s.FieldNames {
		if n == name {
			return s.FieldValues.Data[i], true
		}
	}

	return ObjectArray{}, false
}

// --- scalar convenience constructors ---
//
// Each wraps a single native Go value in the shape-(1,) ObjectArray that
// the wire grammar requires for a lone scalar.

func Logical(v bool) ObjectArray  { return scalar(TagLogical, v) }
func F64(v float64) ObjectArray   { return scalar(TagF64, v) }
func F32(v float32) ObjectArray   { return scalar(TagF32, v) }
func I8(v int8) ObjectArray       { return scalar(TagI8, v) }
func U8(v uint8) ObjectArray      { return scalar(TagU8, v) }
func I32(v int32) ObjectArray     { return scalar(TagI32, v) }
func U32(v uint32) ObjectArray    { return scalar(TagU32, v) }
func I64(v int64) ObjectArray     { return scalar(TagI64, v) }
func U64(v uint64) ObjectArray    { return scalar(TagU64, v) }

func scalar(ty Tag, v any) ObjectArray {
	return ObjectArray{Ty: ty, Shape: []uint32{1}, Data: []any{v}}
}

// CharString wraps s as a shape-(L,) TagChar ObjectArray, L = len(s) in
// bytes, the on-wire length prefix for the string.
func CharString(s string) ObjectArray {
	return ObjectArray{Ty: TagChar, Shape: []uint32{uint32(len(s))}, Data: []any{s}}
}

// EmptyChar is the canonical empty string, shape (0,).
func EmptyChar() ObjectArray {
	return ObjectArray{Ty: TagChar, Shape: []uint32{0}, Data: []any{""}}
}

// dateTimeLayout is the ISO-8601 seconds-precision layout used for
// DateTime on write: always UTC.
const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime renders t as a TagChar ObjectArray, truncated to seconds in
// UTC.
func DateTime(t time.Time) ObjectArray {
	return CharString(t.UTC().Format(dateTimeLayout))
}

// ParseDateTime parses a char array produced by DateTime (or by Horace
// itself) back into a time.Time. It parses liberally: a bare
// "YYYY-MM-DDTHH:MM:SS" is assumed UTC, but an explicit zone offset or
// "Z" suffix is honored as-is rather than forced to UTC.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("ir: invalid datetime %q: %w", s, err)
	}

	return t, nil
}
