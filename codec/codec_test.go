package codec_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pace-neutrons/sqw-go/codec"
	"github.com/pace-neutrons/sqw-go/endian"
	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/stream"
)

// seekBuf is a growable in-memory io.ReadWriteSeeker, standing in for the
// orcaman/writerseeker sink the builder uses at runtime.
type seekBuf struct {
	b   []byte
	pos int64
}

func (s *seekBuf) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.b)) {
		return 0, io.EOF
	}
	n := copy(p, s.b[s.pos:])
	s.pos += int64(n)

	return n, nil
}

func (s *seekBuf) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.b)) {
		grown := make([]byte, end)
		copy(grown, s.b)
		s.b = grown
	}
	copy(s.b[s.pos:end], p)
	s.pos = end

	return len(p), nil
}

func (s *seekBuf) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(len(s.b)) + offset
	}

	return s.pos, nil
}

func roundTrip(t *testing.T, oa ir.ObjectArray) ir.ObjectArray {
	t.Helper()

	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	require.NoError(t, codec.WriteObject(w, oa))

	_, seekErr := buf.Seek(0, io.SeekStart)
	require.NoError(t, seekErr)
	r := stream.NewReader(buf, "", endian.GetLittleEndianEngine())
	got, err := codec.ReadObject(r)
	require.NoError(t, err)

	return got
}

func TestRoundTripScalarNumerics(t *testing.T) {
	require.Equal(t, ir.F64(3.5), roundTrip(t, ir.F64(3.5)))
	require.Equal(t, ir.F32(1.25), roundTrip(t, ir.F32(1.25)))
	require.Equal(t, ir.I8(-12), roundTrip(t, ir.I8(-12)))
	require.Equal(t, ir.U8(200), roundTrip(t, ir.U8(200)))
	require.Equal(t, ir.I32(-70000), roundTrip(t, ir.I32(-70000)))
	require.Equal(t, ir.U32(70000), roundTrip(t, ir.U32(70000)))
	require.Equal(t, ir.I64(-5000000000), roundTrip(t, ir.I64(-5000000000)))
	require.Equal(t, ir.U64(5000000000), roundTrip(t, ir.U64(5000000000)))
	require.Equal(t, ir.Logical(true), roundTrip(t, ir.Logical(true)))
}

func TestRoundTripCharString(t *testing.T) {
	require.Equal(t, ir.CharString("horace"), roundTrip(t, ir.CharString("horace")))
	require.Equal(t, ir.EmptyChar(), roundTrip(t, ir.EmptyChar()))
}

func TestRoundTripCellArray(t *testing.T) {
	cell := ir.CellArray{
		Shape: []uint32{2},
		Data:  []ir.ObjectArray{ir.F64(1), ir.CharString("a")},
	}
	got := roundTrip(t, cell.ToObjectArray())
	require.Equal(t, cell.ToObjectArray(), got)
}

func TestRoundTripStruct(t *testing.T) {
	s := ir.NewStruct([]string{"name", "version"}, []ir.ObjectArray{
		ir.CharString("main_header_cl"),
		ir.F64(2.0),
	})
	require.NoError(t, s.Validate())

	got := roundTrip(t, s.ToObjectArray())
	require.Equal(t, ir.TagStruct, got.Ty)
	require.Len(t, got.Data, 1)

	gotStruct, ok := got.Data[0].(ir.Struct)
	require.True(t, ok)
	require.Equal(t, s.FieldNames, gotStruct.FieldNames)

	v, ok := gotStruct.Field("name")
	require.True(t, ok)
	require.Equal(t, ir.CharString("main_header_cl"), v)
}

func TestReadObjectSkipsSerializableTag(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())

	require.NoError(t, w.WriteU8(uint8(ir.TagSerializable)))
	require.NoError(t, codec.WriteObject(w, ir.F64(9)))

	_, seekErr := buf.Seek(0, io.SeekStart)
	require.NoError(t, seekErr)
	r := stream.NewReader(buf, "", endian.GetLittleEndianEngine())
	got, err := codec.ReadObject(r)
	require.NoError(t, err)
	require.Equal(t, ir.F64(9), got)
}

func TestReadObjectUnsupportedTag(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	require.NoError(t, w.WriteU8(0x7f))
	require.NoError(t, w.WriteU8(0))

	_, seekErr := buf.Seek(0, io.SeekStart)
	require.NoError(t, seekErr)
	r := stream.NewReader(buf, "", endian.GetLittleEndianEngine())
	_, err := codec.ReadObject(r)
	require.Error(t, err)

	var tagErr *errs.UnsupportedTagError
	require.ErrorAs(t, err, &tagErr)
	require.Equal(t, uint8(0x7f), tagErr.Tag)
}

func TestWriteObjectUnsupportedTag(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	err := codec.WriteObject(w, ir.ObjectArray{Ty: ir.TagSerializable, Shape: []uint32{1}, Data: []any{1.0}})
	require.Error(t, err)

	var tagErr *errs.UnsupportedTagError
	require.ErrorAs(t, err, &tagErr)
}

func TestCharArrayRankAboveOneRejected(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	oa := ir.ObjectArray{Ty: ir.TagChar, Shape: []uint32{3, 2}, Data: []any{"ab", "cd"}}
	err := codec.WriteObject(w, oa)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnsupportedShape)
}
