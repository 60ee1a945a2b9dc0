package ir

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestObjectArrayValidate(t *testing.T) {
	require.NoError(t, F64(1.5).Validate())

	bad := ObjectArray{Ty: TagF64, Shape: []uint32{2}, Data: []any{1.0}}
	require.Error(t, bad.Validate())
}

func TestCharStringShapeIsByteLength(t *testing.T) {
	c := CharString("horace")
	require.Equal(t, []uint32{6}, c.Shape)
	require.NoError(t, c.Validate())
}

func TestStructRoundTripsFields(t *testing.T) {
	s := NewStruct(
		[]string{"title", "nfiles"},
		[]ObjectArray{CharString("my title"), F64(0)},
	)
	require.NoError(t, s.Validate())

	v, ok := s.Field("title")
	require.True(t, ok)
	require.Equal(t, "my title", v.Data[0])

	_, ok = s.Field("missing")
	require.False(t, ok)
}

func TestStructToObjectArrayShape(t *testing.T) {
	s := NewStruct([]string{"a"}, []ObjectArray{F64(1)})
	oa := s.ToObjectArray()
	require.Equal(t, TagStruct, oa.Ty)
	require.Equal(t, []uint32{1}, oa.Shape)
}

func TestDateTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	oa := DateTime(now)
	require.Equal(t, "2026-07-31T12:00:00", oa.Data[0])

	parsed, err := ParseDateTime(oa.Data[0].(string))
	require.NoError(t, err)
	require.True(t, now.Equal(parsed))
}

func TestParseDateTimeHonorsExplicitOffset(t *testing.T) {
	parsed, err := ParseDateTime("2026-07-31T12:00:00+02:00")
	require.NoError(t, err)
	_, offset := parsed.Zone()
	require.Equal(t, 2*60*60, offset)
}

func TestCellArrayValidate(t *testing.T) {
	c := CellArray{Shape: []uint32{2, 1}, Data: []ObjectArray{F64(1), F64(2)}}
	require.NoError(t, c.Validate())

	bad := CellArray{Shape: []uint32{3, 1}, Data: []ObjectArray{F64(1)}}
	require.Error(t, bad.Validate())
}
