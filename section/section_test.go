package section_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pace-neutrons/sqw-go/endian"
	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/section"
	"github.com/pace-neutrons/sqw-go/stream"
)

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

func TestFileHeaderRoundTrip(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	h := section.DefaultFileHeader(4)
	require.NoError(t, h.WriteTo(w))

	_, seekErr := buf.Seek(0, io.SeekStart)
	require.NoError(t, seekErr)
	r := stream.NewReader(buf, "", endian.GetLittleEndianEngine())
	got, warnings, err := section.ParseFileHeader(r)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, h, got)
}

func TestFileHeaderByteLayoutLittleEndian(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	h := section.DefaultFileHeader(0)
	require.NoError(t, h.WriteTo(w))

	want := []byte{
		0x06, 0x00, 0x00, 0x00, 'h', 'o', 'r', 'a', 'c', 'e',
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x40,
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	require.Equal(t, want, buf.b[:len(want)])
}

func TestFileHeaderByteLayoutBigEndian(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetBigEndianEngine())
	h := section.DefaultFileHeader(0)
	require.NoError(t, h.WriteTo(w))

	want := []byte{
		0x00, 0x00, 0x00, 0x06, 'h', 'o', 'r', 'a', 'c', 'e',
		0x40, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
	}
	require.Equal(t, want, buf.b[:len(want)])
}

func TestFileHeaderWarnsOnUnexpectedProgName(t *testing.T) {
	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())
	h := section.FileHeader{ProgName: "not_horace", ProgVersion: 3.0, SqwType: section.SqwTypeDND, NDims: 2}
	require.NoError(t, h.WriteTo(w))

	_, seekErr := buf.Seek(0, io.SeekStart)
	require.NoError(t, seekErr)
	r := stream.NewReader(buf, "", endian.GetLittleEndianEngine())
	got, warnings, err := section.ParseFileHeader(r)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Len(t, warnings, 3) // name, version, sqw_type all mismatch
}

func TestBATRoundTrip(t *testing.T) {
	entries := []section.BlockDescriptor{
		{Type: section.BlockRegular, Name: section.BlockName{Level1: "", Level2: "main_header"}, Position: 100, Size: 40, Locked: false},
		{Type: section.BlockPix, Name: section.BlockName{Level1: "pix", Level2: "data_wrap"}, Position: 140, Size: 88, Locked: true},
	}
	bat, err := section.NewBAT(entries)
	require.NoError(t, err)

	buf := &seekBuf{}
	w := stream.NewWriter(buf, endian.GetLittleEndianEngine())

	require.NoError(t, bat.Validate(100))

	_, err = bat.WriteTo(w)
	require.NoError(t, err)

	_, seekErr := buf.Seek(0, io.SeekStart)
	require.NoError(t, seekErr)
	r := stream.NewReader(buf, "", endian.GetLittleEndianEngine())
	got, err := section.ParseBAT(r)
	require.NoError(t, err)
	require.Equal(t, entries, got.Entries)

	d, err := got.Lookup("pix", "data_wrap")
	require.NoError(t, err)
	require.Equal(t, entries[1], d)

	_, err = got.Lookup("nope", "nope")
	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBATRejectsDuplicateNames(t *testing.T) {
	entries := []section.BlockDescriptor{
		{Type: section.BlockRegular, Name: section.BlockName{Level1: "", Level2: "main_header"}, Position: 0, Size: 1},
		{Type: section.BlockRegular, Name: section.BlockName{Level1: "", Level2: "main_header"}, Position: 1, Size: 1},
	}
	_, err := section.NewBAT(entries)
	require.Error(t, err)
}
