package section

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/stream"
)

// SqwType distinguishes a full SQW file (with pixel data) from a
// DND-only file.
type SqwType uint32

const (
	SqwTypeDND SqwType = 0
	SqwTypeSQW SqwType = 1
)

func (t SqwType) String() string {
	switch t {
	case SqwTypeDND:
		return "DND"
	case SqwTypeSQW:
		return "SQW"
	default:
		return fmt.Sprintf("sqw_type(%d)", uint32(t))
	}
}

// expectedProgName and expectedProgVersion are the values a well-formed
// Horace-written file carries; a mismatch is not fatal, only worth
// surfacing to the caller.
const (
	expectedProgName    = "horace"
	expectedProgVersion = 4.0
)

// FileHeader is the fixed-shape preamble every SQW file opens with:
// prog_name:char-array prog_version:f64 sqw_type:u32 n_dims:u32.
type FileHeader struct {
	ProgName    string
	ProgVersion float64
	SqwType     SqwType
	NDims       uint32
}

// ParseFileHeader reads a FileHeader from r and reports any soft
// validation mismatches as warning strings; only a stream failure
// produces a non-nil error.
func ParseFileHeader(r *stream.Reader) (FileHeader, []string, error) {
	var h FileHeader
	var warnings []string

	progName, err := r.ReadCharArray()
	if err != nil {
		return FileHeader{}, nil, err
	}
	h.ProgName = progName
	if progName != expectedProgName {
		warnings = append(warnings, fmt.Sprintf("unexpected program name %q (want %q)", progName, expectedProgName))
	}

	progVersion, err := r.ReadF64()
	if err != nil {
		return FileHeader{}, nil, err
	}
	h.ProgVersion = progVersion
	if progVersion != expectedProgVersion {
		warnings = append(warnings, fmt.Sprintf("unexpected program version %v (want %v)", progVersion, expectedProgVersion))
	}

	sqwType, err := r.ReadU32()
	if err != nil {
		return FileHeader{}, nil, err
	}
	h.SqwType = SqwType(sqwType)
	if h.SqwType != SqwTypeSQW {
		warnings = append(warnings, fmt.Sprintf("unexpected sqw_type %s (want %s)", h.SqwType, SqwTypeSQW))
	}

	nDims, err := r.ReadU32()
	if err != nil {
		return FileHeader{}, nil, err
	}
	h.NDims = nDims

	return h, warnings, nil
}

// WriteTo serializes h to w in the grammar ParseFileHeader reads.
func (h FileHeader) WriteTo(w *stream.Writer) error {
	if err := w.WriteCharArray(h.ProgName); err != nil {
		return err
	}
	if err := w.WriteF64(h.ProgVersion); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(h.SqwType)); err != nil {
		return err
	}

	return w.WriteU32(h.NDims)
}

// DefaultFileHeader returns the header a well-formed builder output
// carries: the real program name/version this module identifies as, a
// full SQW file, and the given dimensionality.
func DefaultFileHeader(nDims uint32) FileHeader {
	return FileHeader{
		ProgName:    expectedProgName,
		ProgVersion: expectedProgVersion,
		SqwType:     SqwTypeSQW,
		NDims:       nDims,
	}
}
