package schema

import (
	"math"

	"github.com/pace-neutrons/sqw-go/ir"
)

// PixMetadata is the ("pix", "metadata") block describing the shape of
// the pixel array that follows the ("pix", "data_wrap") placeholder
// block. DataRange holds one [min, max] pair per row, seeded to
// [+Inf, -Inf] at registration time: the reference builder writes this
// same unreachable-bounds placeholder because the actual per-row min/max
// is only known once real pixel data is written, which is out of scope
// here.
type PixMetadata struct {
	FullFilename string
	NRows        int
	NPixels      uint64
	NDims        int
	DataRange    [][2]float64
}

const (
	pixMetadataSerialName = "pix_metadata"
	pixMetadataVersion    = 1.0
)

// DefaultPixRows is the canonical 9-row layout the reference
// implementation's _DEFAULT_PIX_ROWS uses when a builder does not supply
// its own row names.
var DefaultPixRows = []string{"h", "k", "l", "E", "irun", "idet", "ien", "signal", "error"}

// NewPixMetadata builds the placeholder metadata RegisterPixelData
// registers: nRows rows each seeded to [+Inf, -Inf].
func NewPixMetadata(fullFilename string, nRows int, nPixels uint64, nDims int) PixMetadata {
	dataRange := make([][2]float64, nRows)
	for i := range dataRange {
		dataRange[i] = [2]float64{math.Inf(1), math.Inf(-1)}
	}

	return PixMetadata{
		FullFilename: fullFilename,
		NRows:        nRows,
		NPixels:      nPixels,
		NDims:        nDims,
		DataRange:    dataRange,
	}
}

func (m PixMetadata) ToIR() ir.ObjectArray {
	rangeData := make([]any, len(m.DataRange)*2)
	for i, pair := range m.DataRange {
		rangeData[2*i] = pair[0]
		rangeData[2*i+1] = pair[1]
	}

	s := ir.NewStruct(
		[]string{"serial_name", "version", "full_filename", "n_rows", "n_pixels", "n_dims", "data_range"},
		[]ir.ObjectArray{
			ir.CharString(pixMetadataSerialName),
			ir.F64(pixMetadataVersion),
			ir.CharString(m.FullFilename),
			ir.F64(float64(m.NRows)),
			ir.F64(float64(m.NPixels)),
			ir.F64(float64(m.NDims)),
			{Ty: ir.TagF64, Shape: []uint32{uint32(len(m.DataRange)), 2}, Data: rangeData},
		},
	)

	return s.ToObjectArray()
}

func raisePixMetadata(s ir.Struct) (PixMetadata, error) {
	fullFilename, err := fieldString(s, "full_filename")
	if err != nil {
		return PixMetadata{}, err
	}
	nRows, err := fieldF64(s, "n_rows")
	if err != nil {
		return PixMetadata{}, err
	}
	nPixels, err := fieldF64(s, "n_pixels")
	if err != nil {
		return PixMetadata{}, err
	}
	nDims, err := fieldF64(s, "n_dims")
	if err != nil {
		return PixMetadata{}, err
	}

	dataRange, ok := s.Field("data_range")
	if !ok {
		return PixMetadata{}, schemaAbortMissing("missing field \"data_range\"")
	}
	if len(dataRange.Shape) != 2 || dataRange.Shape[1] != 2 {
		return PixMetadata{}, schemaAbortMissing("data_range has unexpected shape")
	}

	rows := int(dataRange.Shape[0])
	pairs := make([][2]float64, rows)
	for i := 0; i < rows; i++ {
		lo, ok := dataRange.Data[2*i].(float64)
		if !ok {
			return PixMetadata{}, schemaAbortMissing("data_range element is not a float64")
		}
		hi, ok := dataRange.Data[2*i+1].(float64)
		if !ok {
			return PixMetadata{}, schemaAbortMissing("data_range element is not a float64")
		}
		pairs[i] = [2]float64{lo, hi}
	}

	return PixMetadata{
		FullFilename: fullFilename,
		NRows:        int(nRows),
		NPixels:      uint64(nPixels),
		NDims:        int(nDims),
		DataRange:    pairs,
	}, nil
}
