package schema

import (
	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
)

// DNDMetadata is the ("data", "metadata") block describing a DND
// (density-of-states, no-pixel) dataset's axes.
type DNDMetadata struct {
	Title      string
	NDims      int
	AxisLabels []string
}

const (
	dndMetadataSerialName = "dnd_metadata"
	dndMetadataVersion    = 1.0
)

func (m DNDMetadata) ToIR() ir.ObjectArray {
	labels := make([]ir.ObjectArray, len(m.AxisLabels))
	for i, l := range m.AxisLabels {
		labels[i] = ir.CharString(l)
	}

	s := ir.NewStruct(
		[]string{"serial_name", "version", "title", "n_dims", "axis_labels"},
		[]ir.ObjectArray{
			ir.CharString(dndMetadataSerialName),
			ir.F64(dndMetadataVersion),
			ir.CharString(m.Title),
			ir.F64(float64(m.NDims)),
			ir.CellArray{Shape: []uint32{uint32(len(labels))}, Data: labels}.ToObjectArray(),
		},
	)

	return s.ToObjectArray()
}

func raiseDNDMetadata(s ir.Struct) (DNDMetadata, error) {
	title, err := fieldString(s, "title")
	if err != nil {
		return DNDMetadata{}, err
	}
	nDims, err := fieldF64(s, "n_dims")
	if err != nil {
		return DNDMetadata{}, err
	}

	labelsField, ok := s.Field("axis_labels")
	if !ok {
		return DNDMetadata{}, errs.SchemaAbort("missing field \"axis_labels\"")
	}
	if labelsField.Ty != ir.TagCell {
		return DNDMetadata{}, errs.SchemaAbort("axis_labels is not a cell array")
	}

	labels := make([]string, len(labelsField.Data))
	for i, v := range labelsField.Data {
		oa, ok := v.(ir.ObjectArray)
		if !ok || len(oa.Data) != 1 {
			return DNDMetadata{}, errs.SchemaAbort("axis_labels element is not a scalar char")
		}
		str, ok := oa.Data[0].(string)
		if !ok {
			return DNDMetadata{}, errs.SchemaAbort("axis_labels element is not a string")
		}
		labels[i] = str
	}

	return DNDMetadata{Title: title, NDims: int(nDims), AxisLabels: labels}, nil
}
