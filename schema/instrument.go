package schema

import "github.com/pace-neutrons/sqw-go/ir"

// NullInstrument is the IX_null_inst placeholder instrument a builder
// stamps when no real instrument geometry is supplied.
type NullInstrument struct {
	Name string
}

const nullInstrumentSerialName = "IX_null_inst"
const nullInstrumentVersion = 1.0

func (n NullInstrument) ToIR() ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"serial_name", "version", "name"},
		[]ir.ObjectArray{ir.CharString(nullInstrumentSerialName), ir.F64(nullInstrumentVersion), ir.CharString(n.Name)},
	)

	return s.ToObjectArray()
}

func raiseNullInstrument(s ir.Struct) (NullInstrument, error) {
	name, err := fieldString(s, "name")
	if err != nil {
		return NullInstrument{}, err
	}

	return NullInstrument{Name: name}, nil
}

// Sample is the IX_samp block describing the scattering sample.
type Sample struct {
	Name          string
	LatticeA      [3]float64
	LatticeAngles [3]float64
}

const sampleSerialName = "IX_samp"
const sampleVersion = 1.0

func (sm Sample) ToIR() ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"serial_name", "version", "name", "alatt", "angdeg"},
		[]ir.ObjectArray{
			ir.CharString(sampleSerialName),
			ir.F64(sampleVersion),
			ir.CharString(sm.Name),
			ir.ObjectArray{Ty: ir.TagF64, Shape: []uint32{3}, Data: []any{sm.LatticeA[0], sm.LatticeA[1], sm.LatticeA[2]}},
			ir.ObjectArray{Ty: ir.TagF64, Shape: []uint32{3}, Data: []any{sm.LatticeAngles[0], sm.LatticeAngles[1], sm.LatticeAngles[2]}},
		},
	)

	return s.ToObjectArray()
}

func raiseSample(s ir.Struct) (Sample, error) {
	name, err := fieldString(s, "name")
	if err != nil {
		return Sample{}, err
	}
	alatt, err := fieldVec3(s, "alatt")
	if err != nil {
		return Sample{}, err
	}
	angdeg, err := fieldVec3(s, "angdeg")
	if err != nil {
		return Sample{}, err
	}

	return Sample{Name: name, LatticeA: alatt, LatticeAngles: angdeg}, nil
}

// Source is the IX_source block describing the neutron source.
type Source struct {
	Name      string
	Frequency float64 // units as authored upstream; see DESIGN.md Open Question b
}

const sourceSerialName = "IX_source"
const sourceVersion = 1.0

func (src Source) ToIR() ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"serial_name", "version", "name", "frequency"},
		[]ir.ObjectArray{ir.CharString(sourceSerialName), ir.F64(sourceVersion), ir.CharString(src.Name), ir.F64(src.Frequency)},
	)

	return s.ToObjectArray()
}

func raiseSource(s ir.Struct) (Source, error) {
	name, err := fieldString(s, "name")
	if err != nil {
		return Source{}, err
	}
	freq, err := fieldF64(s, "frequency")
	if err != nil {
		return Source{}, err
	}

	return Source{Name: name, Frequency: freq}, nil
}

func fieldVec3(s ir.Struct, name string) ([3]float64, error) {
	v, ok := s.Field(name)
	if !ok {
		return [3]float64{}, schemaAbortMissing(name)
	}
	if len(v.Data) != 3 {
		return [3]float64{}, schemaAbortMissing(name + " is not a 3-vector")
	}

	var out [3]float64
	for i, raw := range v.Data {
		f, ok := raw.(float64)
		if !ok {
			return [3]float64{}, schemaAbortMissing(name + " element is not float64")
		}
		out[i] = f
	}

	return out, nil
}
