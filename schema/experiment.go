package schema

import "github.com/pace-neutrons/sqw-go/ir"

// ExperimentRun is one run's worth of experiment metadata inside an
// Experiment block. IX_experiment wraps an array of per-run sub-structs;
// this models that array explicitly rather than flattening it away.
type ExperimentRun struct {
	Efix     float64 // incident energy, meV
	Psi      float64 // sample rotation angle, radians
	Omega    float64
	Filename string
}

// TODO: wire in the real angle/energy unit conversion once Horace's
// IX_experiment conventions are confirmed against a real .sqw fixture;
// until then values round-trip as-authored.

const (
	experimentSerialName = "IX_experiment"
	experimentVersion    = 3.0
)

// Experiment is the ("experiment_info", "expdata") block.
type Experiment struct {
	Runs []ExperimentRun
}

func runToIR(r ExperimentRun) ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"efix", "psi", "omega", "filename"},
		[]ir.ObjectArray{ir.F64(r.Efix), ir.F64(r.Psi), ir.F64(r.Omega), ir.CharString(r.Filename)},
	)

	return s.ToObjectArray()
}

func runFromIR(oa ir.ObjectArray) (ExperimentRun, error) {
	if oa.Ty != ir.TagStruct || len(oa.Data) != 1 {
		return ExperimentRun{}, schemaAbortMissing("experiment run is not a scalar struct")
	}
	s, ok := oa.Data[0].(ir.Struct)
	if !ok {
		return ExperimentRun{}, schemaAbortMissing("experiment run element has unexpected type")
	}

	efix, err := fieldF64(s, "efix")
	if err != nil {
		return ExperimentRun{}, err
	}
	psi, err := fieldF64(s, "psi")
	if err != nil {
		return ExperimentRun{}, err
	}
	omega, err := fieldF64(s, "omega")
	if err != nil {
		return ExperimentRun{}, err
	}
	filename, err := fieldString(s, "filename")
	if err != nil {
		return ExperimentRun{}, err
	}

	return ExperimentRun{Efix: efix, Psi: psi, Omega: omega, Filename: filename}, nil
}

func (e Experiment) ToIR() ir.ObjectArray {
	runs := make([]ir.ObjectArray, len(e.Runs))
	for i, r := range e.Runs {
		runs[i] = runToIR(r)
	}
	runsCell := ir.CellArray{Shape: []uint32{uint32(len(runs))}, Data: runs}.ToObjectArray()

	s := ir.NewStruct(
		[]string{"serial_name", "version", "runs"},
		[]ir.ObjectArray{ir.CharString(experimentSerialName), ir.F64(experimentVersion), runsCell},
	)

	return s.ToObjectArray()
}

func raiseExperiment(s ir.Struct) (Experiment, error) {
	runsField, ok := s.Field("runs")
	if !ok {
		return Experiment{}, schemaAbortMissing("missing field \"runs\"")
	}
	if runsField.Ty != ir.TagCell {
		return Experiment{}, schemaAbortMissing("runs is not a cell array")
	}

	runs := make([]ExperimentRun, len(runsField.Data))
	for i, v := range runsField.Data {
		oa, ok := v.(ir.ObjectArray)
		if !ok {
			return Experiment{}, schemaAbortMissing("runs element has unexpected type")
		}
		run, err := runFromIR(oa)
		if err != nil {
			return Experiment{}, err
		}
		runs[i] = run
	}

	return Experiment{Runs: runs}, nil
}
