package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/schema"
)

func TestMainHeaderRoundTrip(t *testing.T) {
	h := schema.MainHeader{
		FullFilename:                 "/tmp/foo.sqw",
		Title:                        "my experiment",
		NFiles:                       3,
		CreationDate:                 time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		CreationDateDefinedPrivately: true,
	}

	raised, err := schema.Raise(h.ToIR())
	require.NoError(t, err)

	got, ok := raised.(schema.MainHeader)
	require.True(t, ok)
	require.Equal(t, h, got)
}

func TestPixMetadataRoundTrip(t *testing.T) {
	m := schema.NewPixMetadata("/tmp/foo.sqw", 9, 1000, 4)
	raised, err := schema.Raise(m.ToIR())
	require.NoError(t, err)
	require.Equal(t, m, raised)
}

func TestDNDMetadataRoundTrip(t *testing.T) {
	m := schema.DNDMetadata{Title: "cut", NDims: 2, AxisLabels: []string{"h", "k"}}
	raised, err := schema.Raise(m.ToIR())
	require.NoError(t, err)
	require.Equal(t, m, raised)
}

func TestExperimentRoundTrip(t *testing.T) {
	e := schema.Experiment{Runs: []schema.ExperimentRun{
		{Efix: 10, Psi: 0.1, Omega: 0.2, Filename: "run1.nxspe"},
		{Efix: 20, Psi: 0.3, Omega: 0.4, Filename: "run2.nxspe"},
	}}
	raised, err := schema.Raise(e.ToIR())
	require.NoError(t, err)
	require.Equal(t, e, raised)
}

func TestSampleRoundTrip(t *testing.T) {
	sm := schema.Sample{Name: "NaCl", LatticeA: [3]float64{5.6, 5.6, 5.6}, LatticeAngles: [3]float64{90, 90, 90}}
	raised, err := schema.Raise(sm.ToIR())
	require.NoError(t, err)
	require.Equal(t, sm, raised)
}

func TestReferencesContainerPassesThroughOpaquePayload(t *testing.T) {
	c := schema.ReferencesContainer{Payload: ir.F64(42)}
	raised, err := schema.Raise(c.ToIR())
	require.NoError(t, err)
	require.Equal(t, c, raised)
}

func TestRaiseRejectsNonStruct(t *testing.T) {
	_, err := schema.Raise(ir.F64(1))
	require.Error(t, err)
	require.True(t, errs.IsSchemaAbort(err))
}

func TestRaiseRejectsUnknownSchema(t *testing.T) {
	s := ir.NewStruct([]string{"serial_name", "version"}, []ir.ObjectArray{ir.CharString("not_a_real_schema"), ir.F64(1.0)})
	_, err := schema.Raise(s.ToObjectArray())
	require.Error(t, err)
	require.True(t, errs.IsSchemaAbort(err))
}

func TestRaiseRejectsMissingField(t *testing.T) {
	s := ir.NewStruct([]string{"serial_name", "version"}, []ir.ObjectArray{ir.CharString("main_header_cl"), ir.F64(2.0)})
	_, err := schema.Raise(s.ToObjectArray())
	require.Error(t, err)
	require.True(t, errs.IsSchemaAbort(err))
}
