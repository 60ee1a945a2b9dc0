package schema

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
)

// raiserKey dispatches on the (serial_name, version) pair every known
// schema struct stamps as its first two fields.
type raiserKey struct {
	serialName string
	version    float64
}

type raiserFunc func(ir.Struct) (any, error)

var raisers = map[raiserKey]raiserFunc{}

func registerRaiser(serialName string, version float64, fn raiserFunc) {
	key := raiserKey{serialName, version}
	if _, exists := raisers[key]; exists {
		panic(fmt.Sprintf("schema: duplicate raiser registered for (%q, %v)", serialName, version))
	}
	raisers[key] = fn
}

func init() {
	registerRaiser("main_header_cl", 2.0, func(s ir.Struct) (any, error) { return raiseMainHeader(s) })
	registerRaiser("pix_metadata", 1.0, func(s ir.Struct) (any, error) { return raisePixMetadata(s) })
	registerRaiser("dnd_metadata", 1.0, func(s ir.Struct) (any, error) { return raiseDNDMetadata(s) })
	registerRaiser("IX_experiment", 3.0, func(s ir.Struct) (any, error) { return raiseExperiment(s) })
	registerRaiser("IX_null_inst", 1.0, func(s ir.Struct) (any, error) { return raiseNullInstrument(s) })
	registerRaiser("IX_samp", 1.0, func(s ir.Struct) (any, error) { return raiseSample(s) })
	registerRaiser("IX_source", 1.0, func(s ir.Struct) (any, error) { return raiseSource(s) })
	registerRaiser("unique_references_container", 1.0, func(s ir.Struct) (any, error) { return raiseReferencesContainer(s) })
	registerRaiser("unique_objects_container", 1.0, func(s ir.Struct) (any, error) { return raiseObjectsContainer(s) })
}

// Raise attempts to raise a block's ObjectArray payload into a known Go
// schema type. On any rejection condition (not a struct, missing
// serial_name/version, unregistered pair, malformed field) it returns an
// errs.SchemaAbort-wrapped error; the caller (sqw.Reader) is expected to
// fall back to the raw IR and emit a warning rather than propagate this
// as a hard failure.
func Raise(oa ir.ObjectArray) (any, error) {
	s, err := asStruct(oa)
	if err != nil {
		return nil, err
	}

	serialName, version, err := serialNameAndVersion(s)
	if err != nil {
		return nil, err
	}

	fn, ok := raisers[raiserKey{serialName, version}]
	if !ok {
		return nil, errs.SchemaAbort(fmt.Sprintf("unknown schema (%q, %v)", serialName, version))
	}

	return fn(s)
}
