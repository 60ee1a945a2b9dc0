package schema

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
)

// schemaAbortMissing is a thin naming wrapper over errs.SchemaAbort for
// the "field missing or malformed" family of rejections.
func schemaAbortMissing(reason string) error {
	return errs.SchemaAbort(reason)
}

// scalar extracts the single element of a shape-(1,) field, aborting the
// raise if the field is missing or not a scalar.
func scalar(s ir.Struct, name string) (any, error) {
	v, ok := s.Field(name)
	if !ok {
		return nil, errs.SchemaAbort(fmt.Sprintf("missing field %q", name))
	}
	if len(v.Data) != 1 {
		return nil, errs.SchemaAbort(fmt.Sprintf("field %q is not scalar", name))
	}

	return v.Data[0], nil
}

func fieldString(s ir.Struct, name string) (string, error) {
	v, err := scalar(s, name)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", errs.SchemaAbort(fmt.Sprintf("field %q has type %T, want string", name, v))
	}

	return str, nil
}

func fieldF64(s ir.Struct, name string) (float64, error) {
	v, err := scalar(s, name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, errs.SchemaAbort(fmt.Sprintf("field %q has type %T, want float64", name, v))
	}

	return f, nil
}

func fieldBool(s ir.Struct, name string) (bool, error) {
	v, err := scalar(s, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errs.SchemaAbort(fmt.Sprintf("field %q has type %T, want bool", name, v))
	}

	return b, nil
}

// asStruct unwraps the shape-(1,) Struct-tagged ObjectArray every block
// payload and sub-struct carries, rejecting anything else.
func asStruct(oa ir.ObjectArray) (ir.Struct, error) {
	if oa.Ty != ir.TagStruct {
		return ir.Struct{}, errs.SchemaAbort(fmt.Sprintf("block has tag %s, want struct", oa.Ty))
	}
	if len(oa.Shape) != 1 || oa.Shape[0] != 1 {
		return ir.Struct{}, errs.SchemaAbort(fmt.Sprintf("block has shape %v, want (1,)", oa.Shape))
	}
	if len(oa.Data) != 1 {
		return ir.Struct{}, errs.SchemaAbort("struct array holds more than one element")
	}

	s, ok := oa.Data[0].(ir.Struct)
	if !ok {
		return ir.Struct{}, errs.SchemaAbort(fmt.Sprintf("struct element has type %T", oa.Data[0]))
	}
	if err := s.Validate(); err != nil {
		return ir.Struct{}, errs.SchemaAbort(err.Error())
	}

	return s, nil
}

// serialNameAndVersion reads the two fields every known schema struct
// carries first, so the registry can dispatch before any schema-specific
// field is touched.
func serialNameAndVersion(s ir.Struct) (string, float64, error) {
	name, err := fieldString(s, "serial_name")
	if err != nil {
		return "", 0, err
	}
	version, err := fieldF64(s, "version")
	if err != nil {
		return "", 0, err
	}

	return name, version, nil
}
