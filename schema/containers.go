package schema

import "github.com/pace-neutrons/sqw-go/ir"

// ReferencesContainer and ObjectsContainer carry no documented field
// list of their own; both round-trip their IR payload unchanged rather
// than inventing undocumented fields.
type ReferencesContainer struct {
	Payload ir.ObjectArray
}

type ObjectsContainer struct {
	Payload ir.ObjectArray
}

const (
	referencesContainerSerialName = "unique_references_container"
	referencesContainerVersion    = 1.0
	objectsContainerSerialName    = "unique_objects_container"
	objectsContainerVersion       = 1.0
)

func (c ReferencesContainer) ToIR() ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"serial_name", "version", "payload"},
		[]ir.ObjectArray{ir.CharString(referencesContainerSerialName), ir.F64(referencesContainerVersion), c.Payload},
	)

	return s.ToObjectArray()
}

func raiseReferencesContainer(s ir.Struct) (ReferencesContainer, error) {
	payload, ok := s.Field("payload")
	if !ok {
		return ReferencesContainer{}, schemaAbortMissing("missing field \"payload\"")
	}

	return ReferencesContainer{Payload: payload}, nil
}

func (c ObjectsContainer) ToIR() ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"serial_name", "version", "payload"},
		[]ir.ObjectArray{ir.CharString(objectsContainerSerialName), ir.F64(objectsContainerVersion), c.Payload},
	)

	return s.ToObjectArray()
}

func raiseObjectsContainer(s ir.Struct) (ObjectsContainer, error) {
	payload, ok := s.Field("payload")
	if !ok {
		return ObjectsContainer{}, schemaAbortMissing("missing field \"payload\"")
	}

	return ObjectsContainer{Payload: payload}, nil
}
