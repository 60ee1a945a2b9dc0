package schema

import (
	"time"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/ir"
)

// MainHeader is the "" / "main_header" block every SQW file carries.
type MainHeader struct {
	FullFilename                 string
	Title                        string
	NFiles                       int
	CreationDate                 time.Time
	CreationDateDefinedPrivately bool
}

const (
	mainHeaderSerialName = "main_header_cl"
	mainHeaderVersion    = 2.0
)

// ToIR lowers h into the struct payload main_header_cl stamps on write.
func (h MainHeader) ToIR() ir.ObjectArray {
	s := ir.NewStruct(
		[]string{"serial_name", "version", "full_filename", "title", "nfiles", "creation_date", "creation_date_defined_privately"},
		[]ir.ObjectArray{
			ir.CharString(mainHeaderSerialName),
			ir.F64(mainHeaderVersion),
			ir.CharString(h.FullFilename),
			ir.CharString(h.Title),
			ir.F64(float64(h.NFiles)),
			ir.DateTime(h.CreationDate),
			ir.Logical(h.CreationDateDefinedPrivately),
		},
	)

	return s.ToObjectArray()
}

func raiseMainHeader(s ir.Struct) (MainHeader, error) {
	fullFilename, err := fieldString(s, "full_filename")
	if err != nil {
		return MainHeader{}, err
	}
	title, err := fieldString(s, "title")
	if err != nil {
		return MainHeader{}, err
	}
	nfiles, err := fieldF64(s, "nfiles")
	if err != nil {
		return MainHeader{}, err
	}
	creationDateStr, err := fieldString(s, "creation_date")
	if err != nil {
		return MainHeader{}, err
	}
	creationDate, perr := ir.ParseDateTime(creationDateStr)
	if perr != nil {
		return MainHeader{}, errs.SchemaAbort(perr.Error())
	}
	privatelyDefined, err := fieldBool(s, "creation_date_defined_privately")
	if err != nil {
		return MainHeader{}, err
	}

	return MainHeader{
		FullFilename:                 fullFilename,
		Title:                        title,
		NFiles:                       int(nfiles),
		CreationDate:                 creationDate,
		CreationDateDefinedPrivately: privatelyDefined,
	}, nil
}
