// Package schema raises the IR (package ir) produced by the codec layer
// into named Go structs, and lowers them back, for every known
// (serial_name, version) block kind. Dispatch is a registry keyed on
// that pair, mirroring the tag-handler registry of package codec but one
// level up the stack.
//
// Raising is best-effort: a schema that does not recognize the shape in
// front of it returns errs.SchemaAbort rather than panicking or
// fabricating data, and the caller (package sqw) falls back to the raw
// IR plus a non-fatal warning.
package schema
