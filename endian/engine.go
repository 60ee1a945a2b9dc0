// Package endian provides byte-order utilities for the SQW binary codec.
//
// It extends the standard library's encoding/binary by combining the
// ByteOrder and AppendByteOrder interfaces into a single EndianEngine,
// and adds the SQW-specific auto-detection heuristic: an SQW v4 file's
// first four bytes are the byte length of the string "horace", a value
// that differs by many orders of magnitude depending on which endianness
// decodes it, so the detector picks whichever interpretation is smaller.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it, so no adapter type is needed.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the host machine's native byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForName resolves "little"/"big" to an EndianEngine. Any other string is
// a programmer error and panics.
func ForName(name string) EndianEngine {
	switch name {
	case "little":
		return GetLittleEndianEngine()
	case "big":
		return GetBigEndianEngine()
	default:
		panic("endian: unknown byte order name " + name)
	}
}

// Name returns "little" or "big" for the given engine, for diagnostics.
func Name(engine EndianEngine) string {
	if engine == GetBigEndianEngine() {
		return "big"
	}

	return "little"
}

// DetectPreamble peeks at the first four bytes of an SQW stream (without
// consuming them — the caller owns advancing its own cursor) and returns
// the EndianEngine that decodes them to the smaller uint32 value.
//
// For any real SQW file, the first four bytes are the length-prefix of
// the program name character array ("horace", 6 bytes), a value that
// stays far below the 2^16 flip-over point between the two
// interpretations.
func DetectPreamble(buf [4]byte) EndianEngine {
	le := binary.LittleEndian.Uint32(buf[:])
	be := binary.BigEndian.Uint32(buf[:])
	if le < be {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}
