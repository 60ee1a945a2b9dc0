package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckEndiannessConsistency(t *testing.T) {
	first := CheckEndianness()
	for range 100 {
		require.Equal(t, first, CheckEndianness())
	}
}

func TestIsNativeLittleEndian(t *testing.T) {
	result := IsNativeLittleEndian()
	require.Equal(t, CheckEndianness() == binary.LittleEndian, result)
}

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	bytes := make([]byte, 2)
	engine.PutUint16(bytes, 0x0102)
	require.Equal(t, byte(0x02), bytes[0])
	require.Equal(t, byte(0x01), bytes[1])
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	bytes := make([]byte, 2)
	engine.PutUint16(bytes, 0x0102)
	require.Equal(t, byte(0x01), bytes[0])
	require.Equal(t, byte(0x02), bytes[1])
}

func TestForName(t *testing.T) {
	require.Equal(t, GetLittleEndianEngine(), ForName("little"))
	require.Equal(t, GetBigEndianEngine(), ForName("big"))
}

func TestForNamePanicsOnUnknown(t *testing.T) {
	require.Panics(t, func() { ForName("middle") })
}

func TestName(t *testing.T) {
	require.Equal(t, "little", Name(GetLittleEndianEngine()))
	require.Equal(t, "big", Name(GetBigEndianEngine()))
}

func TestDetectPreambleLittle(t *testing.T) {
	// len("horace") == 6, little-endian encoding of 6.
	buf := [4]byte{0x06, 0x00, 0x00, 0x00}
	require.Equal(t, GetLittleEndianEngine(), DetectPreamble(buf))
}

func TestDetectPreambleBig(t *testing.T) {
	buf := [4]byte{0x00, 0x00, 0x00, 0x06}
	require.Equal(t, GetBigEndianEngine(), DetectPreamble(buf))
}
