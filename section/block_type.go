package section

import "fmt"

// BlockType identifies how a BlockDescriptor's payload is encoded. On the
// wire it is stored as a length-prefixed character array naming one of
// the three known forms, not as a small integer.
type BlockType uint8

const (
	BlockRegular BlockType = iota
	BlockPix
	BlockDND
)

const (
	blockRegularWire = "data_block"
	blockPixWire     = "pix_data_block"
	blockDNDWire     = "dnd_data_block"
)

func (t BlockType) String() string {
	switch t {
	case BlockRegular:
		return blockRegularWire
	case BlockPix:
		return blockPixWire
	case BlockDND:
		return blockDNDWire
	default:
		return fmt.Sprintf("block_type(%d)", uint8(t))
	}
}

// ParseBlockType maps the wire string form of a block type back to a
// BlockType. An unrecognized string is reported via ErrUnsupportedBlockType
// by the caller, not here, since only readBlockDescriptor knows the byte
// position to annotate the error with.
func ParseBlockType(s string) (BlockType, bool) {
	switch s {
	case blockRegularWire:
		return BlockRegular, true
	case blockPixWire:
		return BlockPix, true
	case blockDNDWire:
		return BlockDND, true
	default:
		return 0, false
	}
}
