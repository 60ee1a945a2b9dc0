package section

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/stream"
)

// BlockName is the two-level key that uniquely addresses a block within
// a BAT.
type BlockName struct {
	Level1 string
	Level2 string
}

func (n BlockName) String() string {
	return fmt.Sprintf("(%q, %q)", n.Level1, n.Level2)
}

// BlockDescriptor is one entry of the Block Allocation Table.
type BlockDescriptor struct {
	Type     BlockType
	Name     BlockName
	Position uint64
	Size     uint32
	Locked   bool
}

func readBlockDescriptor(r *stream.Reader) (BlockDescriptor, error) {
	typeName, err := r.ReadCharArray()
	if err != nil {
		return BlockDescriptor{}, err
	}
	blockType, ok := ParseBlockType(typeName)
	if !ok {
		pos, _ := r.Position()
		return BlockDescriptor{}, fmt.Errorf("%w: unrecognized block type %q at position %d", errs.ErrUnsupportedBlockType, typeName, pos)
	}

	level1, err := r.ReadCharArray()
	if err != nil {
		return BlockDescriptor{}, err
	}
	level2, err := r.ReadCharArray()
	if err != nil {
		return BlockDescriptor{}, err
	}

	position, err := r.ReadU64()
	if err != nil {
		return BlockDescriptor{}, err
	}
	size, err := r.ReadU32()
	if err != nil {
		return BlockDescriptor{}, err
	}
	locked, err := r.ReadU32()
	if err != nil {
		return BlockDescriptor{}, err
	}

	return BlockDescriptor{
		Type:     blockType,
		Name:     BlockName{Level1: level1, Level2: level2},
		Position: position,
		Size:     size,
		Locked:   locked != 0,
	}, nil
}

func (d BlockDescriptor) writeTo(w *stream.Writer) error {
	if err := w.WriteCharArray(d.Type.String()); err != nil {
		return err
	}
	if err := w.WriteCharArray(d.Name.Level1); err != nil {
		return err
	}
	if err := w.WriteCharArray(d.Name.Level2); err != nil {
		return err
	}
	if err := w.WriteU64(d.Position); err != nil {
		return err
	}
	if err := w.WriteU32(d.Size); err != nil {
		return err
	}

	locked := uint32(0)
	if d.Locked {
		locked = 1
	}

	return w.WriteU32(locked)
}

// positionFieldOffset returns the byte offset, within a serialization of
// d starting at offset 0, of d's Position field — the offset the builder
// patches in its second pass once real positions are known.
func (d BlockDescriptor) positionFieldOffset() int {
	// char-array field layout: 4-byte length prefix + payload bytes.
	off := 0
	off += 4 + len(d.Type.String())
	off += 4 + len(d.Name.Level1)
	off += 4 + len(d.Name.Level2)

	return off
}
