package section

import (
	"fmt"

	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/internal/blockhash"
	"github.com/pace-neutrons/sqw-go/stream"
)

// BAT is the Block Allocation Table: an ordered list of descriptors plus
// a hash-keyed lookup index built once at parse time.
type BAT struct {
	Entries []BlockDescriptor
	index   map[blockhash.Key]int
}

// ParseBAT reads bat_size (discarded, informational), n_blocks, and then
// n_blocks descriptors, and builds the name lookup index.
func ParseBAT(r *stream.Reader) (BAT, error) {
	if _, err := r.ReadU32(); err != nil { // bat_size, informational only
		return BAT{}, err
	}

	nBlocks, err := r.ReadU32()
	if err != nil {
		return BAT{}, err
	}

	entries := make([]BlockDescriptor, nBlocks)
	for i := range entries {
		d, err := readBlockDescriptor(r)
		if err != nil {
			return BAT{}, err
		}
		entries[i] = d
	}

	return newBAT(entries)
}

func newBAT(entries []BlockDescriptor) (BAT, error) {
	index := make(map[blockhash.Key]int, len(entries))
	for i, d := range entries {
		key := blockhash.Of(d.Name.Level1, d.Name.Level2)
		if _, exists := index[key]; exists {
			return BAT{}, fmt.Errorf("section: duplicate block name %s in BAT", d.Name)
		}
		index[key] = i
	}

	return BAT{Entries: entries, index: index}, nil
}

// NewBAT builds a BAT from a caller-assembled descriptor slice (used by
// the builder once real positions are known), validating name uniqueness.
func NewBAT(entries []BlockDescriptor) (BAT, error) {
	return newBAT(entries)
}

// Lookup returns the descriptor named (level1, level2), or
// errs.NotFoundError if no such block exists.
func (b BAT) Lookup(level1, level2 string) (BlockDescriptor, error) {
	i, ok := b.index[blockhash.Of(level1, level2)]
	if !ok || b.Entries[i].Name != (BlockName{Level1: level1, Level2: level2}) {
		return BlockDescriptor{}, &errs.NotFoundError{Level1: level1, Level2: level2}
	}

	return b.Entries[i], nil
}

// Names returns every block name in the BAT, in descriptor order.
func (b BAT) Names() []BlockName {
	names := make([]BlockName, len(b.Entries))
	for i, d := range b.Entries {
		names[i] = d.Name
	}

	return names
}

// Validate checks the BAT's layout invariants: names unique (already
// enforced at construction), payloads contiguous and non-overlapping,
// in descriptor order.
func (b BAT) Validate(firstPayloadOffset uint64) error {
	cursor := firstPayloadOffset
	for _, d := range b.Entries {
		if d.Position != cursor {
			return fmt.Errorf("section: block %s at position %d, want contiguous position %d", d.Name, d.Position, cursor)
		}
		cursor += uint64(d.Size)
	}

	return nil
}

// WriteTo serializes bat_size, n_blocks, and each descriptor to w,
// returning the sink positions (as reported by w.Position) at which
// each descriptor's Position field landed, for the builder's second
// patch pass.
func (b BAT) WriteTo(w *stream.Writer) ([]int64, error) {
	batSize := batByteSize(b.Entries)

	if err := w.WriteU32(uint32(batSize)); err != nil {
		return nil, err
	}
	if err := w.WriteU32(uint32(len(b.Entries))); err != nil {
		return nil, err
	}

	start, err := w.Position()
	if err != nil {
		return nil, err
	}

	offsets := make([]int64, len(b.Entries))
	cursor := start
	for i, d := range b.Entries {
		offsets[i] = cursor + int64(d.positionFieldOffset())
		if err := d.writeTo(w); err != nil {
			return nil, err
		}
		end, err := w.Position()
		if err != nil {
			return nil, err
		}
		cursor = end
	}

	return offsets, nil
}

// batByteSize computes the serialized size of the descriptor array
// excluding the two leading u32 fields.
func batByteSize(entries []BlockDescriptor) int {
	size := 0
	for _, d := range entries {
		size += 4 + len(d.Type.String())
		size += 4 + len(d.Name.Level1)
		size += 4 + len(d.Name.Level2)
		size += 8 + 4 + 4 // position, size, locked
	}

	return size
}
