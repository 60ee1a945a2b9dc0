package sqw

import (
	"fmt"
	"io"
	"os"

	"github.com/pace-neutrons/sqw-go/codec"
	"github.com/pace-neutrons/sqw-go/endian"
	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/internal/options"
	"github.com/pace-neutrons/sqw-go/schema"
	"github.com/pace-neutrons/sqw-go/section"
	"github.com/pace-neutrons/sqw-go/stream"
)

// Reader is a scoped handle over an SQW source: the file header and BAT
// are parsed eagerly at Open time, and every data block is lazily parsed
// on demand by ReadDataBlock.
type Reader struct {
	stream   *stream.Reader
	header   section.FileHeader
	bat      section.BAT
	warnings []Warning
	closer   io.Closer
}

// Open parses the file header and BAT from src and returns a ready
// Reader. If no WithByteorder option is given, the byte order is
// auto-detected from the first four bytes.
func Open(src io.ReadSeeker, opts ...ReaderOption) (*Reader, error) {
	cfg := &readerConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	engine := cfg.byteorder
	if engine == nil {
		detected, err := stream.DetectByteorder(src)
		if err != nil {
			return nil, err
		}
		engine = detected
	}

	r := stream.NewReader(src, cfg.path, engine)

	header, headerWarnings, err := section.ParseFileHeader(r)
	if err != nil {
		return nil, err
	}

	bat, err := section.ParseBAT(r)
	if err != nil {
		return nil, err
	}

	rd := &Reader{stream: r, header: header, bat: bat}
	for _, w := range headerWarnings {
		rd.warnings = append(rd.warnings, headerWarning(w))
	}

	return rd, nil
}

// OpenFile opens the file at path and calls Open on it. The returned
// Reader's Close method closes the underlying *os.File.
func OpenFile(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := Open(f, append([]ReaderOption{withPath(path)}, opts...)...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f

	return r, nil
}

func withPath(path string) ReaderOption {
	return options.NoError[*readerConfig](func(c *readerConfig) {
		c.path = path
	})
}

// FileHeader returns the parsed file header.
func (r *Reader) FileHeader() section.FileHeader { return r.header }

// Byteorder returns the byte order the reader is using.
func (r *Reader) Byteorder() endian.EndianEngine { return r.stream.Byteorder() }

// DataBlockNames returns every block name in the BAT, in descriptor order.
func (r *Reader) DataBlockNames() []BlockName { return r.bat.Names() }

// Warnings returns every non-fatal diagnostic accumulated so far: header
// mismatches from Open, plus one per failed schema raise from
// ReadDataBlock calls made on this Reader.
func (r *Reader) Warnings() []Warning { return r.warnings }

// Close releases the underlying resource if Reader owns one (i.e. it was
// opened via OpenFile). Calling Close on a Reader opened via Open over a
// caller-supplied io.ReadSeeker is a no-op.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// ReadDataBlock looks up the block named (level1, level2), seeks to its
// payload, and decodes it. A "regular" block is raised
// through the schema layer when possible, falling back to the raw
// ir.ObjectArray plus a recorded Warning on any rejection. A "pix" block
// decodes to PixelData. Any other block type fails with
// errs.ErrUnsupportedBlockType.
func (r *Reader) ReadDataBlock(name ...string) (any, error) {
	if len(name) != 2 {
		return nil, fmt.Errorf("%w: ReadDataBlock wants exactly 2 name components, got %d", errs.ErrInvalidName, len(name))
	}

	descriptor, err := r.bat.Lookup(name[0], name[1])
	if err != nil {
		return nil, err
	}

	if err := r.stream.Seek(int64(descriptor.Position)); err != nil {
		return nil, err
	}

	switch descriptor.Type {
	case section.BlockRegular:
		return r.readRegularBlock(descriptor)
	case section.BlockPix:
		return r.readPixBlock()
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedBlockType, descriptor.Type)
	}
}

func (r *Reader) readRegularBlock(descriptor section.BlockDescriptor) (any, error) {
	oa, err := codec.ReadObject(r.stream)
	if err != nil {
		return nil, err
	}

	raised, err := schema.Raise(oa)
	if err != nil {
		r.warnings = append(r.warnings, blockWarning(descriptor.Name, err.Error()))
		return oa, nil
	}

	return raised, nil
}

func (r *Reader) readPixBlock() (PixelData, error) {
	nRows, err := r.stream.ReadU32()
	if err != nil {
		return PixelData{}, err
	}
	nPixels, err := r.stream.ReadU64()
	if err != nil {
		return PixelData{}, err
	}

	data, err := r.stream.ReadF32Slice(int(nRows) * int(nPixels))
	if err != nil {
		return PixelData{}, err
	}

	return PixelData{NRows: nRows, NPixels: nPixels, Data: data}, nil
}
