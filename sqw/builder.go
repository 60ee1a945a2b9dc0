package sqw

import (
	"io"
	"os"
	"time"

	"github.com/pace-neutrons/sqw-go/codec"
	"github.com/pace-neutrons/sqw-go/endian"
	"github.com/pace-neutrons/sqw-go/errs"
	"github.com/pace-neutrons/sqw-go/internal/options"
	"github.com/pace-neutrons/sqw-go/internal/scratch"
	"github.com/pace-neutrons/sqw-go/ir"
	"github.com/pace-neutrons/sqw-go/schema"
	"github.com/pace-neutrons/sqw-go/section"
	"github.com/pace-neutrons/sqw-go/stream"
)

// blockEntry is one registered block awaiting serialization at Create
// time. A "pix" entry carries no payload buffer: its size is computed
// analytically and its bytes are reserved, not written, until a separate
// pixel writer fills them in.
type blockEntry struct {
	name       section.BlockName
	typ        section.BlockType
	oa         ir.ObjectArray
	isPix      bool
	pixNRows   uint32
	pixNPixels uint64
}

// Builder is a fluent accumulator of SQW blocks, mirroring the reference
// implementation's SqwBuilder. Builder methods never fail
// directly; a rejected call (e.g. a second RegisterPixelData) is recorded
// and surfaces from Create, a sticky-error fluent chain that keeps every
// configuration method returning *Builder even on a logical failure.
type Builder struct {
	dst           io.WriteSeeker
	fullFilename  string
	byteorder     endian.EndianEngine
	title         string
	nDims         uint32
	pixRegistered bool
	entries       []blockEntry
	err           error
	closer        io.Closer
}

// Build returns a Builder writing to dst. Defaults to little-endian
// unless WithBuilderByteorder overrides it.
func Build(dst io.WriteSeeker, opts ...BuilderOption) *Builder {
	cfg := &builderConfig{byteorder: endian.GetLittleEndianEngine()}
	if err := options.Apply(cfg, opts...); err != nil {
		return &Builder{err: err}
	}

	return &Builder{dst: dst, byteorder: cfg.byteorder}
}

// BuildFile creates path and returns a Builder writing to it, recording
// path as the resulting file's full_filename. The returned Builder's
// BuildHandle (from a successful Create) closes the underlying *os.File
// on Close.
func BuildFile(path string, opts ...BuilderOption) (*Builder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	b := Build(f, opts...)
	b.fullFilename = path
	b.closer = f

	return b, nil
}

// Title stores the file's title, written into the ("", "main_header")
// block at Create time.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// RegisterPixelData records the pixel preamble and registers the three
// blocks a full SQW file's pixel data implies: ("pix", "metadata"),
// ("pix", "data_wrap"), and ("experiment_info", "expdata"). A second call
// rejects with errs.ErrAlreadyRegistered.
func (b *Builder) RegisterPixelData(nPixels uint64, nDims uint32, experiments []schema.ExperimentRun, rows ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.pixRegistered {
		b.err = errs.ErrAlreadyRegistered
		return b
	}
	b.pixRegistered = true
	b.nDims = nDims

	if len(rows) == 0 {
		rows = schema.DefaultPixRows
	}
	nRows := uint32(len(rows))

	meta := schema.NewPixMetadata(b.fullFilename, int(nRows), nPixels, int(nDims))
	b.entries = append(b.entries, blockEntry{
		name: section.BlockName{Level1: "pix", Level2: "metadata"},
		typ:  section.BlockRegular,
		oa:   meta.ToIR(),
	})

	b.entries = append(b.entries, blockEntry{
		name:       section.BlockName{Level1: "pix", Level2: "data_wrap"},
		typ:        section.BlockPix,
		isPix:      true,
		pixNRows:   nRows,
		pixNPixels: nPixels,
	})

	exp := schema.Experiment{Runs: experiments}
	b.entries = append(b.entries, blockEntry{
		name: section.BlockName{Level1: "experiment_info", Level2: "expdata"},
		typ:  section.BlockRegular,
		oa:   exp.ToIR(),
	})

	return b
}

// AddDNDMetadata registers the ("data", "metadata") block.
func (b *Builder) AddDNDMetadata(meta schema.DNDMetadata) *Builder {
	if b.err != nil {
		return b
	}
	b.entries = append(b.entries, blockEntry{
		name: section.BlockName{Level1: "data", Level2: "metadata"},
		typ:  section.BlockRegular,
		oa:   meta.ToIR(),
	})

	return b
}

// AddDefaultInstrument registers a placeholder IX_null_inst instrument
// block under ("instrument", "definition").
func (b *Builder) AddDefaultInstrument() *Builder {
	if b.err != nil {
		return b
	}
	inst := schema.NullInstrument{Name: "none"}
	b.entries = append(b.entries, blockEntry{
		name: section.BlockName{Level1: "instrument", Level2: "definition"},
		typ:  section.BlockRegular,
		oa:   inst.ToIR(),
	})

	return b
}

// AddDefaultSample registers a placeholder sample block under
// ("sample", "definition").
func (b *Builder) AddDefaultSample() *Builder {
	if b.err != nil {
		return b
	}
	samp := schema.Sample{Name: "none"}
	b.entries = append(b.entries, blockEntry{
		name: section.BlockName{Level1: "sample", Level2: "definition"},
		typ:  section.BlockRegular,
		oa:   samp.ToIR(),
	})

	return b
}

// BuildHandle is the result of a successful Create: ownership of every
// registered block has transferred to the written destination, and the
// Builder that produced it is no longer usable.
type BuildHandle struct {
	Header section.FileHeader
	BAT    section.BAT
	closer io.Closer
}

// Close releases the underlying resource if the handle owns one (i.e.
// its Builder was created via BuildFile). Calling Close on a handle
// whose Builder was created via Build over a caller-supplied
// io.WriteSeeker is a no-op: that destination stays owned by the caller.
func (h *BuildHandle) Close() error {
	if h.closer == nil {
		return nil
	}

	return h.closer.Close()
}

// Create runs the two-pass layout algorithm and writes the
// file header, BAT, and every block payload to the builder's destination
// in registration order. The pixel region, if any, is reserved with
// zero bytes, left for a separate pixel writer to fill in.
func (b *Builder) Create() (*BuildHandle, error) {
	if b.err != nil {
		return nil, b.err
	}

	header := section.DefaultFileHeader(b.nDims)
	headerBuf := scratch.Get()
	defer scratch.Put(headerBuf)
	if err := header.WriteTo(stream.NewWriter(headerBuf, b.byteorder)); err != nil {
		return nil, err
	}

	mainHeader := schema.MainHeader{
		FullFilename: b.fullFilename,
		Title:        b.title,
		NFiles:       0,
		CreationDate: time.Now().UTC(),
	}
	mainHeaderEntry := blockEntry{
		name: section.BlockName{Level1: "", Level2: "main_header"},
		typ:  section.BlockRegular,
		oa:   mainHeader.ToIR(),
	}
	allEntries := append([]blockEntry{mainHeaderEntry}, b.entries...)

	payloadBufs := make([]*scratch.Buffer, len(allEntries))
	descriptors := make([]section.BlockDescriptor, len(allEntries))
	for i, e := range allEntries {
		if e.isPix {
			size := 4 + 8 + uint64(e.pixNRows)*e.pixNPixels*4
			descriptors[i] = section.BlockDescriptor{Type: e.typ, Name: e.name, Size: uint32(size)}
			continue
		}

		buf := scratch.Get()
		payloadBufs[i] = buf
		if err := codec.WriteObject(stream.NewWriter(buf, b.byteorder), e.oa); err != nil {
			return nil, err
		}
		descriptors[i] = section.BlockDescriptor{Type: e.typ, Name: e.name, Size: uint32(buf.Len())}
	}
	defer func() {
		for _, buf := range payloadBufs {
			scratch.Put(buf)
		}
	}()

	bat, err := section.NewBAT(descriptors)
	if err != nil {
		return nil, err
	}

	batBuf := scratch.Get()
	defer scratch.Put(batBuf)
	offsets, err := bat.WriteTo(stream.NewWriter(batBuf, b.byteorder))
	if err != nil {
		return nil, err
	}

	batOffset := int64(headerBuf.Len())
	cursor := batOffset + int64(batBuf.Len())
	for i := range bat.Entries {
		bat.Entries[i].Position = uint64(cursor)

		posBytes := make([]byte, 8)
		b.byteorder.PutUint64(posBytes, uint64(cursor))
		batBuf.PatchAt(int(offsets[i]), posBytes)

		cursor += int64(bat.Entries[i].Size)
	}

	if err := bat.Validate(uint64(batOffset) + uint64(batBuf.Len())); err != nil {
		return nil, err
	}

	if _, err := b.dst.Write(headerBuf.Bytes()); err != nil {
		return nil, err
	}
	if _, err := b.dst.Write(batBuf.Bytes()); err != nil {
		return nil, err
	}

	dstWriter := stream.NewWriter(b.dst, b.byteorder)
	for i, e := range allEntries {
		if e.isPix {
			if err := dstWriter.WriteU32(e.pixNRows); err != nil {
				return nil, err
			}
			if err := dstWriter.WriteU64(e.pixNPixels); err != nil {
				return nil, err
			}
			// Reserve the pixel region with zero bytes rather than a bare
			// seek: seeking past the end of a freshly created file does
			// not by itself extend its length until something is later
			// written there, which would leave a short file if the pix
			// block happens to be the last one registered.
			reserved := int64(e.pixNRows) * int64(e.pixNPixels) * 4
			if err := writeZeros(b.dst, reserved); err != nil {
				return nil, err
			}
			continue
		}

		if _, err := b.dst.Write(payloadBufs[i].Bytes()); err != nil {
			return nil, err
		}
	}

	b.err = errs.ErrBuilderClosed

	return &BuildHandle{Header: header, BAT: bat, closer: b.closer}, nil
}

// writeZeros writes n zero bytes to w in bounded chunks.
func writeZeros(w io.Writer, n int64) error {
	chunk := make([]byte, 4096)
	for n > 0 {
		step := int64(len(chunk))
		if n < step {
			step = n
		}
		if _, err := w.Write(chunk[:step]); err != nil {
			return err
		}
		n -= step
	}

	return nil
}
