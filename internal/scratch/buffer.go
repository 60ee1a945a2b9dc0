// Package scratch provides a reusable growable byte buffer for the
// per-block payload buffers the builder serializes during its two-pass
// layout: one scratch buffer per registered block, pooled to cut
// allocation churn across repeated builder runs.
package scratch

import (
	"fmt"
	"io"
	"sync"
)

const (
	// DefaultSize is the initial capacity handed out by the pool. Most
	// SQW struct blocks (main_header, pix metadata, instrument, sample)
	// serialize to well under 4KiB.
	DefaultSize = 4 * 1024
	// MaxThreshold is the largest buffer the pool retains for reuse;
	// anything bigger (e.g. a large IX_experiment run list) is let go to
	// the GC instead of bloating the pool.
	MaxThreshold = 256 * 1024
)

// Buffer is a growable byte slice wrapper, reused across builder runs via
// Pool to cut allocation churn when a caller builds many files.
type Buffer struct {
	B []byte
}

// New creates a Buffer with the given initial capacity.
func New(capacity int) *Buffer {
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.B) }

// Reset empties the buffer but keeps its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Write appends data, growing the backing array as needed. It always
// returns len(data), nil, satisfying io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	b.B = append(b.B, data...)
	return len(data), nil
}

// Seek only supports the "tell" form (io.SeekCurrent, offset 0), enough
// to satisfy io.WriteSeeker so a Buffer can back a stream.Writer: the
// builder writes every scratch buffer forward-only and patches recorded
// positions afterwards with PatchAt rather than seeking back through it.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent && offset == 0 {
		return int64(len(b.B)), nil
	}

	return 0, fmt.Errorf("scratch: Buffer supports only a forward-only writer (got whence=%d offset=%d)", whence, offset)
}

// WriteTo writes the buffer's contents to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// PatchAt overwrites the len(value) bytes starting at offset with value.
// It panics if the range is out of bounds, since every caller computes
// offset from an earlier write into this same buffer.
func (b *Buffer) PatchAt(offset int, value []byte) {
	if offset < 0 || offset+len(value) > len(b.B) {
		panic("scratch: PatchAt out of bounds")
	}
	copy(b.B[offset:offset+len(value)], value)
}

// Pool recycles Buffers of a bounded maximum size.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize capacity and
// are discarded instead of recycled once they exceed maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return New(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

// Put returns a Buffer to the pool, discarding it if it grew past the
// pool's maxThreshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Get retrieves a Buffer from the package-level default pool.
func Get() *Buffer { return defaultPool.Get() }

// Put returns a Buffer to the package-level default pool.
func Put(buf *Buffer) { defaultPool.Put(buf) }
