package scratch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferWriteAndPatch(t *testing.T) {
	b := New(8)
	_, _ = b.Write([]byte{1, 2, 3, 4})
	b.PatchAt(1, []byte{0xAA, 0xBB})
	require.Equal(t, []byte{1, 0xAA, 0xBB, 4}, b.Bytes())
}

func TestBufferWriteTo(t *testing.T) {
	b := New(4)
	_, _ = b.Write([]byte("hello"))

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "hello", out.String())
}

func TestPatchAtOutOfBoundsPanics(t *testing.T) {
	b := New(4)
	_, _ = b.Write([]byte{1, 2})
	require.Panics(t, func() { b.PatchAt(1, []byte{0, 0, 0}) })
}

func TestPoolReuse(t *testing.T) {
	p := NewPool(4, 16)
	b := p.Get()
	_, _ = b.Write([]byte{1, 2, 3})
	p.Put(b)

	b2 := p.Get()
	require.Equal(t, 0, b2.Len())
}

func TestPoolDiscardsOversizedBuffer(t *testing.T) {
	p := NewPool(4, 4)
	b := p.Get()
	_, _ = b.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	p.Put(b) // exceeds maxThreshold, should be discarded not recycled

	b2 := p.Get()
	require.NotNil(t, b2)
}
