package value

import "fmt"

// ByteBuffer is a mutable, growable byte string, distinct from String
// (which is immutable and meant for text).
type ByteBuffer struct {
	id     uint64
	buf    []byte
	frozen bool
}

var _ Value = (*ByteBuffer)(nil)

// NewByteBuffer returns a new ByteBuffer wrapping buf (not copied).
func NewByteBuffer(buf []byte) *ByteBuffer { return &ByteBuffer{id: nextID(), buf: buf} }

func (b *ByteBuffer) String() string { return fmt.Sprintf("@\"%s\"", b.buf) }
func (b *ByteBuffer) Type() string   { return "bytebuffer" }
func (b *ByteBuffer) Truth() Bool    { return len(b.buf) > 0 }
func (b *ByteBuffer) Freeze()        { b.frozen = true }
func (b *ByteBuffer) Frozen() bool   { return b.frozen }
func (b *ByteBuffer) Len() int       { return len(b.buf) }
func (b *ByteBuffer) Bytes() []byte  { return b.buf }
