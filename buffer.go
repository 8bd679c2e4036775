package mesh

import (
	"github.com/gogpu/mesh/internal/words"
)

// Buffer owns one contiguous array of homogeneously-typed numeric data.
// The scalar type is fixed at creation and never changes. A buffer is
// either vertex data or index data, never both; the index flag is set by
// [Geometry.AddIndex].
//
// Lifecycle: a buffer is created explicitly or implicitly when an
// attribute or index is registered from raw data, and released by
// Destroy. Destroying a buffer twice is a no-op; accessors on a
// destroyed buffer return nil or zero.
type Buffer struct {
	data      []byte
	typ       ScalarType
	isIndex   bool
	destroyed bool
}

// NewBuffer creates a zeroed buffer of elems elements of the given type.
func NewBuffer(typ ScalarType, elems int) *Buffer {
	return &Buffer{data: words.Alloc(elems * typ.ByteWidth()), typ: typ}
}

// NewFloat32Buffer creates a buffer owning a copy of v.
func NewFloat32Buffer(v []float32) *Buffer {
	return &Buffer{data: words.FromFloat32(v), typ: Float32}
}

// NewUint32Buffer creates a buffer owning a copy of v.
func NewUint32Buffer(v []uint32) *Buffer {
	return &Buffer{data: words.FromUint32(v), typ: Uint32}
}

// NewUint16Buffer creates a buffer owning a copy of v.
func NewUint16Buffer(v []uint16) *Buffer {
	return &Buffer{data: words.FromUint16(v), typ: Uint16}
}

// Type returns the element type. It never changes after creation.
func (b *Buffer) Type() ScalarType { return b.typ }

// IsIndex reports whether this buffer holds index data.
func (b *Buffer) IsIndex() bool { return b.isIndex }

// Destroyed reports whether Destroy has released the buffer.
func (b *Buffer) Destroyed() bool { return b.destroyed }

// Len returns the number of elements.
func (b *Buffer) Len() int {
	if w := b.typ.ByteWidth(); w > 0 {
		return len(b.data) / w
	}
	return 0
}

// ByteLen returns the length of the underlying array in bytes.
func (b *Buffer) ByteLen() int { return len(b.data) }

// Bytes returns the raw storage. The slice aliases the buffer; writing
// to it mutates the buffer. Returns nil after Destroy.
func (b *Buffer) Bytes() []byte { return b.data }

// Float32s returns the storage viewed as float32 elements.
// The view aliases the buffer. Returns nil after Destroy.
func (b *Buffer) Float32s() []float32 { return words.AsFloat32(b.data) }

// Uint32s returns the storage viewed as uint32 elements.
func (b *Buffer) Uint32s() []uint32 { return words.AsUint32(b.data) }

// Uint16s returns the storage viewed as uint16 elements.
func (b *Buffer) Uint16s() []uint16 { return words.AsUint16(b.data) }

// Words returns the storage viewed as 32-bit words regardless of the
// element type. Interleaving and merging move data in these units.
func (b *Buffer) Words() []uint32 { return words.AsUint32(b.data) }

// Destroy releases the underlying array. Destroying an already-destroyed
// buffer is a no-op.
func (b *Buffer) Destroy() {
	if b.destroyed {
		Logger().Warn("mesh: Destroy on already-destroyed buffer")
		return
	}
	b.data = nil
	b.destroyed = true
}

// clone returns an independent copy with duplicated storage. The index
// flag travels with the copy; Geometry.Clone re-resolves which buffer
// the cloned geometry distinguishes as its index.
func (b *Buffer) clone() *Buffer {
	return &Buffer{data: words.Clone(b.data), typ: b.typ, isIndex: b.isIndex}
}
