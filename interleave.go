package mesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/mesh/internal/words"
)

// Interleave errors.
var (
	// ErrUnalignedAttribute is returned when an attribute's per-vertex
	// span is not a whole number of 32-bit words, which the packed
	// layout cannot represent.
	ErrUnalignedAttribute = errors.New("mesh: attribute footprint is not a whole number of words")

	// ErrSharedSourceBuffer is returned when two attributes read the
	// same buffer: the data is already caller-interleaved and packing it
	// once per attribute would duplicate it.
	ErrSharedSourceBuffer = errors.New("mesh: attributes share a source buffer")

	// ErrStridedSource is returned when a source attribute carries a
	// manual stride or start offset; interleaving assumes tightly
	// packed inputs.
	ErrStridedSource = errors.New("mesh: cannot interleave strided source attribute")

	// ErrVertexCountMismatch is returned when the source attributes do
	// not describe the same number of vertices; the packed layout needs
	// one slot per attribute for every vertex.
	ErrVertexCountMismatch = errors.New("mesh: attributes disagree on vertex count")
)

// Interleave rewrites the geometry so every non-index attribute reads
// from a single packed buffer, interleaved per vertex: the layout GPUs
// consume most efficiently for static geometry, and a single bind call
// instead of one per attribute buffer.
//
// Attributes are processed in registration order. Each contributes
// size * byteWidth / 4 32-bit words per vertex; the sum is the combined
// stride. The packed buffer is a 32-bit-element array regardless of the
// constituent logical types. Source buffers are destroyed after their
// data is copied; afterward the buffer list is [interleaved] or
// [interleaved, index] and every attribute's BufferIndex is 0, with
// Stride and Start rewritten in elements of the attribute's own type.
//
// Interleave on an already-interleaved geometry (one vertex buffer,
// optionally plus an index buffer) returns unchanged, so the operation
// is idempotent.
//
// Interleave returns the geometry for chaining; failures are recorded
// and retrievable via Err.
func (g *Geometry) Interleave() *Geometry {
	if g.err != nil {
		return g
	}
	if g.destroyed {
		return g.fail(ErrDestroyed)
	}

	// Nothing to pack, or already a single vertex buffer, possibly
	// alongside the index.
	if len(g.buffers) <= 1 || (len(g.buffers) == 2 && g.index != nil) {
		return g
	}

	arrays := make([][]uint32, 0, len(g.order))
	footprints := make([]int, 0, len(g.order))
	seen := make(map[*Buffer]string, len(g.buffers))
	verts := -1

	for _, name := range g.order {
		attr := g.attributes[name]
		if attr.Stride != 0 || attr.Start != 0 {
			return g.fail(fmt.Errorf("%w: %q", ErrStridedSource, name))
		}
		buf := g.buffers[attr.BufferIndex]
		if prev, dup := seen[buf]; dup {
			return g.fail(fmt.Errorf("%w: %q and %q", ErrSharedSourceBuffer, prev, name))
		}
		seen[buf] = name

		f, ok := attr.footprint()
		if !ok || buf.ByteLen()%4 != 0 {
			return g.fail(fmt.Errorf("%w: %q (%d x %s)", ErrUnalignedAttribute, name, attr.Size, attr.Type))
		}

		attrBytes := attr.Size * attr.Type.ByteWidth()
		n := buf.ByteLen() / attrBytes
		if buf.ByteLen()%attrBytes != 0 {
			return g.fail(fmt.Errorf("%w: %q holds a partial vertex", ErrVertexCountMismatch, name))
		}
		if verts >= 0 && n != verts {
			return g.fail(fmt.Errorf("%w: %q has %d, previous attributes have %d",
				ErrVertexCountMismatch, name, n, verts))
		}
		verts = n

		arrays = append(arrays, buf.Words())
		footprints = append(footprints, f)
	}

	packed, stride := words.Interleave(arrays, footprints)
	Logger().Debug("mesh: interleaved geometry",
		"attributes", len(arrays), "stride_words", stride, "total_words", len(packed))

	interleaved := &Buffer{data: words.FromUint32(packed), typ: Float32}

	running := 0
	for _, name := range g.order {
		attr := g.attributes[name]
		bw := attr.Type.ByteWidth()
		attr.BufferIndex = 0
		attr.Stride = stride * 4 / bw
		attr.Start = running * 4 / bw
		f, _ := attr.footprint()
		running += f
	}

	// Ownership of the vertex data has moved into the packed buffer.
	for _, b := range g.buffers {
		if !b.isIndex {
			b.Destroy()
		}
	}
	g.buffers = g.buffers[:0]
	g.buffers = append(g.buffers, interleaved)
	if g.index != nil {
		g.buffers = append(g.buffers, g.index)
	}
	return g
}
