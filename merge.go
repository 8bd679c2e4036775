package mesh

import (
	"errors"
	"fmt"
	"math"
)

// Merge errors.
var (
	// ErrMergeEmpty is returned when Merge is called with no geometries.
	ErrMergeEmpty = errors.New("mesh: nothing to merge")

	// ErrMergeLayout is returned when the input geometries do not share
	// an identical attribute layout and buffer topology.
	ErrMergeLayout = errors.New("mesh: merge inputs have mismatched layouts")

	// ErrIndexOverflow is returned when renumbered indices exceed the
	// 16-bit range of the output index buffer. Build the inputs with
	// Uint32Data indices to merge past 65536 vertices.
	ErrIndexOverflow = errors.New("mesh: merged indices overflow Uint16")
)

// Merge combines geometries into one new geometry, preserving the
// relative vertex order of each input sequentially: the first input's
// vertices come first, then the second's, and so on. Index data is
// renumbered so each input's indices point past the vertices
// contributed by the inputs before it.
//
// The inputs must share an identical layout: the same attribute names,
// sizes and types, the same buffer count, and the same index slot.
// Mismatches are rejected rather than silently producing a geometry
// whose descriptors only match the last input. Inputs are read, never
// mutated, and the output shares no storage with them.
func Merge(geometries ...*Geometry) (*Geometry, error) {
	if len(geometries) == 0 {
		return nil, ErrMergeEmpty
	}
	for i, g := range geometries {
		if g == nil {
			return nil, fmt.Errorf("%w: input %d is nil", ErrMergeLayout, i)
		}
		if g.err != nil {
			return nil, fmt.Errorf("mesh: merge input %d has a pending error: %w", i, g.err)
		}
		if g.destroyed {
			return nil, fmt.Errorf("mesh: merge input %d: %w", i, ErrDestroyed)
		}
	}

	last := geometries[len(geometries)-1]
	for i, g := range geometries[:len(geometries)-1] {
		if err := sameLayout(g, last); err != nil {
			return nil, fmt.Errorf("%w: input %d: %v", ErrMergeLayout, i, err)
		}
	}

	// Pass 1: per-slot element totals across all inputs.
	slots := len(last.buffers)
	sizes := make([]int, slots)
	for _, g := range geometries {
		for j, b := range g.buffers {
			sizes[j] += b.Len()
		}
	}

	out := NewGeometry()
	out.buffers = make([]*Buffer, slots)
	indexSlot := -1
	for j := range out.buffers {
		// The slot keeps the last input's concrete element type.
		out.buffers[j] = NewBuffer(last.buffers[j].Type(), sizes[j])
		if last.buffers[j] == last.index {
			indexSlot = j
			out.buffers[j].isIndex = true
			out.index = out.buffers[j]
		}
	}
	for name, a := range last.attributes {
		cp := *a
		out.attributes[name] = &cp
	}
	out.order = append([]string(nil), last.order...)

	// Pass 2: sequential slot-wise copy at running per-slot offsets.
	offsets := make([]int, slots)
	for _, g := range geometries {
		for j, b := range g.buffers {
			if j == indexSlot {
				continue // renumbered below
			}
			bw := b.Type().ByteWidth()
			copy(out.buffers[j].Bytes()[offsets[j]*bw:], b.Bytes())
			offsets[j] += b.Len()
		}
	}

	if indexSlot >= 0 {
		if err := renumberIndices(out, geometries, indexSlot); err != nil {
			return nil, err
		}
	}

	Logger().Debug("mesh: merged geometries",
		"inputs", len(geometries), "slots", slots, "vertices", out.Size())
	return out, nil
}

// renumberIndices fills the output index slot: each input's index data
// is copied at the running index offset with the running vertex count
// added to every value, so input i's indices address the vertices it
// contributed rather than input 0's.
func renumberIndices(out *Geometry, geometries []*Geometry, indexSlot int) error {
	// Words per vertex of the vertex slot, the same computation the
	// interleaved stride uses. Vertex counts divide element counts by it.
	vertexSlot := 0
	if vertexSlot == indexSlot {
		vertexSlot = 1
	}
	last := geometries[len(geometries)-1]
	stride := 0
	for _, name := range last.order {
		if a := last.attributes[name]; a.BufferIndex == vertexSlot {
			f, ok := a.footprint()
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnalignedAttribute, name)
			}
			stride += f
		}
	}
	if stride == 0 {
		return fmt.Errorf("%w: no attributes on vertex slot %d", ErrMergeLayout, vertexSlot)
	}

	dst := out.buffers[indexSlot]
	wide := dst.Type() == Uint32
	written, vertexOffset := 0, 0
	for _, g := range geometries {
		src := g.buffers[indexSlot]
		for i := 0; i < src.Len(); i++ {
			var v int
			if src.Type() == Uint32 {
				v = int(src.Uint32s()[i])
			} else {
				v = int(src.Uint16s()[i])
			}
			v += vertexOffset
			if wide {
				dst.Uint32s()[written] = uint32(v)
			} else {
				if v > math.MaxUint16 {
					return fmt.Errorf("%w: index %d", ErrIndexOverflow, v)
				}
				dst.Uint16s()[written] = uint16(v)
			}
			written++
		}
		vertexOffset += g.buffers[vertexSlot].ByteLen() / 4 / stride
	}
	return nil
}

// sameLayout reports whether two geometries can be merged: identical
// attribute names, sizes, types and buffer topology (slot count, slot
// scalar types, matching index slot).
func sameLayout(g, ref *Geometry) error {
	if len(g.buffers) != len(ref.buffers) {
		return fmt.Errorf("buffer count %d != %d", len(g.buffers), len(ref.buffers))
	}
	if (g.index == nil) != (ref.index == nil) {
		return errors.New("index buffer present in one input only")
	}
	if g.index != nil && g.bufferIndex(g.index) != ref.bufferIndex(ref.index) {
		return errors.New("index buffer occupies different slots")
	}
	if len(g.attributes) != len(ref.attributes) {
		return fmt.Errorf("attribute count %d != %d", len(g.attributes), len(ref.attributes))
	}
	for name, want := range ref.attributes {
		have := g.attributes[name]
		if have == nil {
			return fmt.Errorf("attribute %q missing", name)
		}
		if have.Size != want.Size || have.Type != want.Type || have.BufferIndex != want.BufferIndex {
			return fmt.Errorf("attribute %q differs", name)
		}
	}
	return nil
}
