package mesh

import (
	"errors"
	"testing"
)

func TestInterleaveTwoAttributes(t *testing.T) {
	// 3 vertices: A (size 2) and B (size 3), stride must become 5 words.
	g := NewGeometry().
		AddAttribute("a", Float32Data(10, 11, 20, 21, 30, 31), 2).
		AddAttribute("b", Float32Data(100, 101, 102, 200, 201, 202, 300, 301, 302), 3).
		Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if len(g.Buffers()) != 1 {
		t.Fatalf("buffer count = %d, want 1", len(g.Buffers()))
	}
	data := g.Buffers()[0].Float32s()
	if len(data) != 15 {
		t.Fatalf("packed length = %d, want 5*3", len(data))
	}

	const stride = 5
	for v := 0; v < 3; v++ {
		wantA := []float32{float32(v+1) * 10, float32(v+1)*10 + 1}
		wantB := []float32{float32(v+1) * 100, float32(v+1)*100 + 1, float32(v+1)*100 + 2}
		if data[v*stride] != wantA[0] || data[v*stride+1] != wantA[1] {
			t.Errorf("vertex %d: a = (%g,%g), want (%g,%g)",
				v, data[v*stride], data[v*stride+1], wantA[0], wantA[1])
		}
		for i, w := range wantB {
			if got := data[v*stride+2+i]; got != w {
				t.Errorf("vertex %d: b[%d] = %g, want %g", v, i, got, w)
			}
		}
	}

	for _, name := range []string{"a", "b"} {
		if got := g.Attribute(name).BufferIndex; got != 0 {
			t.Errorf("%q BufferIndex = %d, want 0", name, got)
		}
		if got := g.Attribute(name).Stride; got != stride {
			t.Errorf("%q Stride = %d, want %d", name, got, stride)
		}
	}
	if got := g.Attribute("a").Start; got != 0 {
		t.Errorf("a.Start = %d, want 0", got)
	}
	if got := g.Attribute("b").Start; got != 2 {
		t.Errorf("b.Start = %d, want 2", got)
	}
}

func TestInterleaveDestroysSources(t *testing.T) {
	g := NewGeometry().
		AddAttribute("a", Float32Data(1, 2), 2).
		AddAttribute("b", Float32Data(3, 4), 2)
	sources := append([]*Buffer(nil), g.Buffers()...)

	g.Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	for i, b := range sources {
		if !b.Destroyed() {
			t.Errorf("source buffer %d should be destroyed after interleave", i)
		}
	}
}

func TestInterleaveIdempotent(t *testing.T) {
	g := NewGeometry().
		AddAttribute("a", Float32Data(1, 2, 3, 4), 2).
		AddAttribute("b", Float32Data(5, 6), 1).
		AddIndex(Uint16Data(0, 1)).
		Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	buffers := append([]*Buffer(nil), g.Buffers()...)
	strideA := g.Attribute("a").Stride

	g.Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("second Interleave: %v", err)
	}
	if len(g.Buffers()) != len(buffers) {
		t.Fatalf("buffer count changed: %d -> %d", len(buffers), len(g.Buffers()))
	}
	for i := range buffers {
		if g.Buffers()[i] != buffers[i] {
			t.Errorf("buffer %d replaced by second interleave", i)
		}
	}
	if g.Attribute("a").Stride != strideA {
		t.Error("attribute stride changed on second interleave")
	}
}

func TestInterleavePreservesIndex(t *testing.T) {
	g := NewGeometry().
		AddAttribute("position", Float32Data(0, 0, 100, 0, 100, 100, 0, 100), 2).
		AddAttribute("uv", Float32Data(0, 0, 1, 0, 1, 1, 0, 1), 2).
		AddIndex(Uint16Data(0, 1, 2, 1, 3, 2))
	index := g.Index()

	g.Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if len(g.Buffers()) != 2 {
		t.Fatalf("buffer count = %d, want [interleaved, index]", len(g.Buffers()))
	}
	if g.Buffers()[1] != index || g.Index() != index {
		t.Error("index buffer should be preserved unmodified")
	}
	if index.Destroyed() {
		t.Error("index buffer must not be destroyed by interleave")
	}
	want := []uint16{0, 1, 2, 1, 3, 2}
	for i, v := range want {
		if got := index.Uint16s()[i]; got != v {
			t.Errorf("index[%d] = %d, want %d", i, got, v)
		}
	}
}

// The example scenario: a single position buffer plus an index buffer is
// already in interleaved form, so Interleave leaves it untouched and a
// later Destroy releases everything.
func TestInterleaveFastPathAndDestroy(t *testing.T) {
	g := NewGeometry().
		AddAttribute("position", Float32Data(0, 0, 100, 0, 100, 100, 0, 100), 2).
		AddIndex(Uint16Data(0, 1, 2, 1, 3, 2))
	position := g.Buffers()[0]

	g.Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(g.Buffers()) != 2 {
		t.Fatalf("buffer count = %d, want 2", len(g.Buffers()))
	}
	if g.Buffers()[0] != position {
		t.Error("fast path must not rebuild the vertex buffer")
	}
	if got := g.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}

	buffers := append([]*Buffer(nil), g.Buffers()...)
	g.Destroy()
	for i, b := range buffers {
		if !b.Destroyed() {
			t.Errorf("buffer %d not destroyed", i)
		}
	}
	if g.Attribute("position") != nil {
		t.Error("attributes should be cleared by Destroy")
	}
}

func TestInterleaveMixedFootprints(t *testing.T) {
	// Two vertices: float32x2 position and uint8x4 color (one word per
	// vertex), stride 3 words.
	colors := NewBuffer(Uint8, 8)
	copy(colors.Bytes(), []byte{255, 0, 0, 255, 0, 255, 0, 255})

	g := NewGeometry().
		AddAttribute("position", Float32Data(1, 2, 3, 4), 2).
		AddAttribute("color", FromBuffer(colors), 4, Normalized()).
		Interleave()
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if got := g.Attribute("position").Stride; got != 3 {
		t.Errorf("position.Stride = %d elements, want 3", got)
	}
	// Color stride and start are measured in its own (byte-wide) elements.
	if got := g.Attribute("color").Stride; got != 12 {
		t.Errorf("color.Stride = %d elements, want 12", got)
	}
	if got := g.Attribute("color").Start; got != 8 {
		t.Errorf("color.Start = %d elements, want 8", got)
	}

	bytes := g.Buffers()[0].Bytes()
	// Vertex 0: 8 bytes of position, then the 4 color bytes.
	if bytes[8] != 255 || bytes[9] != 0 || bytes[10] != 0 || bytes[11] != 255 {
		t.Errorf("vertex 0 color bytes = %v, want [255 0 0 255]", bytes[8:12])
	}
	// Vertex 1 color sits one stride (12 bytes) later.
	if bytes[20] != 0 || bytes[21] != 255 {
		t.Errorf("vertex 1 color bytes = %v, want [0 255 ...]", bytes[20:22])
	}
}

func TestInterleaveUnalignedFootprint(t *testing.T) {
	// A lone uint16 component spans half a word and cannot be packed.
	g := NewGeometry().
		AddAttribute("position", Float32Data(1, 2), 2).
		AddAttribute("flag", FromBuffer(NewUint16Buffer([]uint16{7})), 1).
		Interleave()
	if !errors.Is(g.Err(), ErrUnalignedAttribute) {
		t.Errorf("Err() = %v, want ErrUnalignedAttribute", g.Err())
	}
}

func TestInterleaveVertexCountMismatch(t *testing.T) {
	// a describes 2 vertices, b describes 3; packing would index past
	// the allocated output, so it must be refused up front.
	g := NewGeometry().
		AddAttribute("a", Float32Data(1, 2, 3, 4), 2).
		AddAttribute("b", Float32Data(1, 2, 3, 4, 5, 6, 7, 8, 9), 3).
		Interleave()
	if !errors.Is(g.Err(), ErrVertexCountMismatch) {
		t.Errorf("Err() = %v, want ErrVertexCountMismatch", g.Err())
	}
}

func TestInterleavePartialVertex(t *testing.T) {
	// 3 floats cannot form whole size-2 vertices.
	g := NewGeometry().
		AddAttribute("a", Float32Data(1, 2, 3), 2).
		AddAttribute("b", Float32Data(1, 2), 2).
		Interleave()
	if !errors.Is(g.Err(), ErrVertexCountMismatch) {
		t.Errorf("Err() = %v, want ErrVertexCountMismatch", g.Err())
	}
}

func TestInterleaveSharedBuffer(t *testing.T) {
	// Two attributes reading one buffer are caller-interleaved already;
	// packing would duplicate the data, so it must be refused. A third
	// separate buffer keeps the fast path from short-circuiting.
	shared := NewFloat32Buffer([]float32{0, 0, 1, 1})
	g := NewGeometry().
		AddAttribute("position", FromBuffer(shared), 2).
		AddAttribute("uv", FromBuffer(shared), 2).
		AddAttribute("alpha", Float32Data(1), 1).
		Interleave()
	if !errors.Is(g.Err(), ErrSharedSourceBuffer) {
		t.Errorf("Err() = %v, want ErrSharedSourceBuffer", g.Err())
	}
}

func TestInterleaveStridedSource(t *testing.T) {
	g := NewGeometry().
		AddAttribute("position", Float32Data(0, 0, 0, 0), 2, WithStride(4)).
		AddAttribute("uv", Float32Data(0, 0), 2).
		Interleave()
	if !errors.Is(g.Err(), ErrStridedSource) {
		t.Errorf("Err() = %v, want ErrStridedSource", g.Err())
	}
}
