package mesh

import (
	"golang.org/x/image/math/f32"
)

// NewQuad returns a geometry for an axis-aligned w x h rectangle with
// "position" and "uv" attributes (two components each) and a 16-bit
// index buffer of two triangles. The origin is the top-left corner.
func NewQuad(w, h float32) *Geometry {
	corners := []f32.Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
	uvs := []f32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	return NewGeometry().
		AddAttribute("position", Float32Data(flatten(corners)...), 2).
		AddAttribute("uv", Float32Data(flatten(uvs)...), 2).
		AddIndex(Uint16Data(0, 1, 2, 0, 2, 3))
}

// NewPlane returns a geometry for a w x h rectangle subdivided into
// segX x segY quads, with "position" and "uv" attributes and a 16-bit
// index buffer. Segment counts below one are clamped to one.
func NewPlane(w, h float32, segX, segY int) *Geometry {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}

	cols, rows := segX+1, segY+1
	positions := make([]f32.Vec2, 0, cols*rows)
	uvs := make([]f32.Vec2, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			u := float32(x) / float32(segX)
			v := float32(y) / float32(segY)
			positions = append(positions, f32.Vec2{u * w, v * h})
			uvs = append(uvs, f32.Vec2{u, v})
		}
	}

	indices := make([]uint16, 0, segX*segY*6)
	for y := 0; y < segY; y++ {
		for x := 0; x < segX; x++ {
			i := uint16(y*cols + x)
			right := i + 1
			below := i + uint16(cols)
			indices = append(indices, i, right, below, right, below+1, below)
		}
	}

	return NewGeometry().
		AddAttribute("position", Float32Data(flatten(positions)...), 2).
		AddAttribute("uv", Float32Data(flatten(uvs)...), 2).
		AddIndex(Uint16Data(indices...))
}

// flatten unrolls 2D points into the flat component array buffers store.
func flatten(pts []f32.Vec2) []float32 {
	out := make([]float32, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p[0], p[1])
	}
	return out
}
