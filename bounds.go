package mesh

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Bounds returns the axis-aligned extent of the "position" attribute.
// It honors the attribute's stride and start offset, so it works on
// both separate and interleaved layouts, but requires two or more
// Float32 components. ok is false when no such attribute exists or the
// geometry holds no vertices.
func (g *Geometry) Bounds() (min, max f32.Vec2, ok bool) {
	a := g.attributes["position"]
	if a == nil || a.Type != Float32 || a.Size < 2 || a.BufferIndex >= len(g.buffers) {
		return min, max, false
	}
	data := g.buffers[a.BufferIndex].Float32s()
	stride := a.Stride
	if stride == 0 {
		stride = a.Size
	}

	min = f32.Vec2{math32.MaxFloat32, math32.MaxFloat32}
	max = f32.Vec2{-math32.MaxFloat32, -math32.MaxFloat32}
	for i := a.Start; i+1 < len(data); i += stride {
		min[0] = math32.Min(min[0], data[i])
		min[1] = math32.Min(min[1], data[i+1])
		max[0] = math32.Max(max[0], data[i])
		max[1] = math32.Max(max[1], data[i+1])
		ok = true
	}
	if !ok {
		return f32.Vec2{}, f32.Vec2{}, false
	}
	return min, max, true
}
