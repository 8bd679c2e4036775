package upload

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/mesh"
)

// Layout errors.
var (
	// ErrNilGeometry is returned when deriving a layout from nil.
	ErrNilGeometry = errors.New("upload: geometry is nil")

	// ErrUnsupportedFormat is returned for (type, size, normalized)
	// combinations that have no vertex format, such as a single Uint8
	// component.
	ErrUnsupportedFormat = errors.New("upload: no vertex format for attribute")

	// ErrStrideConflict is returned when attributes sharing a buffer
	// disagree about its per-vertex byte stride.
	ErrStrideConflict = errors.New("upload: attributes disagree on buffer stride")
)

// VertexLayouts derives one gputypes.VertexBufferLayout per non-index
// buffer of g, in buffer-list order. Shader locations are assigned in
// attribute registration order, so a pipeline built against the same
// geometry layout sees stable locations.
//
// For tightly packed attributes the array stride is the sum of the
// attribute byte sizes on that buffer; an explicit attribute stride
// overrides it and must agree across all attributes of the buffer.
func VertexLayouts(g *mesh.Geometry) ([]gputypes.VertexBufferLayout, error) {
	if g == nil {
		return nil, ErrNilGeometry
	}
	if err := g.Err(); err != nil {
		return nil, fmt.Errorf("upload: geometry has a pending error: %w", err)
	}

	buffers := g.Buffers()
	layouts := make([]gputypes.VertexBufferLayout, len(buffers))
	tight := make([]uint64, len(buffers))
	instanced := make([]bool, len(buffers))

	location := uint32(0)
	for _, name := range g.AttributeNames() {
		a := g.Attribute(name)
		format, err := vertexFormat(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q (%d x %s)", err, name, a.Size, a.Type)
		}

		bw := uint64(a.Type.ByteWidth())
		layout := &layouts[a.BufferIndex]
		layout.Attributes = append(layout.Attributes, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.Start) * bw,
			ShaderLocation: location,
		})
		location++

		if a.Stride > 0 {
			strideBytes := uint64(a.Stride) * bw
			if layout.ArrayStride != 0 && layout.ArrayStride != strideBytes {
				return nil, fmt.Errorf("%w: %q wants %d", ErrStrideConflict, name, strideBytes)
			}
			layout.ArrayStride = strideBytes
		} else {
			tight[a.BufferIndex] += uint64(a.Size) * bw
		}
		instanced[a.BufferIndex] = instanced[a.BufferIndex] || a.Instanced
	}

	out := layouts[:0]
	for i := range layouts {
		if buffers[i].IsIndex() {
			continue
		}
		if layouts[i].ArrayStride == 0 {
			layouts[i].ArrayStride = tight[i]
		}
		layouts[i].StepMode = gputypes.VertexStepModeVertex
		if instanced[i] {
			layouts[i].StepMode = gputypes.VertexStepModeInstance
		}
		out = append(out, layouts[i])
	}
	return out, nil
}

// vertexFormat maps an attribute's scalar type, component count and
// normalization flag onto the matching gputypes vertex format. The
// mapping follows WebGPU: 8- and 16-bit integers only exist in two- and
// four-component flavors, and normalization selects the *norm variants.
func vertexFormat(a *mesh.Attribute) (gputypes.VertexFormat, error) {
	type key struct {
		t    mesh.ScalarType
		size int
		norm bool
	}
	formats := map[key]gputypes.VertexFormat{
		{mesh.Float32, 1, false}: gputypes.VertexFormatFloat32,
		{mesh.Float32, 2, false}: gputypes.VertexFormatFloat32x2,
		{mesh.Float32, 3, false}: gputypes.VertexFormatFloat32x3,
		{mesh.Float32, 4, false}: gputypes.VertexFormatFloat32x4,

		{mesh.Uint32, 1, false}: gputypes.VertexFormatUint32,
		{mesh.Uint32, 2, false}: gputypes.VertexFormatUint32x2,
		{mesh.Uint32, 3, false}: gputypes.VertexFormatUint32x3,
		{mesh.Uint32, 4, false}: gputypes.VertexFormatUint32x4,

		{mesh.Int32, 1, false}: gputypes.VertexFormatSint32,
		{mesh.Int32, 2, false}: gputypes.VertexFormatSint32x2,
		{mesh.Int32, 3, false}: gputypes.VertexFormatSint32x3,
		{mesh.Int32, 4, false}: gputypes.VertexFormatSint32x4,

		{mesh.Uint16, 2, false}: gputypes.VertexFormatUint16x2,
		{mesh.Uint16, 4, false}: gputypes.VertexFormatUint16x4,
		{mesh.Uint16, 2, true}:  gputypes.VertexFormatUnorm16x2,
		{mesh.Uint16, 4, true}:  gputypes.VertexFormatUnorm16x4,

		{mesh.Int16, 2, false}: gputypes.VertexFormatSint16x2,
		{mesh.Int16, 4, false}: gputypes.VertexFormatSint16x4,
		{mesh.Int16, 2, true}:  gputypes.VertexFormatSnorm16x2,
		{mesh.Int16, 4, true}:  gputypes.VertexFormatSnorm16x4,

		{mesh.Uint8, 2, false}: gputypes.VertexFormatUint8x2,
		{mesh.Uint8, 4, false}: gputypes.VertexFormatUint8x4,
		{mesh.Uint8, 2, true}:  gputypes.VertexFormatUnorm8x2,
		{mesh.Uint8, 4, true}:  gputypes.VertexFormatUnorm8x4,

		{mesh.Int8, 2, false}: gputypes.VertexFormatSint8x2,
		{mesh.Int8, 4, false}: gputypes.VertexFormatSint8x4,
		{mesh.Int8, 2, true}:  gputypes.VertexFormatSnorm8x2,
		{mesh.Int8, 4, true}:  gputypes.VertexFormatSnorm8x4,
	}

	// Normalization is meaningless for float data; ignore the flag.
	norm := a.Normalized && a.Type != mesh.Float32
	f, ok := formats[key{a.Type, a.Size, norm}]
	if !ok {
		return 0, ErrUnsupportedFormat
	}
	return f, nil
}

// IndexFormat converts a geometry's index width to the gputypes value
// used when binding the index buffer.
func IndexFormat(g *mesh.Geometry) gputypes.IndexFormat {
	if g.IndexFormat() == mesh.IndexFormatUint32 {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}
