package mesh

// Attribute describes how to read one logical per-vertex field out of a
// buffer in the owning geometry's buffer list. It is a pure value type;
// copying it copies every field.
//
// Stride and Start are measured in elements of the attribute's scalar
// type. A Stride of 0 means tightly packed, equivalent to Size.
type Attribute struct {
	// BufferIndex is the position of the backing buffer in the owning
	// geometry's buffer list. Operations that reorder buffers rewrite it.
	BufferIndex int

	// Size is the component count, e.g. 2 for a 2D position.
	Size int

	// Normalized requests integer-to-float normalization at read time.
	Normalized bool

	// Type is the scalar type of each component.
	Type ScalarType

	// Stride is the element distance between consecutive values.
	// 0 means tightly packed.
	Stride int

	// Start is the element offset of the first value.
	Start int

	// Instanced advances the attribute per draw-instance instead of
	// per-vertex.
	Instanced bool
}

// footprint returns the per-vertex span of the attribute in 32-bit
// words, the unit interleaved buffers are laid out in. ok is false when
// the span is not a whole number of words (e.g. a single Uint16
// component), which cannot be interleaved.
func (a *Attribute) footprint() (w int, ok bool) {
	bytes := a.Size * a.Type.ByteWidth()
	return bytes / 4, bytes%4 == 0
}

// AttributeOption configures an attribute during registration.
// The zero configuration is a tightly packed, per-vertex attribute
// typed after its backing buffer.
type AttributeOption func(*Attribute)

// Normalized marks the attribute for integer-to-float normalization.
func Normalized() AttributeOption {
	return func(a *Attribute) { a.Normalized = true }
}

// WithType overrides the scalar type, for reading a buffer as a type
// other than the one it was created with (e.g. packed Uint8 colors in a
// caller-provided byte buffer).
func WithType(t ScalarType) AttributeOption {
	return func(a *Attribute) { a.Type = t }
}

// WithStride sets the element distance between consecutive values, for
// caller-interleaved buffers.
func WithStride(stride int) AttributeOption {
	return func(a *Attribute) { a.Stride = stride }
}

// WithStart sets the element offset of the first value, for
// caller-interleaved buffers.
func WithStart(start int) AttributeOption {
	return func(a *Attribute) { a.Start = start }
}

// Instanced advances the attribute once per draw-instance rather than
// once per vertex.
func Instanced() AttributeOption {
	return func(a *Attribute) { a.Instanced = true }
}
