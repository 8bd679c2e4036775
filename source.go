package mesh

import "errors"

// Source errors.
var (
	// ErrNoSource is returned when an attribute or index is registered
	// without a buffer or data argument.
	ErrNoSource = errors.New("mesh: no buffer or data supplied")

	// ErrIndexType is returned when AddIndex is given float data, which
	// cannot address vertices.
	ErrIndexType = errors.New("mesh: index data must be Uint16 or Uint32")
)

// sourceKind discriminates the BufferSource variants.
type sourceKind uint8

const (
	sourceNone sourceKind = iota
	sourceBuffer
	sourceFloat32
	sourceUint16
	sourceUint32
)

// BufferSource is the tagged argument of AddAttribute and AddIndex: an
// existing buffer, or raw numeric data to wrap in a new owned buffer.
// The zero value is "no source" and registers nothing.
type BufferSource struct {
	kind sourceKind
	buf  *Buffer
	f32  []float32
	u16  []uint16
	u32  []uint32
}

// FromBuffer references an existing buffer. The geometry de-duplicates
// by object identity, so registering the same buffer for several
// attributes adds it to the buffer list once.
func FromBuffer(b *Buffer) BufferSource {
	if b == nil {
		return BufferSource{}
	}
	return BufferSource{kind: sourceBuffer, buf: b}
}

// Float32Data wraps raw float data in a new owned Float32 buffer.
func Float32Data(v ...float32) BufferSource {
	return BufferSource{kind: sourceFloat32, f32: v}
}

// Uint16Data wraps raw 16-bit integer data in a new owned Uint16 buffer.
func Uint16Data(v ...uint16) BufferSource {
	return BufferSource{kind: sourceUint16, u16: v}
}

// Uint32Data wraps raw 32-bit integer data in a new owned Uint32 buffer.
func Uint32Data(v ...uint32) BufferSource {
	return BufferSource{kind: sourceUint32, u32: v}
}

// resolve returns the buffer this source denotes, constructing one for
// raw data variants.
func (s BufferSource) resolve() (*Buffer, error) {
	switch s.kind {
	case sourceBuffer:
		return s.buf, nil
	case sourceFloat32:
		return NewFloat32Buffer(s.f32), nil
	case sourceUint16:
		return NewUint16Buffer(s.u16), nil
	case sourceUint32:
		return NewUint32Buffer(s.u32), nil
	default:
		return nil, ErrNoSource
	}
}

// resolveIndex is resolve with the index-width rule: raw data keeps the
// width of its variant (Uint16Data or Uint32Data) rather than being
// forced to a fixed constant, and float data is rejected.
func (s BufferSource) resolveIndex() (*Buffer, error) {
	if s.kind == sourceFloat32 {
		return nil, ErrIndexType
	}
	if s.kind == sourceBuffer && s.buf != nil && s.buf.Type() == Float32 {
		return nil, ErrIndexType
	}
	return s.resolve()
}
