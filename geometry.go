package mesh

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Geometry errors.
var (
	// ErrDestroyed is returned when mutating a destroyed geometry.
	ErrDestroyed = errors.New("mesh: geometry has been destroyed")

	// ErrBadSize is returned when an attribute is registered with a
	// component count below one.
	ErrBadSize = errors.New("mesh: attribute size must be at least 1")
)

// ContextID identifies one renderer context. GPU-side resources for a
// geometry are cached per context, so several renderers can share a
// geometry without clobbering each other's uploads.
type ContextID = uuid.UUID

// NewContextID returns a fresh renderer-context identifier.
func NewContextID() ContextID { return uuid.New() }

// GPUHandle is a GPU-side resource set uploaded for a geometry, owned by
// an external collaborator such as the upload package. Release frees the
// device resources; it must be safe to call more than once.
type GPUHandle interface {
	Release()
}

// Geometry is a drawable model: an ordered list of owned buffers, a
// mapping from attribute names to descriptors of how to read them, and
// an optional distinguished index buffer that is always also present in
// the buffer list.
//
// Mutators return the geometry for chaining and record the first
// failure instead of panicking; check Err before handing the geometry
// to a consumer. Transforms (Interleave, Merge) refuse to run while an
// error is pending.
//
// A geometry is exclusively owned by one logical owner; it is not safe
// for concurrent mutation.
type Geometry struct {
	buffers    []*Buffer
	attributes map[string]*Attribute
	order      []string // attribute names in registration order
	index      *Buffer
	gpu        map[ContextID]GPUHandle
	err        error
	destroyed  bool
}

// NewGeometry creates an empty geometry.
func NewGeometry() *Geometry {
	return &Geometry{attributes: make(map[string]*Attribute)}
}

// Err returns the first error recorded by a mutating call, or nil.
func (g *Geometry) Err() error { return g.err }

// fail records the first error and leaves the geometry unchanged.
func (g *Geometry) fail(err error) *Geometry {
	if g.err == nil {
		g.err = err
	}
	return g
}

// AddAttribute registers a named attribute reading size components per
// vertex from src. Raw data sources are wrapped in a new owned buffer;
// an existing buffer already present in the buffer list (by identity)
// is reused rather than appended again, which keeps one bind per buffer
// and is what interleaving relies on.
//
// name may join several names with '|' (e.g. "position|uv") to register
// them all against the same buffer. Registering an existing name
// overwrites it.
//
// AddAttribute returns the geometry for chaining; a missing source or
// invalid size records an error retrievable via Err.
func (g *Geometry) AddAttribute(name string, src BufferSource, size int, opts ...AttributeOption) *Geometry {
	if g.destroyed {
		return g.fail(ErrDestroyed)
	}
	if size < 1 {
		return g.fail(fmt.Errorf("%w: %q has size %d", ErrBadSize, name, size))
	}

	buf, err := src.resolve()
	if err != nil {
		return g.fail(fmt.Errorf("%w: attribute %q", err, name))
	}

	// Multiple names share one registration.
	if strings.Contains(name, "|") {
		for _, n := range strings.Split(name, "|") {
			g.AddAttribute(n, FromBuffer(buf), size, opts...)
		}
		return g
	}

	idx := g.bufferIndex(buf)
	if idx < 0 {
		g.buffers = append(g.buffers, buf)
		idx = len(g.buffers) - 1
	}

	attr := &Attribute{BufferIndex: idx, Size: size, Type: buf.Type()}
	for _, opt := range opts {
		opt(attr)
	}

	if _, exists := g.attributes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.attributes[name] = attr
	return g
}

// AddIndex registers src as the geometry's index buffer. Raw data keeps
// the integer width of its source variant: Uint16Data yields a 16-bit
// index buffer, Uint32Data a 32-bit one. An existing buffer is flagged
// and reused; it is appended to the buffer list only if not already
// present by identity.
//
// A second AddIndex replaces the previous index buffer: the old buffer
// loses its index flag and its slot in the buffer list, so only the
// distinguished buffer ever carries the flag.
//
// AddIndex returns the geometry for chaining; float sources record an
// error retrievable via Err.
func (g *Geometry) AddIndex(src BufferSource) *Geometry {
	if g.destroyed {
		return g.fail(ErrDestroyed)
	}

	buf, err := src.resolveIndex()
	if err != nil {
		return g.fail(err)
	}

	buf.isIndex = true
	if g.index != nil && g.index != buf {
		g.index.isIndex = false
		if i := g.bufferIndex(g.index); i >= 0 && g.bufferIndex(buf) < 0 {
			g.buffers[i] = buf
			g.index = buf
			return g
		}
	}
	g.index = buf
	if g.bufferIndex(buf) < 0 {
		g.buffers = append(g.buffers, buf)
	}
	return g
}

// bufferIndex returns the position of b in the buffer list, comparing by
// object identity, or -1.
func (g *Geometry) bufferIndex(b *Buffer) int {
	for i, have := range g.buffers {
		if have == b {
			return i
		}
	}
	return -1
}

// Buffers returns the ordered buffer list. Attribute BufferIndex values
// address this slice. The slice must not be reordered by the caller.
func (g *Geometry) Buffers() []*Buffer { return g.buffers }

// Attribute returns the named attribute descriptor, or nil.
func (g *Geometry) Attribute(name string) *Attribute { return g.attributes[name] }

// AttributeNames returns the attribute names in registration order.
func (g *Geometry) AttributeNames() []string { return g.order }

// Buffer returns the buffer backing the named attribute, or nil.
func (g *Geometry) Buffer(name string) *Buffer {
	a := g.attributes[name]
	if a == nil || a.BufferIndex >= len(g.buffers) {
		return nil
	}
	return g.buffers[a.BufferIndex]
}

// Index returns the distinguished index buffer, or nil.
func (g *Geometry) Index() *Buffer { return g.index }

// IndexFormat reports the width of the index buffer elements.
// Without an index buffer it returns IndexFormatUint16, the default.
func (g *Geometry) IndexFormat() IndexFormat {
	if g.index != nil && g.index.Type() == Uint32 {
		return IndexFormatUint32
	}
	return IndexFormatUint16
}

// Size returns the vertex count described by the first registered
// attribute, or 0 for an empty geometry. Stride and Start are in the
// attribute's element units while the backing buffer may carry a
// different element type after interleaving, so the count is computed
// in bytes.
func (g *Geometry) Size() int {
	if len(g.order) == 0 {
		return 0
	}
	a := g.attributes[g.order[0]]
	buf := g.buffers[a.BufferIndex]
	bw := a.Type.ByteWidth()
	stride := a.Stride
	if stride == 0 {
		stride = a.Size
	}
	strideBytes := stride * bw
	if strideBytes == 0 {
		return 0
	}
	rem := buf.ByteLen() - a.Start*bw - a.Size*bw
	if rem < 0 {
		return 0
	}
	return rem/strideBytes + 1
}

// AttachGPU caches an uploaded resource set for a renderer context.
// A handle already cached for ctx is released first.
func (g *Geometry) AttachGPU(ctx ContextID, h GPUHandle) {
	if g.gpu == nil {
		g.gpu = make(map[ContextID]GPUHandle)
	}
	if old := g.gpu[ctx]; old != nil && old != h {
		old.Release()
	}
	g.gpu[ctx] = h
}

// GPU returns the cached resource set for a renderer context, or nil.
func (g *Geometry) GPU(ctx ContextID) GPUHandle { return g.gpu[ctx] }

// Dispose releases every cached GPU-side resource set and clears the
// cache. The geometry itself stays usable and can be re-uploaded.
func (g *Geometry) Dispose() {
	for ctx, h := range g.gpu {
		Logger().Debug("mesh: releasing GPU resources", "context", ctx)
		h.Release()
	}
	g.gpu = nil
}

// Destroy disposes all GPU-side resources, destroys every owned buffer
// including the index buffer when present, and clears the attribute
// map. The geometry must not be used afterward; a second Destroy is a
// warning no-op.
func (g *Geometry) Destroy() {
	if g.destroyed {
		Logger().Warn("mesh: Destroy on already-destroyed geometry")
		return
	}
	g.Dispose()
	for _, b := range g.buffers {
		if b != nil && !b.Destroyed() {
			b.Destroy()
		}
	}
	g.buffers = nil
	g.attributes = nil
	g.order = nil
	g.index = nil
	g.destroyed = true
}

// Destroyed reports whether Destroy has torn the geometry down.
func (g *Geometry) Destroyed() bool { return g.destroyed }

// Clone returns a deep, independent copy: buffer storage is duplicated,
// attribute descriptors are copied by value, and the index reference is
// re-resolved to the matching position in the new buffer list. Buffer
// order is preserved, so BufferIndex values carry over unchanged. The
// GPU cache and any pending error do not travel with the clone.
func (g *Geometry) Clone() *Geometry {
	c := NewGeometry()
	c.buffers = make([]*Buffer, len(g.buffers))
	for i, b := range g.buffers {
		c.buffers[i] = b.clone()
	}
	for name, a := range g.attributes {
		cp := *a
		c.attributes[name] = &cp
	}
	c.order = append([]string(nil), g.order...)
	if g.index != nil {
		if i := g.bufferIndex(g.index); i >= 0 {
			c.index = c.buffers[i]
			c.index.isIndex = true
		}
	}
	return c
}

// IndexFormat specifies the width of index buffer elements.
type IndexFormat uint32

const (
	// IndexFormatUint16 uses 16-bit unsigned integers.
	IndexFormatUint16 IndexFormat = iota

	// IndexFormatUint32 uses 32-bit unsigned integers, required once a
	// merged geometry addresses more than 65536 vertices.
	IndexFormatUint32
)

// String returns a human-readable name for the index format.
func (f IndexFormat) String() string {
	switch f {
	case IndexFormatUint16:
		return "Uint16"
	case IndexFormatUint32:
		return "Uint32"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(f))
	}
}
