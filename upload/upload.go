package upload

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mesh"
)

// Upload errors.
var (
	// ErrNilDevice is returned when uploading without a device.
	ErrNilDevice = errors.New("upload: device is nil")

	// ErrNilQueue is returned when uploading without a queue.
	ErrNilQueue = errors.New("upload: queue is nil")

	// ErrEmptyGeometry is returned when a geometry has no buffers to
	// upload.
	ErrEmptyGeometry = errors.New("upload: geometry has no buffers")
)

// Device is the subset of hal.Device the uploader needs.
type Device interface {
	CreateBuffer(*hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(hal.Buffer)
}

// Queue is the subset of hal.Queue the uploader needs.
type Queue interface {
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte)
}

// Handle is the device-side mirror of one geometry for one renderer
// context: one wgpu buffer per mesh buffer, in buffer-list order. It
// implements mesh.GPUHandle so geometries can release it on Dispose
// and Destroy.
type Handle struct {
	device   Device
	buffers  []hal.Buffer
	released bool
}

// Buffers returns the device buffers in geometry buffer-list order.
// The caller binds them by attribute BufferIndex.
func (h *Handle) Buffers() []hal.Buffer { return h.buffers }

// Release destroys the device buffers. Safe to call more than once.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	for _, b := range h.buffers {
		if b != nil {
			h.device.DestroyBuffer(b)
		}
	}
	h.buffers = nil
}

// Upload creates a device buffer for every buffer of g, writes the
// geometry's bytes into them, and caches the resulting Handle on the
// geometry under ctx. A handle already cached for ctx is returned
// as-is, so repeated uploads for the same renderer context are free.
//
// Vertex buffers are created with vertex|copy-dst usage, the index
// buffer with index|copy-dst.
func Upload(device Device, queue Queue, ctx mesh.ContextID, g *mesh.Geometry) (*Handle, error) {
	if g == nil {
		return nil, ErrNilGeometry
	}
	if err := g.Err(); err != nil {
		return nil, fmt.Errorf("upload: geometry has a pending error: %w", err)
	}
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if len(g.Buffers()) == 0 {
		return nil, ErrEmptyGeometry
	}

	if cached, ok := g.GPU(ctx).(*Handle); ok && cached != nil {
		return cached, nil
	}

	h := &Handle{device: device}
	for i, b := range g.Buffers() {
		usage := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
		label := fmt.Sprintf("mesh-vertex-%d", i)
		if b.IsIndex() {
			usage = gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
			label = "mesh-index"
		}

		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  uint64(b.ByteLen()),
			Usage: usage,
		})
		if err != nil {
			h.Release()
			return nil, fmt.Errorf("upload: create %s: %w", label, err)
		}
		h.buffers = append(h.buffers, buf)
		queue.WriteBuffer(buf, 0, b.Bytes())

		mesh.Logger().Debug("upload: wrote buffer",
			"label", label, "bytes", b.ByteLen(), "type", b.Type())
	}

	g.AttachGPU(ctx, h)
	return h, nil
}
