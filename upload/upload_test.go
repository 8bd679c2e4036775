package upload

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mesh"
)

// mockBuffer is a test double for hal.Buffer.
type mockBuffer struct {
	label string
	size  uint64
	usage gputypes.BufferUsage
	data  []byte
}

func (b *mockBuffer) Destroy() {}

func (b *mockBuffer) NativeHandle() uintptr { return 0 }

// mockDevice records created buffers and can be told to fail the n-th
// CreateBuffer call.
type mockDevice struct {
	failOn    int // 1-based call number to fail on, 0 = never
	created   []*mockBuffer
	destroyed int
}

func (d *mockDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if d.failOn > 0 && len(d.created)+1 == d.failOn {
		return nil, errors.New("out of device memory")
	}
	b := &mockBuffer{label: desc.Label, size: desc.Size, usage: desc.Usage}
	d.created = append(d.created, b)
	return b, nil
}

func (d *mockDevice) DestroyBuffer(hal.Buffer) { d.destroyed++ }

type mockQueue struct{}

func (mockQueue) WriteBuffer(buf hal.Buffer, _ uint64, data []byte) {
	b := buf.(*mockBuffer)
	b.data = append(b.data[:0], data...)
}

func TestUploadCreatesBuffers(t *testing.T) {
	device := &mockDevice{}
	g := mesh.NewQuad(100, 100)

	h, err := Upload(device, mockQueue{}, mesh.NewContextID(), g)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(device.created) != 3 {
		t.Fatalf("created %d buffers, want position+uv+index", len(device.created))
	}
	if len(h.Buffers()) != 3 {
		t.Fatalf("handle holds %d buffers, want 3", len(h.Buffers()))
	}

	vertexUsage := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	indexUsage := gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	for i, b := range device.created {
		src := g.Buffers()[i]
		wantUsage, wantLabel := vertexUsage, ""
		if src.IsIndex() {
			wantUsage, wantLabel = indexUsage, "mesh-index"
		}
		if b.usage != wantUsage {
			t.Errorf("buffer %d usage = %v, want %v", i, b.usage, wantUsage)
		}
		if wantLabel != "" && b.label != wantLabel {
			t.Errorf("buffer %d label = %q, want %q", i, b.label, wantLabel)
		}
		if b.size != uint64(src.ByteLen()) {
			t.Errorf("buffer %d size = %d, want %d", i, b.size, src.ByteLen())
		}
		if !bytes.Equal(b.data, src.Bytes()) {
			t.Errorf("buffer %d: written bytes differ from the geometry's", i)
		}
	}
}

func TestUploadCachesPerContext(t *testing.T) {
	device := &mockDevice{}
	g := mesh.NewQuad(100, 100)
	ctx := mesh.NewContextID()

	h1, err := Upload(device, mockQueue{}, ctx, g)
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	created := len(device.created)

	// Same context: the cached handle comes back, nothing is created.
	h2, err := Upload(device, mockQueue{}, ctx, g)
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if h2 != h1 {
		t.Error("second Upload for the same context should return the cached handle")
	}
	if len(device.created) != created {
		t.Errorf("second Upload created %d extra buffers", len(device.created)-created)
	}

	// A different context uploads again.
	h3, err := Upload(device, mockQueue{}, mesh.NewContextID(), g)
	if err != nil {
		t.Fatalf("Upload for second context: %v", err)
	}
	if h3 == h1 {
		t.Error("distinct contexts should get distinct handles")
	}
	if len(device.created) != 2*created {
		t.Errorf("created %d buffers total, want %d", len(device.created), 2*created)
	}
}

func TestUploadCreateErrorReleases(t *testing.T) {
	device := &mockDevice{failOn: 2}
	g := mesh.NewQuad(100, 100)
	ctx := mesh.NewContextID()

	_, err := Upload(device, mockQueue{}, ctx, g)
	if err == nil {
		t.Fatal("Upload should surface the device error")
	}
	// The buffer created before the failure is destroyed again.
	if device.destroyed != 1 {
		t.Errorf("destroyed %d buffers, want 1", device.destroyed)
	}
	if g.GPU(ctx) != nil {
		t.Error("failed upload must not leave a handle cached")
	}
}

func TestUploadDisposeReleases(t *testing.T) {
	device := &mockDevice{}
	g := mesh.NewQuad(100, 100)

	h, err := Upload(device, mockQueue{}, mesh.NewContextID(), g)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	g.Dispose()
	if device.destroyed != len(device.created) {
		t.Errorf("Dispose destroyed %d of %d buffers", device.destroyed, len(device.created))
	}
	if h.Buffers() != nil {
		t.Error("handle buffers should be nil after Dispose")
	}

	// Release through Dispose already happened; a direct second Release
	// must not double-destroy.
	h.Release()
	if device.destroyed != len(device.created) {
		t.Error("Release after Dispose should be a no-op")
	}
}

func TestUploadEmptyGeometry(t *testing.T) {
	device := &mockDevice{}
	_, err := Upload(device, mockQueue{}, mesh.NewContextID(), mesh.NewGeometry())
	if !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("err = %v, want ErrEmptyGeometry", err)
	}
}

func TestUploadNilQueue(t *testing.T) {
	device := &mockDevice{}
	g := mesh.NewQuad(10, 10)
	_, err := Upload(device, nil, mesh.NewContextID(), g)
	if !errors.Is(err, ErrNilQueue) {
		t.Errorf("err = %v, want ErrNilQueue", err)
	}
}
