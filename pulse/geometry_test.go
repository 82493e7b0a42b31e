package pulse

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"
)

func newTestContext(t *testing.T, rec *recorder) (*Context, *fakeDevice) {
	t.Helper()

	factory := &fakeFactory{rec: rec}

	ctx, err := New(factory, fakeWindow{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	return ctx, factory.device
}

func TestVertexLayout(t *testing.T) {
	if VertexStride != 16 {
		t.Errorf("VertexStride = %d, want 16", VertexStride)
	}

	if QuadPrimitiveCount != 2 {
		t.Errorf("QuadPrimitiveCount = %d, want 2", QuadPrimitiveCount)
	}
}

func TestNewGeometry_UploadsQuad(t *testing.T) {
	rec := newRecorder()
	ctx, dev := newTestContext(t, rec)
	rec.reset()

	geo, err := NewGeometry(ctx.Device())
	if err != nil {
		t.Fatalf("NewGeometry() failed: %v", err)
	}

	want := []string{
		"CreateVertexBuffer",
		"CreateIndexBuffer",
		"Lock(vb)", "Unlock(vb)",
		"Lock(ib)", "Unlock(ib)",
	}

	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	if dev.vertexFVF != FVFXYZ|FVFDiffuse {
		t.Errorf("vertex FVF = %#x, want XYZ|DIFFUSE", dev.vertexFVF)
	}

	if dev.indexFormat != FormatIndex16 {
		t.Errorf("index format = %d, want %d", dev.indexFormat, FormatIndex16)
	}

	vb := dev.vertexBuffer.data
	if len(vb) != 4*16 {
		t.Fatalf("vertex buffer size = %d, want 64", len(vb))
	}

	if !bytes.Equal(vb, AsByteSlice(&QuadVertices)) {
		t.Errorf("vertex buffer content does not match quad vertices")
	}

	// position x of the third vertex and color of the first vertex
	if got := binary.NativeEndian.Uint32(vb[32:]); got != 0x3f800000 {
		t.Errorf("vertex[2].x bits = %#x, want 1.0", got)
	}

	if got := binary.NativeEndian.Uint32(vb[12:]); got != 0xffffff00 {
		t.Errorf("vertex[0].color = %#x, want 0xffffff00", got)
	}

	ib := dev.indexBuffer.data
	if len(ib) != 8 {
		t.Fatalf("index buffer size = %d, want 8", len(ib))
	}

	for idx := range 4 {
		if got := binary.NativeEndian.Uint16(ib[2*idx:]); got != uint16(idx) {
			t.Errorf("index[%d] = %d, want %d", idx, got, idx)
		}
	}

	if geo.VertexCount() != 4 || geo.PrimitiveCount() != 2 {
		t.Errorf("counts = (%d, %d), want (4, 2)", geo.VertexCount(), geo.PrimitiveCount())
	}
}

func TestNewGeometry_Failures(t *testing.T) {
	tests := []struct {
		name    string
		failing string
		wantErr error
		// calls recorded after the failing call
		cleanup []string
	}{
		{
			name:    "vertex buffer allocation",
			failing: "CreateVertexBuffer",
			wantErr: ErrResourceAllocationFailed,
		},
		{
			name:    "index buffer allocation",
			failing: "CreateIndexBuffer",
			wantErr: ErrResourceAllocationFailed,
			cleanup: []string{"Release(vb)"},
		},
		{
			name:    "vertex buffer lock",
			failing: "Lock(vb)",
			wantErr: ErrBufferLockFailed,
			cleanup: []string{"Release(ib)", "Release(vb)"},
		},
		{
			name:    "index buffer lock",
			failing: "Lock(ib)",
			wantErr: ErrBufferLockFailed,
			cleanup: []string{"Release(ib)", "Release(vb)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(tt.failing)
			ctx, _ := newTestContext(t, rec)

			geo, err := NewGeometry(ctx.Device())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewGeometry() error = %v, want %v", err, tt.wantErr)
			}

			if geo != nil {
				t.Errorf("NewGeometry() returned geometry on failure")
			}

			failedAt := slices.Index(rec.calls, tt.failing)
			if got := rec.calls[failedAt+1:]; !slices.Equal(got, tt.cleanup) {
				t.Errorf("calls after failure = %v, want %v", got, tt.cleanup)
			}
		})
	}
}

func TestTeardownOrder(t *testing.T) {
	rec := newRecorder()
	ctx, _ := newTestContext(t, rec)

	geo, err := NewGeometry(ctx.Device())
	if err != nil {
		t.Fatalf("NewGeometry() failed: %v", err)
	}

	rec.reset()

	for range 2 {
		geo.Release()
		ctx.Release()
	}

	want := []string{"Release(ib)", "Release(vb)", "Release(device)", "Release(factory)"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	// releasing a nil geometry is a no-op too
	var nilGeometry *Geometry
	nilGeometry.Release()
}
