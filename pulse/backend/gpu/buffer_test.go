package gpu

import (
	"testing"
	"unsafe"

	"github.com/BellumGames/MultiMediaLab/pulse"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		value, want uint32
	}{
		{0, 0},
		{1, 4},
		{4, 4},
		{6, 8},
		{64, 64},
	}

	for _, tt := range tests {
		if got := alignUp(tt.value); got != tt.want {
			t.Errorf("alignUp(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestUniformsLayout(t *testing.T) {
	// mat4x4<f32> followed by an u32, padded to the 16 byte struct alignment
	if size := unsafe.Sizeof(uniforms{}); size != 80 {
		t.Errorf("uniforms are %d bytes, want 80", size)
	}
}

func newIndexBuffer(t *testing.T, length uint32) *Buffer {
	t.Helper()

	dev := &Device{}

	buf, err := dev.CreateIndexBuffer(length, pulse.FormatIndex16)
	if err != nil {
		t.Fatalf("CreateIndexBuffer() failed: %v", err)
	}

	return buf.(*Buffer)
}

func TestIndexBuffer_Lock(t *testing.T) {
	buf := newIndexBuffer(t, 6)

	if len(buf.data) != 8 {
		t.Errorf("shadow copy is %d bytes, want 8", len(buf.data))
	}

	mem, err := buf.Lock(0, 0)
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}

	if len(mem) != 6 {
		t.Errorf("locked %d bytes, want 6", len(mem))
	}

	copy(mem, []byte{1, 0, 2, 0, 3, 0})

	if _, err := buf.Lock(0, 2); err == nil {
		t.Errorf("second Lock() succeeded")
	}

	if err := buf.usable(); err == nil {
		t.Errorf("locked buffer is usable")
	}

	if err := buf.Unlock(); err != nil {
		t.Fatalf("Unlock() failed: %v", err)
	}

	if err := buf.usable(); err != nil {
		t.Errorf("unlocked buffer is not usable: %v", err)
	}

	if got := pulse.DecodeIndices16(buf.data[:buf.length]); len(got) != 3 || got[2] != 3 {
		t.Errorf("buffer content = %v", got)
	}

	if _, err := buf.Lock(4, 4); err == nil {
		t.Errorf("Lock() beyond the end succeeded")
	}

	buf.Release()

	if _, err := buf.Lock(0, 0); err == nil {
		t.Errorf("Lock() after Release succeeded")
	}
}

func TestCreateIndexBuffer_Index32(t *testing.T) {
	dev := &Device{}

	if _, err := dev.CreateIndexBuffer(16, pulse.FormatIndex32); err == nil {
		t.Errorf("CreateIndexBuffer() with 32 bit indices succeeded")
	}
}
