package pulse

import (
	"slices"
	"testing"
)

func TestTriangleList(t *testing.T) {
	tests := []struct {
		name    string
		typ     PrimitiveType
		indices []uint16
		count   uint32
		want    []uint16
		wantErr bool
	}{
		{
			name:    "quad fan",
			typ:     PrimitiveTriangleFan,
			indices: QuadIndices[:],
			count:   QuadPrimitiveCount,
			want:    []uint16{0, 1, 2, 0, 2, 3},
		},
		{
			name:    "strip alternates winding",
			typ:     PrimitiveTriangleStrip,
			indices: []uint16{0, 1, 2, 3},
			count:   2,
			want:    []uint16{0, 1, 2, 2, 1, 3},
		},
		{
			name:    "list",
			typ:     PrimitiveTriangleList,
			indices: []uint16{4, 5, 6, 7, 8, 9},
			count:   2,
			want:    []uint16{4, 5, 6, 7, 8, 9},
		},
		{
			name:    "no primitives",
			typ:     PrimitiveTriangleFan,
			indices: QuadIndices[:],
			count:   0,
		},
		{
			name:    "too few indices",
			typ:     PrimitiveTriangleFan,
			indices: []uint16{0, 1, 2},
			count:   2,
			wantErr: true,
		},
		{
			name:    "lines",
			typ:     PrimitiveLineList,
			indices: []uint16{0, 1},
			count:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TriangleList(tt.typ, tt.indices, tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TriangleList() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("TriangleList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeIndices16(t *testing.T) {
	data := AsByteSlice(&QuadIndices)

	if got := DecodeIndices16(data); !slices.Equal(got, QuadIndices[:]) {
		t.Errorf("DecodeIndices16() = %v, want %v", got, QuadIndices)
	}

	if got := DecodeIndices16(data[:3]); !slices.Equal(got, QuadIndices[:1]) {
		t.Errorf("DecodeIndices16() of odd length = %v, want %v", got, QuadIndices[:1])
	}
}
