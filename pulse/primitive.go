package pulse

import (
	"encoding/binary"
	"fmt"
)

// TriangleList converts primitiveCount triangles of the given topology,
// starting at indices[0], into a plain triangle list. Fans share the
// first index, strips alternate their winding so every triangle keeps
// the orientation of the first one.
func TriangleList(typ PrimitiveType, indices []uint16, primitiveCount uint32) ([]uint16, error) {
	count := int(primitiveCount)

	var required int
	switch typ {
	case PrimitiveTriangleList:
		required = 3 * count
	case PrimitiveTriangleStrip, PrimitiveTriangleFan:
		required = count + 2
	default:
		return nil, fmt.Errorf("primitive type %d is not a triangle topology", typ)
	}

	if count == 0 {
		return nil, nil
	}

	if len(indices) < required {
		return nil, fmt.Errorf("%d triangles need %d indices, got %d", count, required, len(indices))
	}

	result := make([]uint16, 0, 3*count)

	for tri := range count {
		switch typ {
		case PrimitiveTriangleList:
			result = append(result, indices[3*tri:3*tri+3]...)

		case PrimitiveTriangleStrip:
			if tri%2 == 0 {
				result = append(result, indices[tri], indices[tri+1], indices[tri+2])
			} else {
				result = append(result, indices[tri+1], indices[tri], indices[tri+2])
			}

		case PrimitiveTriangleFan:
			result = append(result, indices[0], indices[tri+1], indices[tri+2])
		}
	}

	return result, nil
}

// DecodeIndices16 decodes the content of a FormatIndex16 index buffer.
// A trailing odd byte is ignored.
func DecodeIndices16(data []byte) []uint16 {
	indices := make([]uint16, len(data)/2)
	for idx := range indices {
		indices[idx] = binary.NativeEndian.Uint16(data[2*idx:])
	}

	return indices
}
