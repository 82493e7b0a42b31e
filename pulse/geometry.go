package pulse

import (
	"fmt"
	"structs"
	"unsafe"

	"github.com/BellumGames/MultiMediaLab/glm"
)

// Vertex is a position with a diffuse color, matching VertexFVF.
type Vertex struct {
	_ structs.HostLayout

	Position glm.Vec3f
	Color    Color
}

const VertexFVF = FVFXYZ | FVFDiffuse

// VertexStride is the size of one Vertex in a vertex buffer.
const VertexStride = uint32(unsafe.Sizeof(Vertex{}))

// QuadVertices are the corners of the quad in the z=0 plane.
var QuadVertices = [4]Vertex{
	{Position: glm.Vec3f{-1, -1, 0}, Color: ColorYellow},
	{Position: glm.Vec3f{1, -1, 0}, Color: ColorYellow},
	{Position: glm.Vec3f{1, 1, 0}, Color: ColorYellow},
	{Position: glm.Vec3f{-1, 1, 0}, Color: ColorYellow},
}

// QuadIndices describe the quad as a triangle fan.
var QuadIndices = [4]uint16{0, 1, 2, 3}

// QuadPrimitiveCount is the number of triangles in the quad fan.
const QuadPrimitiveCount = uint32(len(QuadIndices) - 2)

const indexSize = uint32(unsafe.Sizeof(uint16(0)))

// Geometry owns the vertex and index buffer of the quad. The buffers
// are written once in NewGeometry and never changed afterwards.
type Geometry struct {
	vertices VertexBuffer
	indices  IndexBuffer
}

// NewGeometry allocates both buffers and uploads the quad. On failure
// all buffers allocated so far are released again.
func NewGeometry(dev Device) (*Geometry, error) {
	vertices, err := dev.CreateVertexBuffer(uint32(len(QuadVertices))*VertexStride, VertexFVF)
	if err != nil {
		return nil, fmt.Errorf("%w: create vertex buffer: %w", ErrResourceAllocationFailed, err)
	}

	vertexGuard := NewReleaseGuard(vertices)
	defer vertexGuard.Release()

	indices, err := dev.CreateIndexBuffer(uint32(len(QuadIndices))*indexSize, FormatIndex16)
	if err != nil {
		return nil, fmt.Errorf("%w: create index buffer: %w", ErrResourceAllocationFailed, err)
	}

	indexGuard := NewReleaseGuard(indices)
	defer indexGuard.Release()

	if err := upload(vertices, AsByteSlice(&QuadVertices)); err != nil {
		return nil, fmt.Errorf("upload vertices: %w", err)
	}

	if err := upload(indices, AsByteSlice(&QuadIndices)); err != nil {
		return nil, fmt.Errorf("upload indices: %w", err)
	}

	indexGuard.Keep()
	vertexGuard.Keep()

	return &Geometry{vertices: vertices, indices: indices}, nil
}

// upload copies data into the buffer while it is exclusively locked.
func upload(buffer Buffer, data []byte) error {
	mem, err := buffer.Lock(0, uint32(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBufferLockFailed, err)
	}

	copy(mem, data)

	if err := buffer.Unlock(); err != nil {
		return fmt.Errorf("%w: unlock: %w", ErrBufferLockFailed, err)
	}

	return nil
}

func (g *Geometry) Vertices() VertexBuffer {
	return g.vertices
}

func (g *Geometry) Indices() IndexBuffer {
	return g.indices
}

func (g *Geometry) VertexCount() uint32 {
	return uint32(len(QuadVertices))
}

func (g *Geometry) PrimitiveCount() uint32 {
	return QuadPrimitiveCount
}

// Release releases the index buffer and then the vertex buffer.
// Calling Release more than once is a no-op.
func (g *Geometry) Release() {
	if g == nil {
		return
	}

	if g.indices != nil {
		g.indices.Release()
		g.indices = nil
	}

	if g.vertices != nil {
		g.vertices.Release()
		g.vertices = nil
	}
}
