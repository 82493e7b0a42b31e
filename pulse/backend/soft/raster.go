package soft

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/BellumGames/MultiMediaLab/glm"
	"github.com/BellumGames/MultiMediaLab/pulse"
)

type screenVertex struct {
	pos   glm.Vec2f
	depth float32
	color glm.Vec4f
}

func (d *Device) DrawIndexedPrimitive(typ pulse.PrimitiveType, baseVertex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error {
	if d.released {
		return ErrReleased
	}

	switch {
	case !d.inScene:
		return fmt.Errorf("%w: draw outside of a scene", ErrInvalidCall)
	case d.stream == nil:
		return fmt.Errorf("%w: no vertex buffer bound", ErrInvalidCall)
	case d.indices == nil:
		return fmt.Errorf("%w: no index buffer bound", ErrInvalidCall)
	case d.fvf == 0:
		return fmt.Errorf("%w: no vertex format set", ErrInvalidCall)
	}

	if err := d.stream.usable(vertexBuffer); err != nil {
		return fmt.Errorf("vertex buffer: %w", err)
	}

	if err := d.indices.usable(indexBuffer); err != nil {
		return fmt.Errorf("index buffer: %w", err)
	}

	indices, err := d.indices.indices(startIndex)
	if err != nil {
		return err
	}

	triangles, err := pulse.TriangleList(typ, indices, primitiveCount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCall, err)
	}

	// vertices are row vectors, the world transform applies first
	mvp := d.transforms[pulse.TransformProjection].
		Mul(d.transforms[pulse.TransformView]).
		Mul(d.transforms[pulse.TransformWorld])

	for triangle := range slices.Chunk(triangles, 3) {
		var verts [3]screenVertex
		visible := true

		for idx, index := range triangle {
			if uint32(index) < minIndex || uint32(index) >= minIndex+numVertices {
				return fmt.Errorf("%w: index %d outside of [%d, %d)", ErrInvalidCall, index, minIndex, minIndex+numVertices)
			}

			vertexIndex := int64(baseVertex) + int64(index)
			if vertexIndex < 0 {
				return fmt.Errorf("%w: negative vertex index %d", ErrInvalidCall, vertexIndex)
			}

			vert, inFront, err := d.processVertex(mvp, uint32(vertexIndex))
			if err != nil {
				return err
			}

			verts[idx] = vert
			visible = visible && inFront
		}

		// no clipping, triangles crossing the camera plane are skipped
		if visible {
			d.rasterize(verts)
		}
	}

	return nil
}

// processVertex fetches a vertex from the stream and maps it into screen space.
func (d *Device) processVertex(mvp glm.Mat4f, index uint32) (screenVertex, bool, error) {
	position, c, err := d.fetchVertex(index)
	if err != nil {
		return screenVertex{}, false, err
	}

	if d.renderStates[pulse.RenderStateLighting] != 0 {
		// no lights and no material, lit vertices end up black
		c = pulse.ColorBlack
	}

	clip := mvp.Transform(position.Extend(1))
	if clip[3] <= 0 {
		return screenVertex{}, false, nil
	}

	x, y, z, _ := clip.MulScalar(1 / clip[3]).XYZW()

	vert := screenVertex{
		pos: glm.Vec2f{
			(x + 1) * 0.5 * float32(d.width),
			(1 - y) * 0.5 * float32(d.height),
		},
		depth: z,
		color: glm.Vec4f{
			float32(c.Red()),
			float32(c.Green()),
			float32(c.Blue()),
			float32(c.Alpha()),
		},
	}

	return vert, true, nil
}

func (d *Device) fetchVertex(index uint32) (glm.Vec3f, pulse.Color, error) {
	size := uint64(12)
	if d.fvf&pulse.FVFDiffuse != 0 {
		size += 4
	}

	data := d.stream.data

	offset := uint64(d.streamOffset) + uint64(index)*uint64(d.stride)
	if offset+size > uint64(len(data)) {
		return glm.Vec3f{}, 0, fmt.Errorf("%w: vertex %d is outside of the vertex buffer", ErrInvalidCall, index)
	}

	vertex := data[offset : offset+size]

	position := glm.Vec3f{
		math.Float32frombits(binary.NativeEndian.Uint32(vertex[0:])),
		math.Float32frombits(binary.NativeEndian.Uint32(vertex[4:])),
		math.Float32frombits(binary.NativeEndian.Uint32(vertex[8:])),
	}

	c := pulse.ColorWhite
	if d.fvf&pulse.FVFDiffuse != 0 {
		c = pulse.Color(binary.NativeEndian.Uint32(vertex[12:]))
	}

	return position, c, nil
}

// edge is positive if p lies right of the line from a to b, as seen
// on screen with y pointing down.
func edge(a, b, p glm.Vec2f) float32 {
	abX, abY := b.Sub(a).XY()
	apX, apY := p.Sub(a).XY()
	return abX*apY - abY*apX
}

func (d *Device) culled(area float32) bool {
	switch d.renderStates[pulse.RenderStateCullMode] {
	case pulse.CullCW:
		return area > 0
	case pulse.CullCCW:
		return area < 0
	default:
		return false
	}
}

// rasterize fills all pixels whose center lies inside the triangle,
// interpolating depth and color.
func (d *Device) rasterize(verts [3]screenVertex) {
	area := edge(verts[0].pos, verts[1].pos, verts[2].pos)
	if area == 0 || d.culled(area) {
		return
	}

	minX, maxX := verts[0].pos[0], verts[0].pos[0]
	minY, maxY := verts[0].pos[1], verts[0].pos[1]
	for _, vert := range verts[1:] {
		minX, maxX = min(minX, vert.pos[0]), max(maxX, vert.pos[0])
		minY, maxY = min(minY, vert.pos[1]), max(maxY, vert.pos[1])
	}

	x0 := max(0, int(math.Floor(float64(minX))))
	y0 := max(0, int(math.Floor(float64(minY))))
	x1 := min(d.width-1, int(math.Ceil(float64(maxX))))
	y1 := min(d.height-1, int(math.Ceil(float64(maxY))))

	depthTest := d.depth != nil && d.renderStates[pulse.RenderStateZEnable] != 0

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := glm.Vec2f{float32(x) + 0.5, float32(y) + 0.5}

			w0 := edge(verts[1].pos, verts[2].pos, p) / area
			w1 := edge(verts[2].pos, verts[0].pos, p) / area
			w2 := edge(verts[0].pos, verts[1].pos, p) / area

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*verts[0].depth + w1*verts[1].depth + w2*verts[2].depth
			if z < 0 || z > 1 {
				continue
			}

			offset := y*d.width + x
			if depthTest {
				if z > d.depth[offset] {
					continue
				}

				d.depth[offset] = z
			}

			var c [4]float32
			for ch := range c {
				c[ch] = w0*verts[0].color[ch] + w1*verts[1].color[ch] + w2*verts[2].color[ch]
			}

			// the back buffer has no alpha channel
			pix := d.back.Pix[offset*4 : offset*4+4 : offset*4+4]
			pix[0] = channel(c[0])
			pix[1] = channel(c[1])
			pix[2] = channel(c[2])
			pix[3] = 0xff
		}
	}
}

func channel(value float32) uint8 {
	return uint8(min(255, max(0, value+0.5)))
}
