package soft

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/BellumGames/MultiMediaLab/glm"
	"github.com/BellumGames/MultiMediaLab/pulse"
	"golang.org/x/image/bmp"
)

// Device rasterizes into an in-memory back buffer. Present copies the
// back buffer to the front buffer, which can be read with Frontbuffer.
type Device struct {
	typ pulse.DeviceType

	width, height int

	back  *image.RGBA
	front *image.RGBA

	// nil without a depth buffer
	depth []float32

	renderStates map[pulse.RenderState]uint32
	transforms   map[pulse.TransformState]glm.Mat4f

	stream       *Buffer
	streamOffset uint32
	stride       uint32
	fvf          pulse.FVF
	indices      *Buffer

	inScene  bool
	presents int
	released bool
}

var _ pulse.Device = (*Device)(nil)

func newDevice(typ pulse.DeviceType, width, height int, withDepth bool) *Device {
	dev := &Device{
		typ:    typ,
		width:  width,
		height: height,
		back:   image.NewRGBA(image.Rect(0, 0, width, height)),
		front:  image.NewRGBA(image.Rect(0, 0, width, height)),

		renderStates: map[pulse.RenderState]uint32{
			pulse.RenderStateZEnable:  0,
			pulse.RenderStateCullMode: pulse.CullCCW,
			pulse.RenderStateLighting: 1,
			pulse.RenderStateAmbient:  0,
		},

		transforms: map[pulse.TransformState]glm.Mat4f{
			pulse.TransformWorld:      glm.IdentityMat4[float32](),
			pulse.TransformView:       glm.IdentityMat4[float32](),
			pulse.TransformProjection: glm.IdentityMat4[float32](),
		},
	}

	if withDepth {
		dev.depth = make([]float32, width*height)
		dev.renderStates[pulse.RenderStateZEnable] = 1
	}

	return dev
}

// Type returns the device type this device was created with.
func (d *Device) Type() pulse.DeviceType {
	return d.typ
}

// RenderState returns the current value of a render state.
func (d *Device) RenderState(state pulse.RenderState) uint32 {
	return d.renderStates[state]
}

func (d *Device) SetRenderState(state pulse.RenderState, value uint32) error {
	if d.released {
		return ErrReleased
	}

	if _, ok := d.renderStates[state]; !ok {
		return fmt.Errorf("%w: render state %s", ErrInvalidCall, state)
	}

	if state == pulse.RenderStateCullMode && (value < pulse.CullNone || value > pulse.CullCCW) {
		return fmt.Errorf("%w: cull mode %d", ErrInvalidCall, value)
	}

	d.renderStates[state] = value
	return nil
}

func (d *Device) CreateVertexBuffer(length uint32, fvf pulse.FVF) (pulse.VertexBuffer, error) {
	if d.released {
		return nil, ErrReleased
	}

	if length == 0 {
		return nil, fmt.Errorf("%w: empty vertex buffer", ErrInvalidCall)
	}

	return &Buffer{kind: vertexBuffer, fvf: fvf, data: make([]byte, length)}, nil
}

func (d *Device) CreateIndexBuffer(length uint32, format pulse.Format) (pulse.IndexBuffer, error) {
	if d.released {
		return nil, ErrReleased
	}

	if format != pulse.FormatIndex16 && format != pulse.FormatIndex32 {
		return nil, fmt.Errorf("%w: index format %d", ErrInvalidCall, format)
	}

	if length == 0 {
		return nil, fmt.Errorf("%w: empty index buffer", ErrInvalidCall)
	}

	return &Buffer{kind: indexBuffer, format: format, data: make([]byte, length)}, nil
}

func (d *Device) Clear(flags pulse.ClearFlags, c pulse.Color, z float32, stencil uint32) error {
	if d.released {
		return ErrReleased
	}

	if flags&pulse.ClearStencil != 0 {
		return fmt.Errorf("%w: depth buffer has no stencil", ErrInvalidCall)
	}

	if flags&pulse.ClearZBuffer != 0 && d.depth == nil {
		return fmt.Errorf("%w: device has no depth buffer", ErrInvalidCall)
	}

	if flags&pulse.ClearTarget != 0 {
		px := opaque(c)

		pix := d.back.Pix
		for idx := 0; idx < len(pix); idx += 4 {
			pix[idx+0] = px.R
			pix[idx+1] = px.G
			pix[idx+2] = px.B
			pix[idx+3] = px.A
		}
	}

	if flags&pulse.ClearZBuffer != 0 {
		for idx := range d.depth {
			d.depth[idx] = z
		}
	}

	return nil
}

func (d *Device) BeginScene() error {
	if d.released {
		return ErrReleased
	}

	if d.inScene {
		return fmt.Errorf("%w: scene already started", ErrInvalidCall)
	}

	d.inScene = true
	return nil
}

func (d *Device) EndScene() error {
	if d.released {
		return ErrReleased
	}

	if !d.inScene {
		return fmt.Errorf("%w: no scene started", ErrInvalidCall)
	}

	d.inScene = false
	return nil
}

func (d *Device) SetTransform(state pulse.TransformState, matrix glm.Mat4f) error {
	if d.released {
		return ErrReleased
	}

	if _, ok := d.transforms[state]; !ok {
		return fmt.Errorf("%w: transform %s", ErrInvalidCall, state)
	}

	d.transforms[state] = matrix
	return nil
}

func (d *Device) SetStreamSource(stream uint32, buffer pulse.VertexBuffer, offset, stride uint32) error {
	if d.released {
		return ErrReleased
	}

	if stream != 0 {
		return fmt.Errorf("%w: only stream 0 is supported", ErrInvalidCall)
	}

	if buffer == nil {
		d.stream = nil
		return nil
	}

	buf, ok := buffer.(*Buffer)
	if !ok || buf.kind != vertexBuffer {
		return fmt.Errorf("%w: not a vertex buffer of this device", ErrInvalidCall)
	}

	d.stream = buf
	d.streamOffset = offset
	d.stride = stride

	return nil
}

func (d *Device) SetFVF(fvf pulse.FVF) error {
	if d.released {
		return ErrReleased
	}

	if fvf&^(pulse.FVFXYZ|pulse.FVFDiffuse) != 0 || fvf&pulse.FVFXYZ == 0 {
		return fmt.Errorf("%w: vertex format %#x is not supported", ErrInvalidCall, uint32(fvf))
	}

	d.fvf = fvf
	return nil
}

func (d *Device) SetIndices(buffer pulse.IndexBuffer) error {
	if d.released {
		return ErrReleased
	}

	if buffer == nil {
		d.indices = nil
		return nil
	}

	buf, ok := buffer.(*Buffer)
	if !ok || buf.kind != indexBuffer {
		return fmt.Errorf("%w: not an index buffer of this device", ErrInvalidCall)
	}

	d.indices = buf
	return nil
}

func (d *Device) Present() error {
	if d.released {
		return ErrReleased
	}

	copy(d.front.Pix, d.back.Pix)
	d.presents++

	return nil
}

// Presents returns how often Present was called successfully.
func (d *Device) Presents() int {
	return d.presents
}

// Frontbuffer returns the image shown by the last Present call.
// The image must not be modified.
func (d *Device) Frontbuffer() *image.RGBA {
	return d.front
}

// WriteBMP encodes the front buffer as a BMP image.
func (d *Device) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, d.front)
}

func (d *Device) Release() {
	d.released = true
	d.stream = nil
	d.indices = nil
}

func opaque(c pulse.Color) color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}
