//go:build windows

package dx9

import (
	"fmt"

	"github.com/BellumGames/MultiMediaLab/glm"
	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/gonutz/d3d9"
)

// Device forwards all calls to a Direct3D 9 device.
type Device struct {
	device *d3d9.Device
}

var _ pulse.Device = (*Device)(nil)

func (d *Device) SetRenderState(state pulse.RenderState, value uint32) error {
	switch state {
	case pulse.RenderStateZEnable:
		return d.device.SetRenderState(d3d9.RS_ZENABLE, value)
	case pulse.RenderStateCullMode:
		return d.device.SetRenderState(d3d9.RS_CULLMODE, value)
	case pulse.RenderStateLighting:
		return d.device.SetRenderState(d3d9.RS_LIGHTING, value)
	case pulse.RenderStateAmbient:
		return d.device.SetRenderState(d3d9.RS_AMBIENT, value)
	default:
		return fmt.Errorf("%w: render state %s", ErrUnsupported, state)
	}
}

func (d *Device) CreateVertexBuffer(length uint32, fvf pulse.FVF) (pulse.VertexBuffer, error) {
	vb, err := d.device.CreateVertexBuffer(uint(length), d3d9.USAGE_WRITEONLY, uint32(fvf), d3d9.POOL_MANAGED, 0)
	if err != nil {
		return nil, err
	}

	return &VertexBuffer{buffer: vb}, nil
}

func (d *Device) CreateIndexBuffer(length uint32, format pulse.Format) (pulse.IndexBuffer, error) {
	var ib *d3d9.IndexBuffer
	var err error

	switch format {
	case pulse.FormatIndex16:
		ib, err = d.device.CreateIndexBuffer(uint(length), d3d9.USAGE_WRITEONLY, d3d9.FMT_INDEX16, d3d9.POOL_MANAGED, 0)
	case pulse.FormatIndex32:
		ib, err = d.device.CreateIndexBuffer(uint(length), d3d9.USAGE_WRITEONLY, d3d9.FMT_INDEX32, d3d9.POOL_MANAGED, 0)
	default:
		return nil, fmt.Errorf("%w: index format %d", ErrUnsupported, format)
	}

	if err != nil {
		return nil, err
	}

	return &IndexBuffer{buffer: ib}, nil
}

func (d *Device) Clear(flags pulse.ClearFlags, color pulse.Color, z float32, stencil uint32) error {
	var clear uint32

	if flags&pulse.ClearTarget != 0 {
		clear |= d3d9.CLEAR_TARGET
	}

	if flags&pulse.ClearZBuffer != 0 {
		clear |= d3d9.CLEAR_ZBUFFER
	}

	if flags&pulse.ClearStencil != 0 {
		clear |= d3d9.CLEAR_STENCIL
	}

	return d.device.Clear(nil, clear, d3d9.COLOR(color), z, stencil)
}

func (d *Device) BeginScene() error {
	return d.device.BeginScene()
}

func (d *Device) EndScene() error {
	return d.device.EndScene()
}

func (d *Device) SetTransform(state pulse.TransformState, matrix glm.Mat4f) error {
	// glm and direct3d share the same row vector layout
	m := d3d9.MATRIX(matrix)

	switch state {
	case pulse.TransformWorld:
		return d.device.SetTransform(d3d9.TSWorldMatrix(0), m)
	case pulse.TransformView:
		return d.device.SetTransform(d3d9.TS_VIEW, m)
	case pulse.TransformProjection:
		return d.device.SetTransform(d3d9.TS_PROJECTION, m)
	default:
		return fmt.Errorf("%w: transform %s", ErrUnsupported, state)
	}
}

func (d *Device) SetStreamSource(stream uint32, buffer pulse.VertexBuffer, offset, stride uint32) error {
	var native *d3d9.VertexBuffer

	if buffer != nil {
		vb, ok := buffer.(*VertexBuffer)
		if !ok {
			return fmt.Errorf("%w: vertex buffer %T", ErrUnsupported, buffer)
		}

		native = vb.buffer
	}

	return d.device.SetStreamSource(uint(stream), native, uint(offset), uint(stride))
}

func (d *Device) SetFVF(fvf pulse.FVF) error {
	return d.device.SetFVF(uint32(fvf))
}

func (d *Device) SetIndices(buffer pulse.IndexBuffer) error {
	var native *d3d9.IndexBuffer

	if buffer != nil {
		ib, ok := buffer.(*IndexBuffer)
		if !ok {
			return fmt.Errorf("%w: index buffer %T", ErrUnsupported, buffer)
		}

		native = ib.buffer
	}

	return d.device.SetIndices(native)
}

func (d *Device) DrawIndexedPrimitive(typ pulse.PrimitiveType, baseVertex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error {
	base, first, count := int(baseVertex), uint(minIndex), uint(numVertices)
	start, primitives := uint(startIndex), uint(primitiveCount)

	switch typ {
	case pulse.PrimitiveTriangleList:
		return d.device.DrawIndexedPrimitive(d3d9.PT_TRIANGLELIST, base, first, count, start, primitives)
	case pulse.PrimitiveTriangleStrip:
		return d.device.DrawIndexedPrimitive(d3d9.PT_TRIANGLESTRIP, base, first, count, start, primitives)
	case pulse.PrimitiveTriangleFan:
		return d.device.DrawIndexedPrimitive(d3d9.PT_TRIANGLEFAN, base, first, count, start, primitives)
	default:
		return fmt.Errorf("%w: primitive type %d", ErrUnsupported, typ)
	}
}

func (d *Device) Present() error {
	return d.device.Present(nil, nil, 0, nil)
}

func (d *Device) Release() {
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
}
