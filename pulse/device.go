package pulse

import (
	"fmt"

	"github.com/BellumGames/MultiMediaLab/glm"
)

// DeviceType selects the rasterization device a Direct3D factory creates.
type DeviceType uint32

const (
	// DeviceTypeHAL is the hardware accelerated device.
	DeviceTypeHAL DeviceType = 1

	// DeviceTypeREF is the reference rasterizer. It is slow but supports
	// every feature and is the fallback if no hardware device is available.
	DeviceTypeREF DeviceType = 2
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeHAL:
		return "HAL"
	case DeviceTypeREF:
		return "REF"
	default:
		return fmt.Sprintf("DeviceType(%d)", uint32(t))
	}
}

type CreateFlags uint32

const CreateSoftwareVertexProcessing CreateFlags = 0x00000020

type RenderState uint32

const (
	RenderStateZEnable  RenderState = 7
	RenderStateCullMode RenderState = 22
	RenderStateLighting RenderState = 137
	RenderStateAmbient  RenderState = 139
)

func (s RenderState) String() string {
	switch s {
	case RenderStateZEnable:
		return "ZEnable"
	case RenderStateCullMode:
		return "CullMode"
	case RenderStateLighting:
		return "Lighting"
	case RenderStateAmbient:
		return "Ambient"
	default:
		return fmt.Sprintf("RenderState(%d)", uint32(s))
	}
}

// Values for RenderStateCullMode
const (
	CullNone uint32 = 1
	CullCW   uint32 = 2
	CullCCW  uint32 = 3
)

type TransformState uint32

const (
	TransformView       TransformState = 2
	TransformProjection TransformState = 3
	TransformWorld      TransformState = 256
)

func (s TransformState) String() string {
	switch s {
	case TransformView:
		return "View"
	case TransformProjection:
		return "Projection"
	case TransformWorld:
		return "World"
	default:
		return fmt.Sprintf("TransformState(%d)", uint32(s))
	}
}

type PrimitiveType uint32

const (
	PrimitivePointList     PrimitiveType = 1
	PrimitiveLineList      PrimitiveType = 2
	PrimitiveLineStrip     PrimitiveType = 3
	PrimitiveTriangleList  PrimitiveType = 4
	PrimitiveTriangleStrip PrimitiveType = 5
	PrimitiveTriangleFan   PrimitiveType = 6
)

// FVF describes the layout of a vertex ("flexible vertex format").
type FVF uint32

const (
	FVFXYZ     FVF = 0x002
	FVFDiffuse FVF = 0x040
)

type Format uint32

const (
	FormatUnknown Format = 0
	FormatD16     Format = 80
	FormatIndex16 Format = 101
	FormatIndex32 Format = 102
)

type ClearFlags uint32

const (
	ClearTarget  ClearFlags = 0x1
	ClearZBuffer ClearFlags = 0x2
	ClearStencil ClearFlags = 0x4
)

type SwapEffect uint32

const SwapEffectDiscard SwapEffect = 1

// PresentParameters describes the swap chain of a device.
type PresentParameters struct {
	Windowed               bool
	SwapEffect             SwapEffect
	BackBufferFormat       Format
	EnableAutoDepthStencil bool
	AutoDepthStencilFormat Format
}

// DefaultPresentParameters returns a windowed swap chain in the native
// display format with a 16 bit depth buffer.
func DefaultPresentParameters() PresentParameters {
	return PresentParameters{
		Windowed:               true,
		SwapEffect:             SwapEffectDiscard,
		BackBufferFormat:       FormatUnknown,
		EnableAutoDepthStencil: true,
		AutoDepthStencilFormat: FormatD16,
	}
}

// Window is the surface a device presents to. Backends type assert
// the window for the native handle they need.
type Window interface {
	Size() (width, height uint32)
}

// Direct3D is the factory that creates rendering devices.
type Direct3D interface {
	CreateDevice(typ DeviceType, window Window, flags CreateFlags, params PresentParameters) (Device, error)
	Release()
}

// Device is a fixed function rendering device bound to a window surface.
// A Device is not safe for concurrent use and must only be used by the
// goroutine that created it.
type Device interface {
	SetRenderState(state RenderState, value uint32) error

	CreateVertexBuffer(length uint32, fvf FVF) (VertexBuffer, error)
	CreateIndexBuffer(length uint32, format Format) (IndexBuffer, error)

	Clear(flags ClearFlags, color Color, z float32, stencil uint32) error
	BeginScene() error
	EndScene() error

	SetTransform(state TransformState, matrix glm.Mat4f) error
	SetStreamSource(stream uint32, buffer VertexBuffer, offset, stride uint32) error
	SetFVF(fvf FVF) error
	SetIndices(buffer IndexBuffer) error

	DrawIndexedPrimitive(typ PrimitiveType, baseVertex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error

	Present() error
	Release()
}

// Buffer is device memory that is written through Lock and Unlock.
// The slice returned by Lock is only valid until Unlock is called.
type Buffer interface {
	Lock(offset, size uint32) ([]byte, error)
	Unlock() error
	Release()
}

type VertexBuffer interface {
	Buffer
}

type IndexBuffer interface {
	Buffer
}
