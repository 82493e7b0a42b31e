package gpu

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed quad.wgsl
var quadShaderCode string

// quadPipeline describes the fixed function state a draw call runs with.
type quadPipeline struct {
	TargetFormat wgpu.TextureFormat

	// undefined if the device has no depth buffer
	DepthFormat wgpu.TextureFormat
	DepthTest   bool

	CullMode uint32
	Stride   uint32
}

func (conf quadPipeline) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for quad",
		slog.Any("format", conf.TargetFormat),
		slog.Bool("depthTest", conf.DepthTest),
		slog.Int("cullMode", int(conf.CullMode)),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Quad.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: quadShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile quad shader: %w", err)
	}

	defer shader.Release()

	// front faces are clockwise on screen
	primitive := wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCW,
		CullMode:  wgpu.CullModeNone,
	}

	switch conf.CullMode {
	case pulse.CullCCW:
		primitive.CullMode = wgpu.CullModeBack
	case pulse.CullCW:
		primitive.CullMode = wgpu.CullModeFront
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Quad.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(conf.Stride),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
						{
							// diffuse color
							Format:         wgpu.VertexFormatUnorm8x4,
							Offset:         12,
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: primitive,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}

	if conf.DepthFormat != wgpu.TextureFormatUndefined {
		stencil := wgpu.StencilFaceState{
			Compare:     wgpu.CompareFunctionAlways,
			FailOp:      wgpu.StencilOperationKeep,
			DepthFailOp: wgpu.StencilOperationKeep,
			PassOp:      wgpu.StencilOperationKeep,
		}

		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            conf.DepthFormat,
			DepthWriteEnabled: conf.DepthTest,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront:      stencil,
			StencilBack:       stencil,
		}

		if conf.DepthTest {
			desc.DepthStencil.DepthCompare = wgpu.CompareFunctionLessEqual
		}
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build quad pipeline: %w", err)
	}

	return pipeline, nil
}
