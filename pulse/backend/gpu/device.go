package gpu

import (
	"fmt"
	"structs"
	"unsafe"

	"github.com/BellumGames/MultiMediaLab/glm"
	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

const surfaceFormat = wgpu.TextureFormatBGRA8Unorm

type uniforms struct {
	_ structs.HostLayout

	Transform glm.Mat4f
	Lighting  uint32
	_         [3]uint32
}

// Device records every clear and draw call into its own render pass
// on the current surface texture.
type Device struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	// surface texture of the frame in progress
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView

	pipelines *PipelineCache[quadPipeline]
	uniforms  *wgpu.Buffer

	// triangle list indices of the current draw call
	scratchIndices *wgpu.Buffer
	scratchSize    uint64

	renderStates map[pulse.RenderState]uint32
	transforms   map[pulse.TransformState]glm.Mat4f

	stream       *Buffer
	streamOffset uint32
	stride       uint32
	fvf          pulse.FVF
	indices      *Buffer

	inScene bool
}

var _ pulse.Device = (*Device)(nil)

func (d *Device) configure(width, height uint32, withDepth bool) error {
	caps := d.surface.GetCapabilities(d.adapter)

	d.surface.Configure(d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      surfaceFormat,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
		Width:       width,
		Height:      height,
	})

	d.renderStates = map[pulse.RenderState]uint32{
		pulse.RenderStateZEnable:  0,
		pulse.RenderStateCullMode: pulse.CullCCW,
		pulse.RenderStateLighting: 1,
		pulse.RenderStateAmbient:  0,
	}

	d.transforms = map[pulse.TransformState]glm.Mat4f{
		pulse.TransformWorld:      glm.IdentityMat4[float32](),
		pulse.TransformView:       glm.IdentityMat4[float32](),
		pulse.TransformProjection: glm.IdentityMat4[float32](),
	}

	if withDepth {
		var err error

		d.depthTexture, err = d.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:     "DepthTexture",
			Usage:     wgpu.TextureUsageRenderAttachment,
			Dimension: wgpu.TextureDimension2D,
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			Format:        wgpu.TextureFormatDepth16Unorm,
			MipLevelCount: 1,
			SampleCount:   1,
		})

		if err != nil {
			return fmt.Errorf("create depth texture: %w", err)
		}

		d.depthView, err = d.depthTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("create depth view: %w", err)
		}

		d.renderStates[pulse.RenderStateZEnable] = 1
	}

	uniformBuffer, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Quad.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(uniforms{})),
	})

	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}

	d.uniforms = uniformBuffer
	d.pipelines = NewPipelineCache[quadPipeline](d.device)

	return nil
}

func (d *Device) SetRenderState(state pulse.RenderState, value uint32) error {
	if _, ok := d.renderStates[state]; !ok {
		return fmt.Errorf("%w: render state %s", ErrUnsupported, state)
	}

	d.renderStates[state] = value
	return nil
}

func (d *Device) CreateVertexBuffer(length uint32, fvf pulse.FVF) (pulse.VertexBuffer, error) {
	size := alignUp(length)

	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "VertexBuffer",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(size),
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	return &Buffer{queue: d.queue, gpu: buf, data: make([]byte, size), length: length}, nil
}

func (d *Device) CreateIndexBuffer(length uint32, format pulse.Format) (pulse.IndexBuffer, error) {
	if format != pulse.FormatIndex16 {
		return nil, fmt.Errorf("%w: index format %d", ErrUnsupported, format)
	}

	return &Buffer{format: format, data: make([]byte, alignUp(length)), length: length}, nil
}

// target returns the view of the surface texture for the current frame.
func (d *Device) target() (*wgpu.TextureView, error) {
	if d.frameView != nil {
		return d.frameView, nil
	}

	texture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create surface view: %w", err)
	}

	d.frameTexture = texture
	d.frameView = view

	return view, nil
}

type passOptions struct {
	label      string
	clearColor *wgpu.Color
	clearDepth *float32
}

func (d *Device) renderPass(opts passOptions, record func(pass *wgpu.RenderPassEncoder)) error {
	view, err := d.target()
	if err != nil {
		return err
	}

	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: opts.label})
	if err != nil {
		return err
	}

	defer encoder.Release()

	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}

	if opts.clearColor != nil {
		color.LoadOp = wgpu.LoadOpClear
		color.ClearValue = *opts.clearColor
	}

	desc := &wgpu.RenderPassDescriptor{
		Label:            opts.label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
	}

	if d.depthView != nil {
		depth := &wgpu.RenderPassDepthStencilAttachment{
			View:         d.depthView,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpStore,
		}

		if opts.clearDepth != nil {
			depth.DepthLoadOp = wgpu.LoadOpClear
			depth.DepthClearValue = *opts.clearDepth
		}

		desc.DepthStencilAttachment = depth
	}

	pass := encoder.BeginRenderPass(desc)

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	if record != nil {
		record(pass)
	}

	if err := pass.End(); err != nil {
		return err
	}

	// must release pass before finishing the encoder
	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}

	defer cmdBuffer.Release()

	d.queue.Submit(cmdBuffer)

	return nil
}

func (d *Device) Clear(flags pulse.ClearFlags, color pulse.Color, z float32, stencil uint32) error {
	if flags&pulse.ClearStencil != 0 {
		return fmt.Errorf("%w: depth buffer has no stencil", ErrUnsupported)
	}

	opts := passOptions{label: "Clear"}

	if flags&pulse.ClearTarget != 0 {
		opts.clearColor = &wgpu.Color{
			R: float64(color.Red()) / 255,
			G: float64(color.Green()) / 255,
			B: float64(color.Blue()) / 255,
			A: 1,
		}
	}

	if flags&pulse.ClearZBuffer != 0 {
		if d.depthView == nil {
			return fmt.Errorf("%w: device has no depth buffer", ErrUnsupported)
		}

		opts.clearDepth = &z
	}

	return d.renderPass(opts, nil)
}

func (d *Device) BeginScene() error {
	if d.inScene {
		return fmt.Errorf("scene already started")
	}

	d.inScene = true
	return nil
}

func (d *Device) EndScene() error {
	if !d.inScene {
		return fmt.Errorf("no scene started")
	}

	d.inScene = false
	return nil
}

func (d *Device) SetTransform(state pulse.TransformState, matrix glm.Mat4f) error {
	if _, ok := d.transforms[state]; !ok {
		return fmt.Errorf("%w: transform %s", ErrUnsupported, state)
	}

	d.transforms[state] = matrix
	return nil
}

func (d *Device) SetStreamSource(stream uint32, buffer pulse.VertexBuffer, offset, stride uint32) error {
	if stream != 0 {
		return fmt.Errorf("%w: stream %d", ErrUnsupported, stream)
	}

	if buffer == nil {
		d.stream = nil
		return nil
	}

	buf, ok := buffer.(*Buffer)
	if !ok || buf.gpu == nil {
		return fmt.Errorf("%w: vertex buffer %T", ErrUnsupported, buffer)
	}

	d.stream = buf
	d.streamOffset = offset
	d.stride = stride

	return nil
}

func (d *Device) SetFVF(fvf pulse.FVF) error {
	if fvf != pulse.FVFXYZ|pulse.FVFDiffuse {
		return fmt.Errorf("%w: vertex format %#x", ErrUnsupported, uint32(fvf))
	}

	d.fvf = fvf
	return nil
}

func (d *Device) SetIndices(buffer pulse.IndexBuffer) error {
	if buffer == nil {
		d.indices = nil
		return nil
	}

	buf, ok := buffer.(*Buffer)
	if !ok || buf.gpu != nil {
		return fmt.Errorf("%w: index buffer %T", ErrUnsupported, buffer)
	}

	d.indices = buf
	return nil
}

// DrawIndexedPrimitive expands the indices into a triangle list and
// draws it. minIndex and numVertices are hints only and not needed here.
func (d *Device) DrawIndexedPrimitive(typ pulse.PrimitiveType, baseVertex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error {
	switch {
	case !d.inScene:
		return fmt.Errorf("draw outside of a scene")
	case d.stream == nil || d.indices == nil || d.fvf == 0:
		return fmt.Errorf("vertex buffer, index buffer and vertex format must be set before drawing")
	}

	if err := d.stream.usable(); err != nil {
		return fmt.Errorf("vertex buffer: %w", err)
	}

	if err := d.indices.usable(); err != nil {
		return fmt.Errorf("index buffer: %w", err)
	}

	indices := pulse.DecodeIndices16(d.indices.data[:d.indices.length])
	if uint64(startIndex) > uint64(len(indices)) {
		return fmt.Errorf("start index %d is out of range", startIndex)
	}

	triangles, err := pulse.TriangleList(typ, indices[startIndex:], primitiveCount)
	if err != nil {
		return err
	}

	if len(triangles) == 0 {
		return nil
	}

	if err := d.uploadIndices(triangles); err != nil {
		return err
	}

	pc, err := d.pipelines.Get(quadPipeline{
		TargetFormat: surfaceFormat,
		DepthFormat:  d.depthFormat(),
		DepthTest:    d.depthView != nil && d.renderStates[pulse.RenderStateZEnable] != 0,
		CullMode:     d.renderStates[pulse.RenderStateCullMode],
		Stride:       d.stride,
	})

	if err != nil {
		return err
	}

	// vertices are row vectors, the world transform applies first
	uni := uniforms{
		Transform: d.transforms[pulse.TransformProjection].
			Mul(d.transforms[pulse.TransformView]).
			Mul(d.transforms[pulse.TransformWorld]),
		Lighting: d.renderStates[pulse.RenderStateLighting],
	}

	if err := d.queue.WriteBuffer(d.uniforms, 0, wgpu.ToBytes([]uniforms{uni})); err != nil {
		return fmt.Errorf("update uniforms: %w", err)
	}

	bindGroup, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Quad.Uniforms",
		Layout: pc.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  d.uniforms,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}

	defer bindGroup.Release()

	return d.renderPass(passOptions{label: "Quad"}, func(pass *wgpu.RenderPassEncoder) {
		pass.SetPipeline(pc.Pipeline)
		pass.SetBindGroup(0, bindGroup, nil)
		pass.SetVertexBuffer(0, d.stream.gpu, uint64(d.streamOffset), wgpu.WholeSize)
		pass.SetIndexBuffer(d.scratchIndices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(len(triangles)), 1, 0, baseVertex, 0)
	})
}

func (d *Device) depthFormat() wgpu.TextureFormat {
	if d.depthView == nil {
		return wgpu.TextureFormatUndefined
	}

	return wgpu.TextureFormatDepth16Unorm
}

// uploadIndices writes the indices into the scratch index buffer,
// growing it if required.
func (d *Device) uploadIndices(indices []uint16) error {
	// buffer writes must be a multiple of four bytes
	if len(indices)%2 != 0 {
		indices = append(indices, 0)
	}

	data := wgpu.ToBytes(indices)

	if uint64(len(data)) > d.scratchSize {
		if d.scratchIndices != nil {
			d.scratchIndices.Release()
			d.scratchIndices = nil
		}

		size := max(64, 2*uint64(len(data)))

		buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Quad.Indices",
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			Size:  size,
		})

		if err != nil {
			d.scratchSize = 0
			return fmt.Errorf("create index buffer: %w", err)
		}

		d.scratchIndices = buf
		d.scratchSize = size
	}

	if err := d.queue.WriteBuffer(d.scratchIndices, 0, data); err != nil {
		return fmt.Errorf("upload indices: %w", err)
	}

	return nil
}

func (d *Device) Present() error {
	if _, err := d.target(); err != nil {
		return err
	}

	d.surface.Present()

	// the surface texture belongs to the surface again after presenting
	d.frameView.Release()
	d.frameView = nil
	d.frameTexture = nil

	return nil
}

func (d *Device) Release() {
	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}

	if d.frameTexture != nil {
		d.frameTexture.Release()
		d.frameTexture = nil
	}

	if d.pipelines != nil {
		d.pipelines.Release()
		d.pipelines = nil
	}

	for _, buf := range []**wgpu.Buffer{&d.scratchIndices, &d.uniforms} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}

	if d.depthView != nil {
		d.depthView.Release()
		d.depthView = nil
	}

	if d.depthTexture != nil {
		d.depthTexture.Release()
		d.depthTexture = nil
	}

	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}

	if d.device != nil {
		d.device.Release()
		d.device = nil
	}

	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}

	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
}
