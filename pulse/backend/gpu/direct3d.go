// Package gpu implements the pulse device contract on top of WebGPU.
// The fixed function pipeline is emulated with a small shader.
package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var ErrUnsupported = errors.New("not supported by the webgpu backend")

// Window is a window that a webgpu surface can be created for.
type Window interface {
	pulse.Window
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type Options struct {
	// Request the fallback adapter even for hardware devices
	ForceFallbackAdapter bool
}

type Direct3D struct {
	opts Options
}

var _ pulse.Direct3D = (*Direct3D)(nil)

func New(opts Options) *Direct3D {
	opts.ForceFallbackAdapter = opts.ForceFallbackAdapter || forceFallbackAdapter
	return &Direct3D{opts: opts}
}

// CreateDevice creates a webgpu device rendering to the surface of the
// given window. The reference device type maps to the fallback adapter.
func (d *Direct3D) CreateDevice(typ pulse.DeviceType, window pulse.Window, flags pulse.CreateFlags, params pulse.PresentParameters) (dev pulse.Device, err error) {
	surfaceWindow, ok := window.(Window)
	if !ok {
		return nil, fmt.Errorf("%w: window %T has no surface", ErrUnsupported, window)
	}

	if typ != pulse.DeviceTypeHAL && typ != pulse.DeviceTypeREF {
		return nil, fmt.Errorf("%w: device type %s", ErrUnsupported, typ)
	}

	if params.EnableAutoDepthStencil && params.AutoDepthStencilFormat != pulse.FormatD16 {
		return nil, fmt.Errorf("%w: depth stencil format %d", ErrUnsupported, params.AutoDepthStencilFormat)
	}

	device := &Device{}

	defer func() {
		if err != nil {
			device.Release()
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	device.surface = instance.CreateSurface(surfaceWindow.SurfaceDescriptor())

	device.adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: typ == pulse.DeviceTypeREF || d.opts.ForceFallbackAdapter,
		CompatibleSurface:    device.surface,
	})

	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	device.device, err = device.adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	device.queue = device.device.GetQueue()

	width, height := window.Size()
	if err := device.configure(width, height, params.EnableAutoDepthStencil); err != nil {
		return nil, err
	}

	slog.Info("Created webgpu device",
		slog.String("type", typ.String()),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)))

	return device, nil
}

// Release is a no-op, every device owns its own webgpu instance objects.
func (d *Direct3D) Release() {
}
