package soft

import (
	"fmt"
	"log/slog"

	"github.com/BellumGames/MultiMediaLab/pulse"
)

type Options struct {
	// DisableHAL lets every hardware device creation fail, only the
	// reference device type is available then.
	DisableHAL bool
}

// Direct3D creates software devices that render into memory.
type Direct3D struct {
	opts     Options
	released bool
}

var _ pulse.Direct3D = (*Direct3D)(nil)

func New(opts Options) *Direct3D {
	return &Direct3D{opts: opts}
}

func (d *Direct3D) CreateDevice(typ pulse.DeviceType, window pulse.Window, flags pulse.CreateFlags, params pulse.PresentParameters) (pulse.Device, error) {
	if d.released {
		return nil, ErrReleased
	}

	switch typ {
	case pulse.DeviceTypeHAL:
		if d.opts.DisableHAL {
			return nil, fmt.Errorf("%w: %s", ErrNotAvailable, typ)
		}

	case pulse.DeviceTypeREF:

	default:
		return nil, fmt.Errorf("%w: device type %s", ErrInvalidCall, typ)
	}

	if !params.Windowed {
		return nil, fmt.Errorf("%w: fullscreen is not supported", ErrInvalidCall)
	}

	if params.BackBufferFormat != pulse.FormatUnknown {
		return nil, fmt.Errorf("%w: back buffer format %d", ErrInvalidCall, params.BackBufferFormat)
	}

	if params.EnableAutoDepthStencil && params.AutoDepthStencilFormat != pulse.FormatD16 {
		return nil, fmt.Errorf("%w: depth stencil format %d", ErrInvalidCall, params.AutoDepthStencilFormat)
	}

	width, height := window.Size()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: window has no area", ErrInvalidCall)
	}

	slog.Debug("Creating software device",
		slog.String("type", typ.String()),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	return newDevice(typ, int(width), int(height), params.EnableAutoDepthStencil), nil
}

func (d *Direct3D) Release() {
	d.released = true
}
