//go:build windows

package dx9

import (
	"errors"
	"fmt"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/gonutz/d3d9"
)

var ErrUnsupported = errors.New("not supported by the direct3d backend")

// Window is a native window that a device can present to.
type Window interface {
	pulse.Window
	HWND() uintptr
}

type Direct3D struct {
	d3d *d3d9.Direct3D
}

var _ pulse.Direct3D = (*Direct3D)(nil)

// New creates the Direct3D 9 object.
func New() (*Direct3D, error) {
	d3d, err := d3d9.Create(d3d9.SDK_VERSION)
	if err != nil {
		return nil, fmt.Errorf("create direct3d: %w", err)
	}

	return &Direct3D{d3d: d3d}, nil
}

func (d *Direct3D) CreateDevice(typ pulse.DeviceType, window pulse.Window, flags pulse.CreateFlags, params pulse.PresentParameters) (pulse.Device, error) {
	native, ok := window.(Window)
	if !ok {
		return nil, fmt.Errorf("%w: window %T has no native handle", ErrUnsupported, window)
	}

	hwnd := d3d9.HWND(native.HWND())

	pp := d3d9.PRESENT_PARAMETERS{
		HDeviceWindow:    hwnd,
		SwapEffect:       d3d9.SWAPEFFECT_DISCARD,
		BackBufferFormat: d3d9.FMT_UNKNOWN,
	}

	if params.Windowed {
		pp.Windowed = 1
	}

	if params.EnableAutoDepthStencil {
		pp.EnableAutoDepthStencil = 1
		pp.AutoDepthStencilFormat = d3d9.FMT_D16
	}

	behavior := uint32(0)
	if flags&pulse.CreateSoftwareVertexProcessing != 0 {
		behavior |= d3d9.CREATE_SOFTWARE_VERTEXPROCESSING
	}

	var device *d3d9.Device
	var err error

	switch typ {
	case pulse.DeviceTypeHAL:
		device, _, err = d.d3d.CreateDevice(d3d9.ADAPTER_DEFAULT, d3d9.DEVTYPE_HAL, hwnd, behavior, pp)
	case pulse.DeviceTypeREF:
		device, _, err = d.d3d.CreateDevice(d3d9.ADAPTER_DEFAULT, d3d9.DEVTYPE_REF, hwnd, behavior, pp)
	default:
		return nil, fmt.Errorf("%w: device type %s", ErrUnsupported, typ)
	}

	if err != nil {
		return nil, err
	}

	return &Device{device: device}, nil
}

func (d *Direct3D) Release() {
	if d.d3d != nil {
		d.d3d.Release()
		d.d3d = nil
	}
}
