package pulse

import (
	"errors"
	"fmt"
	"log/slog"
)

// Context owns the Direct3D factory and the device created from it.
type Context struct {
	factory    Direct3D
	device     Device
	deviceType DeviceType
	params     PresentParameters
}

// New creates a device for the given window. A hardware device is tried
// first, if that fails the reference device is tried once with identical
// present parameters. The factory is owned by the returned Context and
// released together with it, also if New fails.
func New(factory Direct3D, window Window) (ctx *Context, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx = &Context{
		factory: factory,
		params:  DefaultPresentParameters(),
	}

	ctx.device, ctx.deviceType, err = createDevice(factory, window, ctx.params)
	if err != nil {
		return ctx, err
	}

	slog.Info("Device created", slog.String("type", ctx.deviceType.String()))

	if err := configureRenderStates(ctx.device); err != nil {
		return ctx, fmt.Errorf("%w: %w", ErrInitializationFailed, err)
	}

	return ctx, nil
}

func createDevice(factory Direct3D, window Window, params PresentParameters) (Device, DeviceType, error) {
	const flags = CreateSoftwareVertexProcessing

	device, errHAL := factory.CreateDevice(DeviceTypeHAL, window, flags, params)
	if errHAL == nil {
		return device, DeviceTypeHAL, nil
	}

	slog.Warn("Hardware device not available, falling back to reference device",
		slog.String("err", errHAL.Error()))

	device, errREF := factory.CreateDevice(DeviceTypeREF, window, flags, params)
	if errREF == nil {
		return device, DeviceTypeREF, nil
	}

	return nil, 0, fmt.Errorf("%w: %w",
		ErrInitializationFailed,
		errors.Join(
			fmt.Errorf("create %s device: %w", DeviceTypeHAL, errHAL),
			fmt.Errorf("create %s device: %w", DeviceTypeREF, errREF),
		),
	)
}

// configureRenderStates applies the fixed render states. Colors come
// from the vertex data only.
func configureRenderStates(device Device) error {
	states := []struct {
		state RenderState
		value uint32
	}{
		{RenderStateZEnable, 1},
		{RenderStateAmbient, uint32(ColorARGB(0xff, 0xff, 0xff, 0xff))},
		{RenderStateCullMode, CullNone},
		{RenderStateLighting, 0},
	}

	for _, st := range states {
		if err := device.SetRenderState(st.state, st.value); err != nil {
			return fmt.Errorf("set render state %s: %w", st.state, err)
		}
	}

	return nil
}

// Device returns the device, or nil after the context was released.
func (c *Context) Device() Device {
	return c.device
}

// DeviceType returns the type of the device that was created.
func (c *Context) DeviceType() DeviceType {
	return c.deviceType
}

// PresentParameters returns the parameters the device was created with.
func (c *Context) PresentParameters() PresentParameters {
	return c.params
}

// Release releases the device and then the factory. Calling Release
// more than once is a no-op.
func (c *Context) Release() {
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}

	if c.factory != nil {
		c.factory.Release()
		c.factory = nil
	}
}
