package pulse

import (
	"errors"
	"slices"
	"testing"
)

var renderStateCalls = []string{
	"SetRenderState(ZEnable)",
	"SetRenderState(Ambient)",
	"SetRenderState(CullMode)",
	"SetRenderState(Lighting)",
}

func TestNew_HardwareDevice(t *testing.T) {
	rec := newRecorder()
	factory := &fakeFactory{rec: rec}

	ctx, err := New(factory, fakeWindow{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if ctx.DeviceType() != DeviceTypeHAL {
		t.Errorf("DeviceType() = %s, want %s", ctx.DeviceType(), DeviceTypeHAL)
	}

	want := append([]string{"CreateDevice(HAL)"}, renderStateCalls...)
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	states := factory.device.renderStates
	if states[RenderStateZEnable] != 1 {
		t.Errorf("ZEnable = %d, want 1", states[RenderStateZEnable])
	}

	if states[RenderStateAmbient] != 0xffffffff {
		t.Errorf("Ambient = %#x, want 0xffffffff", states[RenderStateAmbient])
	}

	if states[RenderStateCullMode] != CullNone {
		t.Errorf("CullMode = %d, want %d", states[RenderStateCullMode], CullNone)
	}

	if states[RenderStateLighting] != 0 {
		t.Errorf("Lighting = %d, want 0", states[RenderStateLighting])
	}
}

func TestNew_FallsBackToReferenceDevice(t *testing.T) {
	rec := newRecorder("CreateDevice(HAL)")
	factory := &fakeFactory{rec: rec}

	ctx, err := New(factory, fakeWindow{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if ctx.DeviceType() != DeviceTypeREF {
		t.Errorf("DeviceType() = %s, want %s", ctx.DeviceType(), DeviceTypeREF)
	}

	wantCalls := []string{"CreateDevice(HAL)", "CreateDevice(REF)"}
	if !slices.Equal(rec.calls[:2], wantCalls) {
		t.Errorf("calls = %v, want prefix %v", rec.calls, wantCalls)
	}

	if len(factory.params) != 2 || factory.params[0] != factory.params[1] {
		t.Errorf("present parameters differ between attempts: %+v", factory.params)
	}

	if factory.params[1] != ctx.PresentParameters() {
		t.Errorf("PresentParameters() = %+v, want %+v", ctx.PresentParameters(), factory.params[1])
	}
}

func TestNew_BothDevicesFail(t *testing.T) {
	rec := newRecorder("CreateDevice(HAL)", "CreateDevice(REF)")
	factory := &fakeFactory{rec: rec}

	ctx, err := New(factory, fakeWindow{})
	if err == nil {
		t.Fatal("New() succeeded, want error")
	}

	if ctx != nil {
		t.Errorf("New() returned a context on failure")
	}

	if !errors.Is(err, ErrInitializationFailed) {
		t.Errorf("error %v does not match ErrInitializationFailed", err)
	}

	if !errors.Is(err, errInjected) {
		t.Errorf("error %v does not carry the device error", err)
	}

	want := []string{"CreateDevice(HAL)", "CreateDevice(REF)", "Release(factory)"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestNew_RenderStateFailure(t *testing.T) {
	rec := newRecorder("SetRenderState(CullMode)")
	factory := &fakeFactory{rec: rec}

	_, err := New(factory, fakeWindow{})
	if !errors.Is(err, ErrInitializationFailed) {
		t.Fatalf("New() error = %v, want ErrInitializationFailed", err)
	}

	want := []string{
		"CreateDevice(HAL)",
		"SetRenderState(ZEnable)",
		"SetRenderState(Ambient)",
		"SetRenderState(CullMode)",
		"Release(device)",
		"Release(factory)",
	}

	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestContext_ReleaseIsIdempotent(t *testing.T) {
	rec := newRecorder()

	ctx, err := New(&fakeFactory{rec: rec}, fakeWindow{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	rec.reset()

	ctx.Release()
	ctx.Release()

	want := []string{"Release(device)", "Release(factory)"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	if ctx.Device() != nil {
		t.Errorf("Device() is not nil after Release")
	}
}

func TestDeviceType_String(t *testing.T) {
	tests := []struct {
		typ  DeviceType
		want string
	}{
		{DeviceTypeHAL, "HAL"},
		{DeviceTypeREF, "REF"},
		{DeviceType(7), "DeviceType(7)"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
