package pulse

import (
	"errors"
	"fmt"
	"log/slog"
)

// FrameState is the state a frame reached while being rendered.
type FrameState uint8

const (
	FrameIdle FrameState = iota
	FrameSceneActive
	FramePresented
)

func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "Idle"
	case FrameSceneActive:
		return "SceneActive"
	case FramePresented:
		return "Presented"
	default:
		return fmt.Sprintf("FrameState(%d)", uint8(s))
	}
}

// FrameResult describes the outcome of a single RenderFrame call.
// None of the errors are fatal, the next frame is rendered as usual.
type FrameResult struct {
	State FrameState

	// true if the draw call was issued successfully
	Drawn bool

	Err error
}

type FrameStats struct {
	Frames  uint64
	Drawn   uint64
	Skipped uint64
}

// Renderer draws the quad geometry once per frame.
type Renderer struct {
	ctx      *Context
	geometry *Geometry
	stats    FrameStats
}

func NewRenderer(ctx *Context, geometry *Geometry) *Renderer {
	return &Renderer{ctx: ctx, geometry: geometry}
}

func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// RenderFrame clears the back buffer, draws the quad inside a scene
// and presents the result. The back buffer is presented even if the
// scene could not be started.
func (r *Renderer) RenderFrame() FrameResult {
	dev := r.ctx.Device()

	var result FrameResult
	var errs []error

	r.stats.Frames++

	err := dev.Clear(ClearTarget|ClearZBuffer, ColorBlue, 1.0, 0)
	if err != nil {
		errs = append(errs, fmt.Errorf("clear: %w", err))
	} else if err := dev.BeginScene(); err != nil {
		errs = append(errs, fmt.Errorf("begin scene: %w", err))
	} else {
		result.State = FrameSceneActive

		if err := r.drawScene(dev); err != nil {
			errs = append(errs, err)
		} else {
			result.Drawn = true
		}

		if err := dev.EndScene(); err != nil {
			errs = append(errs, fmt.Errorf("end scene: %w", err))
		}
	}

	if err := dev.Present(); err != nil {
		errs = append(errs, fmt.Errorf("present: %w", err))
	} else {
		result.State = FramePresented
	}

	if result.Drawn {
		r.stats.Drawn++
	} else {
		r.stats.Skipped++
	}

	result.Err = errors.Join(errs...)
	if result.Err != nil {
		slog.Debug("Frame incomplete",
			slog.String("state", result.State.String()),
			slog.String("err", result.Err.Error()))
	}

	return result
}

func (r *Renderer) drawScene(dev Device) error {
	if err := SetupTransforms(dev); err != nil {
		return err
	}

	if err := dev.SetStreamSource(0, r.geometry.Vertices(), 0, VertexStride); err != nil {
		return fmt.Errorf("set stream source: %w", err)
	}

	if err := dev.SetFVF(VertexFVF); err != nil {
		return fmt.Errorf("set fvf: %w", err)
	}

	if err := dev.SetIndices(r.geometry.Indices()); err != nil {
		return fmt.Errorf("set indices: %w", err)
	}

	err := dev.DrawIndexedPrimitive(
		PrimitiveTriangleFan,
		0, 0, r.geometry.VertexCount(),
		0, r.geometry.PrimitiveCount(),
	)

	if err != nil {
		return fmt.Errorf("draw indexed primitive: %w", err)
	}

	return nil
}
