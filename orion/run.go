package orion

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BellumGames/MultiMediaLab/glimpse"
	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/pkg/profile"
)

var ErrUnsupportedBackend = errors.New("backend is not supported on this platform")

type RunOptions struct {
	Config Config

	// options of the window to render into. Defaults are used for
	// all fields that are not set.
	Window glimpse.WindowOptions
}

// Summary describes a finished run.
type Summary struct {
	Backend    Backend
	DeviceType pulse.DeviceType
	Frames     pulse.FrameStats
	Times      FrameTimes
}

// Run creates the window and the device, uploads the quad and renders it
// until the window is destroyed. If the device or the quad can not be
// created, the window is never shown and Run returns the error.
func Run(opts RunOptions) (summary Summary, err error) {
	conf := opts.Config
	if conf.Backend == "" {
		conf.Backend = BackendAuto
	}

	switch conf.Profile {
	case ProfileCPU:
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case ProfileMemory:
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	summary.Backend = conf.Backend

	factory, err := newFactory(conf.Backend)
	if err != nil {
		return summary, err
	}

	win, err := newWindow(conf, opts.Window)
	if err != nil {
		factory.Release()
		return summary, fmt.Errorf("create window: %w", err)
	}

	// unregisters the window class, also if initialization fails
	defer win.Terminate()

	ctx, err := pulse.New(factory, win)
	if err != nil {
		return summary, fmt.Errorf("initialize device: %w", err)
	}

	summary.DeviceType = ctx.DeviceType()

	geometry, err := pulse.NewGeometry(ctx.Device())
	if err != nil {
		ctx.Release()
		return summary, fmt.Errorf("create geometry: %w", err)
	}

	renderer := pulse.NewRenderer(ctx, geometry)

	var released bool

	teardown := func() {
		if released {
			return
		}

		released = true

		if conf.Capture != "" {
			if err := capture(ctx.Device(), conf.Capture); err != nil {
				slog.Warn("Failed to capture frame", slog.String("err", err.Error()))
			}
		}

		summary.Frames = renderer.Stats()

		geometry.Release()
		ctx.Release()

		slog.Debug("Released device and geometry")
	}

	win.OnDestroy(teardown)
	defer teardown()

	win.Show()

	var times FrameTimes

	err = win.Run(func() error {
		if released {
			return nil
		}

		renderer.RenderFrame()

		if times.Tick() {
			slog.Debug("Frame times", slog.Any("times", &times))
		}

		return nil
	})

	summary.Times = times

	slog.Info("Render loop finished",
		slog.String("backend", string(conf.Backend)),
		slog.Any("times", &times))

	return summary, err
}

func newWindow(conf Config, opts glimpse.WindowOptions) (glimpse.Window, error) {
	if conf.Backend == BackendSoft {
		return glimpse.NewHeadlessWindow(opts, conf.Frames), nil
	}

	return glimpse.NewWindow(opts)
}

type bmpWriter interface {
	WriteBMP(w io.Writer) error
}

// capture writes the last presented frame into a file, if the device
// supports reading it back.
func capture(device pulse.Device, path string) error {
	writer, ok := device.(bmpWriter)
	if !ok {
		return fmt.Errorf("device %T can not capture frames", device)
	}

	fp, err := os.Create(path)
	if err != nil {
		return err
	}

	defer fp.Close()

	if err := writer.WriteBMP(fp); err != nil {
		return fmt.Errorf("write bmp: %w", err)
	}

	return fp.Close()
}
