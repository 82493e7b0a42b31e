package orion

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"golang.org/x/image/bmp"
)

func TestRun_Soft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")

	conf := DefaultConfig()
	conf.Backend = BackendSoft
	conf.Frames = 3
	conf.Capture = path

	summary, err := Run(RunOptions{Config: conf})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if summary.DeviceType != pulse.DeviceTypeHAL {
		t.Errorf("DeviceType = %s, want %s", summary.DeviceType, pulse.DeviceTypeHAL)
	}

	want := pulse.FrameStats{Frames: 3, Drawn: 3}
	if summary.Frames != want {
		t.Errorf("Frames = %+v, want %+v", summary.Frames, want)
	}

	if summary.Times.FrameCount != 3 {
		t.Errorf("Times.FrameCount = %d, want 3", summary.Times.FrameCount)
	}

	fp, err := os.Open(path)
	if err != nil {
		t.Fatalf("capture not written: %v", err)
	}

	defer fp.Close()

	img, err := bmp.Decode(fp)
	if err != nil {
		t.Fatalf("bmp.Decode() failed: %v", err)
	}

	if size := img.Bounds().Size(); size != image.Pt(300, 300) {
		t.Fatalf("capture size = %v, want 300x300", size)
	}

	pixels := map[image.Point]color.RGBA{
		{150, 150}: {R: 0xff, G: 0xff, A: 0xff},
		{150, 120}: {R: 0xff, G: 0xff, A: 0xff},
		{10, 10}:   {B: 0xff, A: 0xff},
		{150, 250}: {B: 0xff, A: 0xff},
	}

	for pt, want := range pixels {
		got := color.RGBAModel.Convert(img.At(pt.X, pt.Y)).(color.RGBA)
		if got != want {
			t.Errorf("pixel at %v = %v, want %v", pt, got, want)
		}
	}
}

func TestRun_UnsupportedBackend(t *testing.T) {
	conf := DefaultConfig()
	conf.Backend = Backend("vulkan")

	_, err := Run(RunOptions{Config: conf})
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Errorf("Run() error = %v, want %v", err, ErrUnsupportedBackend)
	}
}
