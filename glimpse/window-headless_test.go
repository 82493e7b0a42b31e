package glimpse

import (
	"errors"
	"testing"
)

func TestHeadlessWindow_Run(t *testing.T) {
	tests := []struct {
		name       string
		frames     int
		wantFrames int
	}{
		{name: "default", frames: 0, wantFrames: 1},
		{name: "single", frames: 1, wantFrames: 1},
		{name: "many", frames: 25, wantFrames: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := NewHeadlessWindow(WindowOptions{}, tt.frames)

			var destroyed int
			win.OnDestroy(func() { destroyed++ })

			var frames int
			err := win.Run(func() error {
				frames++
				return nil
			})

			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			if frames != tt.wantFrames {
				t.Errorf("rendered %d frames, want %d", frames, tt.wantFrames)
			}

			win.Terminate()

			if destroyed != 1 {
				t.Errorf("destroy callback ran %d times, want 1", destroyed)
			}
		})
	}
}

func TestHeadlessWindow_DestroyStopsLoop(t *testing.T) {
	win := NewHeadlessWindow(WindowOptions{}, 10)

	var frames int
	_ = win.Run(func() error {
		frames++
		if frames == 3 {
			win.Destroy()
		}

		return nil
	})

	if frames != 3 {
		t.Errorf("rendered %d frames after destroy, want 3", frames)
	}
}

func TestHeadlessWindow_RenderError(t *testing.T) {
	errRender := errors.New("render failed")

	win := NewHeadlessWindow(WindowOptions{}, 5)

	err := win.Run(func() error { return errRender })
	if !errors.Is(err, errRender) {
		t.Errorf("Run() error = %v, want %v", err, errRender)
	}
}

func TestWindowOptions_Defaults(t *testing.T) {
	win := NewHeadlessWindow(WindowOptions{Width: -5}, 1)

	width, height := win.Size()
	if width != 300 || height != 300 {
		t.Errorf("Size() = %dx%d, want 300x300", width, height)
	}

	if win.Visible() {
		t.Errorf("window is visible before Show()")
	}

	win.Show()

	if !win.Visible() {
		t.Errorf("window is not visible after Show()")
	}

	opts := DefaultWindowOptions()
	if opts.ClassName != "D3D Tutorial" || opts.Title != "Vertex Buffer" || opts.X != 100 || opts.Y != 100 {
		t.Errorf("DefaultWindowOptions() = %+v", opts)
	}
}
