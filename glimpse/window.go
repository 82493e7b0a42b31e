package glimpse

import "runtime"

func init() {
	// native windows and graphics devices must stay on the main thread
	runtime.LockOSThread()
}

type WindowOptions struct {
	// name of the window class, only used on windows
	ClassName string

	Title string

	// position of the window on the desktop
	X, Y int

	Width  int
	Height int
}

// DefaultWindowOptions returns the options of the quad sample window.
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		ClassName: "D3D Tutorial",
		Title:     "Vertex Buffer",
		X:         100,
		Y:         100,
		Width:     300,
		Height:    300,
	}
}

func (opts WindowOptions) withDefaults() WindowOptions {
	defaults := DefaultWindowOptions()

	if opts.ClassName == "" {
		opts.ClassName = defaults.ClassName
	}

	if opts.Title == "" {
		opts.Title = defaults.Title
	}

	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}

	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}

	return opts
}

type Window interface {
	// Size returns the size of the area that can be rendered to.
	Size() (width, height uint32)

	// Show makes the window visible. Windows start hidden.
	Show()

	// OnDestroy registers a callback that runs once when the window is
	// destroyed, while the message loop is still running.
	OnDestroy(callback func())

	// Run processes window messages and calls render whenever no
	// message is pending, until the window is destroyed.
	Run(render func() error) error

	// Terminate releases all native resources of the window.
	Terminate()
}
