//go:build !windows

package glimpse

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

type glfwWindow struct {
	win *glfw.Window

	onDestroy func()
	destroyed bool
}

func NewWindow(opts WindowOptions) (Window, error) {
	opts = opts.withDefaults()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.SetPos(opts.X, opts.Y)

	return &glfwWindow{win: window}, nil
}

func (g *glfwWindow) Size() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) Show() {
	g.win.Show()
}

func (g *glfwWindow) OnDestroy(callback func()) {
	g.onDestroy = callback
}

func (g *glfwWindow) destroy() {
	if g.destroyed {
		return
	}

	g.destroyed = true

	if g.onDestroy != nil {
		g.onDestroy()
	}
}

func (g *glfwWindow) Run(render func() error) error {
	defer g.destroy()

	for !g.destroyed {
		glfw.PollEvents()

		if g.win.ShouldClose() {
			break
		}

		if err := render(); err != nil {
			return err
		}
	}

	return nil
}

func (g *glfwWindow) Terminate() {
	g.destroy()

	if g.win != nil {
		g.win.Destroy()
		g.win = nil
		glfw.Terminate()
	}
}
