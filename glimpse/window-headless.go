package glimpse

// HeadlessWindow is a window without a native surface. Run renders a
// fixed number of frames and destroys the window afterwards.
type HeadlessWindow struct {
	width, height uint32

	frames  int
	visible bool

	onDestroy func()
	destroyed bool
}

var _ Window = (*HeadlessWindow)(nil)

// NewHeadlessWindow creates a window that renders frames frames before
// it is destroyed. At least one frame is rendered.
func NewHeadlessWindow(opts WindowOptions, frames int) *HeadlessWindow {
	opts = opts.withDefaults()

	return &HeadlessWindow{
		width:  uint32(opts.Width),
		height: uint32(opts.Height),
		frames: max(1, frames),
	}
}

func (h *HeadlessWindow) Size() (uint32, uint32) {
	return h.width, h.height
}

func (h *HeadlessWindow) Show() {
	h.visible = true
}

// Visible returns true if Show was called.
func (h *HeadlessWindow) Visible() bool {
	return h.visible
}

func (h *HeadlessWindow) OnDestroy(callback func()) {
	h.onDestroy = callback
}

func (h *HeadlessWindow) Run(render func() error) error {
	defer h.Destroy()

	for frame := 0; frame < h.frames && !h.destroyed; frame++ {
		if err := render(); err != nil {
			return err
		}
	}

	return nil
}

// Destroy destroys the window as if it was closed by the user.
func (h *HeadlessWindow) Destroy() {
	if h.destroyed {
		return
	}

	h.destroyed = true

	if h.onDestroy != nil {
		h.onDestroy()
	}
}

func (h *HeadlessWindow) Terminate() {
	h.Destroy()
}
