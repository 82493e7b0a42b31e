//go:build windows

package glimpse

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	csClassDC = 0x0040

	wsOverlappedWindow = 0x00CF0000

	wmDestroy = 0x0002
	wmQuit    = 0x0012

	pmRemove = 0x0001

	swShowDefault = 10
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       struct{ x, y int32 }
	lPrivate uint32
}

type rect struct {
	left, top, right, bottom int32
}

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterClassEx  = user32.NewProc("RegisterClassExW")
	procUnregisterClass  = user32.NewProc("UnregisterClassW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procGetDesktopWindow = user32.NewProc("GetDesktopWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procPeekMessage      = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")

	wndProcCallback = windows.NewCallback(wndProc)

	// the window receiving messages, there is only ever one
	currentWin *winWindow
)

type winWindow struct {
	hwnd      windows.HWND
	instance  windows.Handle
	className *uint16

	onDestroy func()
	destroyed bool
}

func NewWindow(opts WindowOptions) (Window, error) {
	opts = opts.withDefaults()

	if currentWin != nil {
		return nil, fmt.Errorf("only one window is supported")
	}

	className, err := windows.UTF16PtrFromString(opts.ClassName)
	if err != nil {
		return nil, fmt.Errorf("class name: %w", err)
	}

	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, fmt.Errorf("window title: %w", err)
	}

	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return nil, fmt.Errorf("get module handle: %w", err)
	}

	class := wndClassEx{
		style:         csClassDC,
		lpfnWndProc:   wndProcCallback,
		hInstance:     instance,
		lpszClassName: className,
	}

	class.cbSize = uint32(unsafe.Sizeof(class))

	if ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&class))); ret == 0 {
		return nil, fmt.Errorf("register window class: %w", err)
	}

	win := &winWindow{instance: instance, className: className}
	currentWin = win

	desktop, _, _ := procGetDesktopWindow.Call()

	hwnd, _, err := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		wsOverlappedWindow,
		uintptr(opts.X), uintptr(opts.Y),
		uintptr(opts.Width), uintptr(opts.Height),
		desktop, 0,
		uintptr(instance), 0,
	)

	if hwnd == 0 {
		win.unregister()
		return nil, fmt.Errorf("create window: %w", err)
	}

	win.hwnd = windows.HWND(hwnd)

	return win, nil
}

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	if message == wmDestroy {
		if win := currentWin; win != nil && uintptr(win.hwnd) == hwnd {
			win.destroy()
		}

		procPostQuitMessage.Call(0)
		return 0
	}

	ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
	return ret
}

// HWND returns the native window handle.
func (w *winWindow) HWND() uintptr {
	return uintptr(w.hwnd)
}

func (w *winWindow) Size() (uint32, uint32) {
	var r rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return uint32(r.right - r.left), uint32(r.bottom - r.top)
}

func (w *winWindow) Show() {
	procShowWindow.Call(uintptr(w.hwnd), swShowDefault)
	procUpdateWindow.Call(uintptr(w.hwnd))
}

func (w *winWindow) OnDestroy(callback func()) {
	w.onDestroy = callback
}

func (w *winWindow) destroy() {
	if w.destroyed {
		return
	}

	w.destroyed = true

	if w.onDestroy != nil {
		w.onDestroy()
	}
}

func (w *winWindow) Run(render func() error) error {
	var m msg

	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret != 0 {
			if m.message == wmQuit {
				return nil
			}

			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
			continue
		}

		if w.destroyed {
			return nil
		}

		if err := render(); err != nil {
			return err
		}
	}
}

func (w *winWindow) unregister() {
	if w.className != nil {
		procUnregisterClass.Call(uintptr(unsafe.Pointer(w.className)), uintptr(w.instance))
		w.className = nil
	}

	currentWin = nil
}

func (w *winWindow) Terminate() {
	if !w.destroyed && w.hwnd != 0 {
		procDestroyWindow.Call(uintptr(w.hwnd))
	}

	w.hwnd = 0
	w.unregister()
}
