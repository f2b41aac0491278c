// Package window wraps GLFW window and OpenGL context creation. The window
// owns the GL context thread: it locks the OS thread at init and every device
// call must happen on that thread.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling and the GL context must stay on one OS thread.
	runtime.LockOSThread()
}

// glfwWindow is the implementation of the Window interface.
type glfwWindow struct {
	window   *glfw.Window
	width    int
	height   int
	title    string
	onResize func(width, height int)
}

// Window defines the interface for the engine's host window and GL context.
type Window interface {
	// Poll processes pending window and input events. Must be called once
	// per frame.
	Poll()

	// SwapBuffers presents the rendered frame.
	SwapBuffers()

	// ShouldClose reports whether the user asked to close the window.
	//
	// Returns:
	//   - bool: true if the window should close
	ShouldClose() bool

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - int: the framebuffer width
	//   - int: the framebuffer height
	Size() (int, int)

	// SetResizeHandler registers a callback invoked with the new framebuffer
	// size whenever the window is resized. The engine uses this to keep the
	// viewport and the camera aspect ratio in sync.
	//
	// Parameters:
	//   - handler: the resize callback
	SetResizeHandler(handler func(width, height int))

	// AspectRatio returns the framebuffer width over height.
	//
	// Returns:
	//   - float32: the aspect ratio
	AspectRatio() float32

	// Destroy closes the window and terminates GLFW.
	Destroy()
}

var _ Window = &glfwWindow{}

// NewWindow creates a GLFW window with an OpenGL 4.1 core context and makes
// the context current on the calling thread.
//
// Parameters:
//   - title: the window title
//   - width: the initial window width in pixels
//   - height: the initial window height in pixels
//
// Returns:
//   - Window: the created window
//   - error: an error if GLFW or window creation fails
func NewWindow(title string, width, height int) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	w := &glfwWindow{
		window: win,
		width:  width,
		height: height,
		title:  title,
	}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		w.width, w.height = fbWidth, fbHeight
		if w.onResize != nil {
			w.onResize(fbWidth, fbHeight)
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	return w, nil
}

func (w *glfwWindow) Poll() {
	glfw.PollEvents()
}

func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *glfwWindow) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *glfwWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *glfwWindow) SetResizeHandler(handler func(width, height int)) {
	w.onResize = handler
}

func (w *glfwWindow) AspectRatio() float32 {
	if w.height == 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

func (w *glfwWindow) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}
