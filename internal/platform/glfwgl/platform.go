// Package glfwgl implements view.Platform with GLFW windows and OpenGL 3.3
// core contexts.
package glfwgl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"konig/internal/view"
)

var errNoMonitor = errors.New("no primary monitor")

// Platform is the GLFW windowing subsystem.
type Platform struct {
	glLoaded bool
}

// New returns an uninitialized platform.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	return nil
}

func (p *Platform) Terminate() {
	glfw.Terminate()
	p.glLoaded = false
}

func (p *Platform) PrimaryVideoMode() (view.VideoMode, error) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return view.VideoMode{}, errNoMonitor
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return view.VideoMode{}, fmt.Errorf("video mode of %q unavailable", monitor.GetName())
	}
	return view.VideoMode{Width: mode.Width, Height: mode.Height, RefreshRate: mode.RefreshRate}, nil
}

func (p *Platform) CreateWindow(spec view.WindowSpec) (view.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, spec.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, spec.ContextMinor)
	if spec.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfwBool(spec.ForwardCompat))
	glfw.WindowHint(glfw.Visible, glfwBool(spec.Visible))

	var monitor *glfw.Monitor
	if spec.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			return nil, errNoMonitor
		}
	}

	w, err := glfw.CreateWindow(spec.Width, spec.Height, spec.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Window{p: p, w: w, closeOnEscape: spec.CloseOnEscape}, nil
}

func (p *Platform) SwapInterval(frames int) { glfw.SwapInterval(frames) }

func (p *Platform) PollEvents() { glfw.PollEvents() }

func (p *Platform) Time() float64 { return glfw.GetTime() }

func glfwBool(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// Window is a GLFW window with its GL context.
type Window struct {
	p             *Platform
	w             *glfw.Window
	closeOnEscape bool
}

// Handle exposes the GLFW window to the GUI overlay.
func (w *Window) Handle() *glfw.Window { return w.w }

// MakeContextCurrent binds the context to the calling thread and loads GL
// entry points the first time.
func (w *Window) MakeContextCurrent() error {
	w.w.MakeContextCurrent()
	if !w.p.glLoaded {
		if err := gl.Init(); err != nil {
			return fmt.Errorf("gl init: %w", err)
		}
		w.p.glLoaded = true
	}
	return nil
}

func (w *Window) SetClearColor(c view.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

func (w *Window) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (w *Window) SwapBuffers() { w.w.SwapBuffers() }

func (w *Window) ShouldClose() bool {
	if w.closeOnEscape && w.w.GetKey(glfw.KeyEscape) == glfw.Press {
		w.w.SetShouldClose(true)
	}
	return w.w.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) { w.w.SetShouldClose(v) }

func (w *Window) Size() (int, int) { return w.w.GetSize() }

func (w *Window) FramebufferSize() (int, int) { return w.w.GetFramebufferSize() }

func (w *Window) Destroy() { w.w.Destroy() }

var (
	_ view.Platform = (*Platform)(nil)
	_ view.Window   = (*Window)(nil)
)
