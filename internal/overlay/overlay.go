// Package overlay is the immediate-mode GUI layer (Dear ImGui) drawn on top
// of a view session's frame.
package overlay

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"konig/internal/view"
)

var errNotGLFW = errors.New("overlay: window is not backed by glfw")

// glfwWindow is implemented by windows that expose their GLFW handle.
type glfwWindow interface {
	Handle() *glfw.Window
}

// Overlay implements view.Overlay and view.Widgets with imgui.
type Overlay struct {
	ctx    *imgui.Context
	io     imgui.IO
	window *glfw.Window
	input  *input
	rend   *renderer
}

// New returns an overlay that is bound to a window by Init.
func New() *Overlay {
	return &Overlay{}
}

func (o *Overlay) Init(w view.Window) error {
	gw, ok := w.(glfwWindow)
	if !ok {
		return errNotGLFW
	}

	o.ctx = imgui.CreateContext(nil)
	o.io = imgui.CurrentIO()
	// No imgui.ini on disk.
	o.io.SetIniFilename("")

	o.window = gw.Handle()
	o.input = newInput(o.io, o.window)

	rend, err := newRenderer(o.io.Fonts())
	if err != nil {
		o.input.detach()
		o.ctx.Destroy()
		o.ctx = nil
		return err
	}
	o.rend = rend
	return nil
}

func (o *Overlay) NewFrame() {
	o.input.newFrame()
	imgui.NewFrame()
}

func (o *Overlay) Widgets() view.Widgets { return o }

func (o *Overlay) Render() {
	imgui.Render()
	dw, dh := o.window.GetSize()
	fw, fh := o.window.GetFramebufferSize()
	o.rend.render(
		[2]float32{float32(dw), float32(dh)},
		[2]float32{float32(fw), float32(fh)},
		imgui.RenderedDrawData(),
	)
}

func (o *Overlay) Framerate() float32 {
	if o.ctx == nil {
		return 0
	}
	return o.io.Framerate()
}

func (o *Overlay) Shutdown() {
	if o.ctx == nil {
		return
	}
	o.rend.destroy()
	o.input.detach()
	o.ctx.Destroy()
	*o = Overlay{}
}

func (o *Overlay) Begin(title string) bool { return imgui.Begin(title) }

func (o *Overlay) End() { imgui.End() }

func (o *Overlay) Text(text string) { imgui.Text(text) }

func (o *Overlay) SliderFloat(label string, v *float32, min, max float32) bool {
	return imgui.SliderFloat(label, v, min, max)
}

func (o *Overlay) ColorEdit3(label string, c *[3]float32) bool {
	return imgui.ColorEdit3(label, c)
}

func (o *Overlay) Button(label string) bool { return imgui.Button(label) }

func (o *Overlay) DemoWindow(open *bool) { imgui.ShowDemoWindow(open) }

var (
	_ view.Overlay = (*Overlay)(nil)
	_ view.Widgets = (*Overlay)(nil)
)
