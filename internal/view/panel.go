package view

import "fmt"

// Widgets is the subset of an immediate-mode GUI the demo panel uses.
type Widgets interface {
	Begin(title string) bool
	End()
	Text(text string)
	SliderFloat(label string, v *float32, min, max float32) bool
	ColorEdit3(label string, c *[3]float32) bool
	Button(label string) bool
	DemoWindow(open *bool)
}

// Panel holds the demo panel's widget values between frames.
type Panel struct {
	Value    float32
	Color    [3]float32
	ShowDemo bool
}

// NewPanel returns a panel whose color editor starts at c.
func NewPanel(c Color) *Panel {
	return &Panel{Color: [3]float32{c.R, c.G, c.B}}
}

// Declare emits the panel for one frame and reports whether the color changed.
func (p *Panel) Declare(w Widgets, fps float32) (colorChanged bool) {
	w.Begin("Konig")
	w.Text("Hello, world!")
	w.SliderFloat("float", &p.Value, 0.0, 1.0)
	colorChanged = w.ColorEdit3("clear color", &p.Color)
	if w.Button("Test Window") {
		p.ShowDemo = !p.ShowDemo
	}
	w.Text(FramerateText(fps))
	w.End()

	if p.ShowDemo {
		w.DemoWindow(&p.ShowDemo)
	}
	return colorChanged
}

// ClearColor returns the edited color as an opaque clear color.
func (p *Panel) ClearColor() Color {
	return Color{p.Color[0], p.Color[1], p.Color[2], 1.0}
}

// FramerateText formats the frame time readout.
func FramerateText(fps float32) string {
	if fps <= 0 {
		return "Application average -- ms/frame (0.0 FPS)"
	}
	return fmt.Sprintf("Application average %.3f ms/frame (%.1f FPS)", 1000.0/fps, fps)
}
