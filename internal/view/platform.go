package view

// VideoMode is a display's current resolution.
type VideoMode struct {
	Width, Height int
	RefreshRate   int
}

// WindowSpec describes the window and context to create.
type WindowSpec struct {
	Width, Height int
	Title         string

	// Fullscreen attaches the window to the primary display.
	Fullscreen bool

	ContextMajor  int
	ContextMinor  int
	CoreProfile   bool
	ForwardCompat bool
	Visible       bool
	CloseOnEscape bool
}

// Platform is the windowing subsystem. All methods must be called on the
// thread that called Init.
type Platform interface {
	Init() error
	Terminate()
	PrimaryVideoMode() (VideoMode, error)
	CreateWindow(spec WindowSpec) (Window, error)
	SwapInterval(frames int)
	PollEvents()
	// Time returns seconds since Init.
	Time() float64
}

// Window is an OS window together with its GL context.
type Window interface {
	MakeContextCurrent() error
	SetClearColor(c Color)
	Clear()
	SwapBuffers()
	ShouldClose() bool
	SetShouldClose(v bool)
	Size() (w, h int)
	FramebufferSize() (w, h int)
	Destroy()
}

// Overlay is an immediate-mode GUI layer drawn on top of the cleared frame.
type Overlay interface {
	Init(w Window) error
	NewFrame()
	Widgets() Widgets
	Render()
	// Framerate is the overlay's rolling average in frames per second.
	Framerate() float32
	Shutdown()
}

// Color is a linear RGBA color with components in 0..1.
type Color struct {
	R, G, B, A float32
}

// RGB8 builds an opaque color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255.0, float32(g) / 255.0, float32(b) / 255.0, 1.0}
}
