package view

import "errors"

var errFake = errors.New("fake failure")

// fakePlatform records every call so lifecycle tests can count them.
type fakePlatform struct {
	mode VideoMode

	initErr   error
	modeErr   error
	createErr error
	makeErr   error

	inits      int
	terminates int
	creates    int
	polls      int
	interval   int
	now        float64
	step       float64

	calls   []string
	specs   []WindowSpec
	windows []*fakeWindow

	// onPoll runs inside PollEvents, standing in for OS event delivery.
	onPoll func(w *fakeWindow)
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		mode: VideoMode{Width: 2560, Height: 1440, RefreshRate: 60},
		step: 1.0 / 60.0,
	}
}

func (p *fakePlatform) Init() error {
	p.inits++
	p.calls = append(p.calls, "init")
	return p.initErr
}

func (p *fakePlatform) Terminate() {
	p.terminates++
	p.calls = append(p.calls, "terminate")
}

func (p *fakePlatform) PrimaryVideoMode() (VideoMode, error) {
	return p.mode, p.modeErr
}

func (p *fakePlatform) CreateWindow(spec WindowSpec) (Window, error) {
	p.specs = append(p.specs, spec)
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.creates++
	p.calls = append(p.calls, "create")
	w := &fakeWindow{p: p, w: spec.Width, h: spec.Height}
	p.windows = append(p.windows, w)
	return w, nil
}

func (p *fakePlatform) SwapInterval(frames int) { p.interval = frames }

func (p *fakePlatform) PollEvents() {
	p.polls++
	p.calls = append(p.calls, "poll")
	if p.onPoll != nil && len(p.windows) > 0 {
		p.onPoll(p.windows[len(p.windows)-1])
	}
}

func (p *fakePlatform) Time() float64 {
	p.now += p.step
	return p.now
}

func (p *fakePlatform) destroys() int {
	n := 0
	for _, w := range p.windows {
		n += w.destroyed
	}
	return n
}

type fakeWindow struct {
	p *fakePlatform

	w, h      int
	current   bool
	clear     Color
	clears    int
	swaps     int
	close     bool
	destroyed int
}

func (w *fakeWindow) MakeContextCurrent() error {
	if w.p.makeErr != nil {
		return w.p.makeErr
	}
	w.current = true
	return nil
}

func (w *fakeWindow) SetClearColor(c Color) { w.clear = c }

func (w *fakeWindow) Clear() {
	w.clears++
	w.p.calls = append(w.p.calls, "clear")
}

func (w *fakeWindow) SwapBuffers() {
	w.swaps++
	w.p.calls = append(w.p.calls, "swap")
}

func (w *fakeWindow) ShouldClose() bool { return w.close }
func (w *fakeWindow) SetShouldClose(v bool) { w.close = v }
func (w *fakeWindow) Size() (int, int) { return w.w, w.h }
func (w *fakeWindow) FramebufferSize() (int, int) { return w.w, w.h }

func (w *fakeWindow) Destroy() {
	w.destroyed++
	w.p.calls = append(w.p.calls, "destroy")
}

// fakeOverlay is an Overlay whose widgets are scripted per test.
type fakeOverlay struct {
	initErr  error
	inits    int
	frames   int
	renders  int
	shutdown int
	fps      float32
	window   Window
	widgets  *fakeWidgets
	calls    *[]string
}

func newFakeOverlay(calls *[]string) *fakeOverlay {
	return &fakeOverlay{widgets: &fakeWidgets{}, fps: 60, calls: calls}
}

func (o *fakeOverlay) Init(w Window) error {
	o.inits++
	o.window = w
	return o.initErr
}

func (o *fakeOverlay) NewFrame() {
	o.frames++
	if o.calls != nil {
		*o.calls = append(*o.calls, "gui-frame")
	}
}

func (o *fakeOverlay) Widgets() Widgets { return o.widgets }

func (o *fakeOverlay) Render() {
	o.renders++
	if o.calls != nil {
		*o.calls = append(*o.calls, "gui-render")
	}
}

func (o *fakeOverlay) Framerate() float32 { return o.fps }
func (o *fakeOverlay) Shutdown() { o.shutdown++ }

// fakeWidgets logs declared widgets and applies scripted interactions.
type fakeWidgets struct {
	labels []string

	slideTo  *float32
	pickRGB  *[3]float32
	clicks   int
	demoOpen int
}

func (f *fakeWidgets) Begin(title string) bool {
	f.labels = append(f.labels, "begin:"+title)
	return true
}

func (f *fakeWidgets) End() { f.labels = append(f.labels, "end") }

func (f *fakeWidgets) Text(text string) { f.labels = append(f.labels, "text:"+text) }

func (f *fakeWidgets) SliderFloat(label string, v *float32, min, max float32) bool {
	f.labels = append(f.labels, "slider:"+label)
	if f.slideTo != nil {
		*v = *f.slideTo
		f.slideTo = nil
		return true
	}
	return false
}

func (f *fakeWidgets) ColorEdit3(label string, c *[3]float32) bool {
	f.labels = append(f.labels, "color:"+label)
	if f.pickRGB != nil {
		*c = *f.pickRGB
		f.pickRGB = nil
		return true
	}
	return false
}

func (f *fakeWidgets) Button(label string) bool {
	f.labels = append(f.labels, "button:"+label)
	if f.clicks > 0 {
		f.clicks--
		return true
	}
	return false
}

func (f *fakeWidgets) DemoWindow(open *bool) { f.demoOpen++ }
