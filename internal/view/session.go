// Package view owns a single on-screen rendering surface and drives its
// frame loop: clear, optional GUI overlay, swap, poll.
//
// A Session is not safe for concurrent use. Init, Update and Shutdown must
// all run on the goroutine that called Init, and that goroutine must be
// locked to its OS thread (runtime.LockOSThread) since it owns the current
// GL context.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrAlreadyInitialized = errors.New("view: session already initialized")
	ErrClosed             = errors.New("view: session closed")
	ErrInvalidSize        = errors.New("view: invalid window size")
	ErrNoOverlay          = errors.New("view: overlay enabled but none provided")
)

// Context version requested from the platform.
const (
	GLMajor = 3
	GLMinor = 3
)

// Defaults.
const DefaultTitle = "Konig"

var (
	DefaultClearColor = Color{0.7, 0.7, 0.7, 1.0}
	DefaultPanelColor = RGB8(114, 144, 154)
)

// Options configures a Session.
type Options struct {
	Title string

	// Overlay enables the GUI layer. GUI must be set when it is true.
	Overlay bool
	GUI     Overlay

	// PollBeforeRender processes events at the start of the frame instead
	// of after the swap.
	PollBeforeRender bool

	// CloseOnEscape lets the Escape key request a close.
	CloseOnEscape bool

	// ClearColor is the initial background. Zero means DefaultClearColor.
	ClearColor Color

	Logger *slog.Logger
	Tracer trace.Tracer
}

// Session is one window and its per-frame loop.
type Session struct {
	platform Platform
	opts     Options
	log      *slog.Logger
	tracer   trace.Tracer

	state  State
	window Window
	clear  Color
	panel  *Panel
	clock  FrameClock
	frames uint64
}

// New returns an uninitialized session on platform p.
func New(p Platform, opts Options) *Session {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ClearColor == (Color{}) {
		opts.ClearColor = DefaultClearColor
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("konig/view")
	}
	return &Session{
		platform: p,
		opts:     opts,
		log:      log.With("component", "view"),
		tracer:   tracer,
	}
}

// State reports the lifecycle state.
func (s *Session) State() State { return s.state }

// Frames returns the number of completed Update calls.
func (s *Session) Frames() uint64 { return s.frames }

// Size returns the window size, or 0,0 when no window exists.
func (s *Session) Size() (w, h int) {
	if s.window == nil {
		return 0, 0
	}
	return s.window.Size()
}

// ClearColor returns the current background color.
func (s *Session) ClearColor() Color { return s.clear }

// Panel returns the demo panel state, nil without an overlay.
func (s *Session) Panel() *Panel { return s.panel }

// Init creates the window and context. With fullscreen set the window
// takes the primary display's current mode and width/height are ignored.
// On failure everything created so far is released and the session stays
// uninitialized.
func (s *Session) Init(width, height int, fullscreen bool) (err error) {
	switch s.state {
	case StateRunning:
		return ErrAlreadyInitialized
	case StateClosed:
		return ErrClosed
	}
	if s.opts.Overlay && s.opts.GUI == nil {
		return ErrNoOverlay
	}

	_, span := s.tracer.Start(context.Background(), "view.init",
		trace.WithAttributes(
			attribute.Int("view.width", width),
			attribute.Int("view.height", height),
			attribute.Bool("view.fullscreen", fullscreen),
			attribute.Bool("view.overlay", s.opts.Overlay),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !fullscreen && (width <= 0 || height <= 0) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	if err := s.platform.Init(); err != nil {
		return fmt.Errorf("platform init: %w", err)
	}

	spec := WindowSpec{
		Width:         width,
		Height:        height,
		Title:         s.opts.Title,
		ContextMajor:  GLMajor,
		ContextMinor:  GLMinor,
		CoreProfile:   true,
		ForwardCompat: true,
		Visible:       true,
		CloseOnEscape: s.opts.CloseOnEscape,
	}
	if fullscreen {
		mode, err := s.platform.PrimaryVideoMode()
		if err != nil {
			s.platform.Terminate()
			return fmt.Errorf("primary video mode: %w", err)
		}
		spec.Width = mode.Width
		spec.Height = mode.Height
		spec.Fullscreen = true
	}

	window, err := s.platform.CreateWindow(spec)
	if err != nil {
		s.platform.Terminate()
		return fmt.Errorf("create window: %w", err)
	}
	if err := window.MakeContextCurrent(); err != nil {
		window.Destroy()
		s.platform.Terminate()
		return fmt.Errorf("make context current: %w", err)
	}
	s.platform.SwapInterval(1)

	s.clear = s.opts.ClearColor
	window.SetClearColor(s.clear)

	if s.opts.Overlay {
		if err := s.opts.GUI.Init(window); err != nil {
			window.Destroy()
			s.platform.Terminate()
			return fmt.Errorf("overlay init: %w", err)
		}
		s.panel = NewPanel(DefaultPanelColor)
	}

	s.window = window
	s.frames = 0
	s.clock.Reset()
	s.state = StateRunning

	s.log.Info("view started",
		"width", spec.Width, "height", spec.Height,
		"fullscreen", fullscreen, "overlay", s.opts.Overlay,
		"pollBeforeRender", s.opts.PollBeforeRender)
	return nil
}

// Update renders one frame and reports the frame duration and whether the
// window was asked to close. Outside the running state it returns 0, true.
func (s *Session) Update() (dt float64, shouldClose bool) {
	if s.state != StateRunning {
		s.log.Warn("update on inactive session", "state", s.state)
		return 0, true
	}

	if s.opts.PollBeforeRender {
		s.platform.PollEvents()
	}

	s.window.Clear()

	if s.opts.Overlay {
		gui := s.opts.GUI
		gui.NewFrame()
		if s.panel.Declare(gui.Widgets(), gui.Framerate()) {
			s.clear = s.panel.ClearColor()
			s.window.SetClearColor(s.clear)
		}
		gui.Render()
	}

	s.window.SwapBuffers()
	s.clock.Tick(s.platform.Time())

	if !s.opts.PollBeforeRender {
		s.platform.PollEvents()
	}

	var fps float32
	if s.opts.Overlay {
		fps = s.opts.GUI.Framerate()
	} else {
		fps = s.clock.Framerate()
	}
	s.frames++

	return DeltaFromFramerate(fps), s.window.ShouldClose()
}

// RequestClose flags the window for closing; the next Update reports it.
func (s *Session) RequestClose() {
	if s.state == StateRunning {
		s.window.SetShouldClose(true)
	}
}

// Shutdown tears down the overlay, destroys the window and terminates the
// platform. It is safe to call more than once and before Init.
func (s *Session) Shutdown() {
	if s.state != StateRunning {
		return
	}

	_, span := s.tracer.Start(context.Background(), "view.shutdown",
		trace.WithAttributes(attribute.Int64("view.frames", int64(s.frames))))
	defer span.End()

	if s.opts.Overlay {
		s.opts.GUI.Shutdown()
	}
	s.window.Destroy()
	s.window = nil
	s.platform.Terminate()
	s.panel = nil
	s.state = StateClosed

	s.log.Info("view closed", "frames", s.frames)
}
