// Package config reads command-line flags with KONIG_* environment
// fallbacks. Flags win over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Window defaults.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTitle  = "Konig"
)

// Config is the resolved startup configuration.
type Config struct {
	Width, Height    int
	Fullscreen       bool
	Title            string
	Overlay          bool
	PollBeforeRender bool
	CloseOnEscape    bool
	MaxFrames        uint64
	LogLevel         slog.Level
}

var ErrInvalid = errors.New("invalid configuration")

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	cfg := Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Title:         DefaultTitle,
		Overlay:       true,
		CloseOnEscape: true,
		LogLevel:      slog.LevelInfo,
	}

	// Environment first so flags override it.
	var errs []error
	envInt := func(key string, dst *int) {
		if s := getenv(key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = v
		}
	}
	envBool := func(key string, dst *bool) {
		if s := getenv(key); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = v
		}
	}
	envInt("KONIG_WIDTH", &cfg.Width)
	envInt("KONIG_HEIGHT", &cfg.Height)
	envBool("KONIG_FULLSCREEN", &cfg.Fullscreen)
	envBool("KONIG_OVERLAY", &cfg.Overlay)
	envBool("KONIG_POLL_FIRST", &cfg.PollBeforeRender)
	envBool("KONIG_ESCAPE_CLOSES", &cfg.CloseOnEscape)
	if s := getenv("KONIG_TITLE"); s != "" {
		cfg.Title = s
	}
	if s := getenv("KONIG_MAX_FRAMES"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("KONIG_MAX_FRAMES: %w", err))
		} else {
			cfg.MaxFrames = v
		}
	}
	level := getenv("KONIG_LOG_LEVEL")
	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	fs := flag.NewFlagSet("konig", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels")
	fs.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "use the primary display's current mode")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fs.BoolVar(&cfg.Overlay, "overlay", cfg.Overlay, "draw the GUI overlay")
	fs.BoolVar(&cfg.PollBeforeRender, "poll-first", cfg.PollBeforeRender, "process events before drawing each frame")
	fs.BoolVar(&cfg.CloseOnEscape, "escape-closes", cfg.CloseOnEscape, "close the window on Escape")
	fs.Uint64Var(&cfg.MaxFrames, "max-frames", cfg.MaxFrames, "stop after this many frames (0 = unlimited)")
	fs.StringVar(&level, "log-level", level, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return Config{}, fmt.Errorf("%w: log level %q", ErrInvalid, level)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the window size. Fullscreen ignores it.
func (c Config) Validate() error {
	if c.Fullscreen {
		return nil
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	return nil
}
