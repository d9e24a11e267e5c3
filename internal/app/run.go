// Package app drives a view from startup to shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
)

// View is a renderable surface with a per-frame update.
type View interface {
	Init(width, height int, fullscreen bool) error
	// Update renders one frame, returning its duration and whether the
	// user asked to quit.
	Update() (dt float64, shouldClose bool)
	Shutdown()
}

// FrameFunc runs after every frame. A non-nil error stops the loop.
type FrameFunc func(dt float64) error

// Config is the surface to open.
type Config struct {
	Width, Height int
	Fullscreen    bool

	// MaxFrames stops the loop after that many frames when positive.
	MaxFrames uint64

	OnFrame FrameFunc
	Logger  *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Frames uint64
	// Reason is why the loop ended: "closed", "cancelled", "max-frames"
	// or "frame-error".
	Reason string
}

// Run initializes v, updates it until it reports a close request, ctx is
// done, MaxFrames is reached or OnFrame fails, then shuts it down. The
// caller must be on the thread that owns the view's context.
func Run(ctx context.Context, v View, cfg Config) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := v.Init(cfg.Width, cfg.Height, cfg.Fullscreen); err != nil {
		return Result{}, fmt.Errorf("view init: %w", err)
	}
	defer v.Shutdown()

	var res Result
	for {
		select {
		case <-ctx.Done():
			res.Reason = "cancelled"
			log.Info("stopping", "reason", res.Reason, "frames", res.Frames)
			return res, nil
		default:
		}

		dt, quit := v.Update()
		res.Frames++

		if cfg.OnFrame != nil {
			if err := cfg.OnFrame(dt); err != nil {
				res.Reason = "frame-error"
				return res, fmt.Errorf("frame %d: %w", res.Frames, err)
			}
		}

		if quit {
			res.Reason = "closed"
			log.Info("stopping", "reason", res.Reason, "frames", res.Frames)
			return res, nil
		}
		if cfg.MaxFrames > 0 && res.Frames >= cfg.MaxFrames {
			res.Reason = "max-frames"
			log.Info("stopping", "reason", res.Reason, "frames", res.Frames)
			return res, nil
		}
	}
}
