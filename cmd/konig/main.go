// Command konig opens the graph view window and runs its frame loop until
// the window is closed or the process is interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"konig/internal/app"
	"konig/internal/config"
	"konig/internal/overlay"
	"konig/internal/platform/glfwgl"
	"konig/internal/telemetry"
	"konig/internal/view"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args, os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "konig: %v\n", err)
		return 2
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, os.Getenv)
	if err != nil {
		log.Warn("tracing disabled", "err", err)
		tel = nil
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tel.Shutdown(sctx); err != nil {
			log.Warn("trace flush", "err", err)
		}
	}()

	opts := view.Options{
		Title:            cfg.Title,
		Overlay:          cfg.Overlay,
		PollBeforeRender: cfg.PollBeforeRender,
		CloseOnEscape:    cfg.CloseOnEscape,
		Logger:           log,
	}
	if tel != nil {
		opts.Tracer = tel.Tracer()
	}
	if cfg.Overlay {
		opts.GUI = overlay.New()
	}
	session := view.New(glfwgl.New(), opts)

	res, err := app.Run(ctx, session, app.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		MaxFrames:  cfg.MaxFrames,
		Logger:     log,
	})
	if err != nil {
		log.Error("view failed", "err", err)
		return 1
	}
	log.Debug("exit", "frames", res.Frames, "reason", res.Reason)
	return 0
}
