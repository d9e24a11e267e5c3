package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	initErr  error
	closeAt  int
	dt       float64
	onUpdate func(n int)

	inits     int
	updates   int
	shutdowns int
	w, h      int
	full      bool
}

func (v *stubView) Init(w, h int, full bool) error {
	v.inits++
	v.w, v.h, v.full = w, h, full
	return v.initErr
}

func (v *stubView) Update() (float64, bool) {
	v.updates++
	if v.onUpdate != nil {
		v.onUpdate(v.updates)
	}
	return v.dt, v.closeAt > 0 && v.updates >= v.closeAt
}

func (v *stubView) Shutdown() { v.shutdowns++ }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRunUntilClosed(t *testing.T) {
	v := &stubView{closeAt: 3}
	res, err := Run(context.Background(), v, Config{Width: 800, Height: 600, Logger: quiet()})

	require.NoError(t, err)
	assert.Equal(t, Result{Frames: 3, Reason: "closed"}, res)
	assert.Equal(t, 1, v.inits)
	assert.Equal(t, 1, v.shutdowns)
	assert.Equal(t, 800, v.w)
	assert.Equal(t, 600, v.h)
	assert.False(t, v.full)
}

func TestRunInitFailure(t *testing.T) {
	boom := errors.New("no display")
	v := &stubView{initErr: boom}
	_, err := Run(context.Background(), v, Config{Width: 1, Height: 1, Fullscreen: true, Logger: quiet()})

	assert.ErrorIs(t, err, boom)
	assert.True(t, v.full)
	assert.Zero(t, v.updates)
	assert.Zero(t, v.shutdowns)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := &stubView{onUpdate: func(n int) {
		if n == 5 {
			cancel()
		}
	}}
	res, err := Run(ctx, v, Config{Width: 10, Height: 10, Logger: quiet()})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Reason)
	assert.Equal(t, uint64(5), res.Frames)
	assert.Equal(t, 1, v.shutdowns)
}

func TestRunMaxFrames(t *testing.T) {
	v := &stubView{}
	res, err := Run(context.Background(), v, Config{Width: 10, Height: 10, MaxFrames: 4, Logger: quiet()})

	require.NoError(t, err)
	assert.Equal(t, Result{Frames: 4, Reason: "max-frames"}, res)
	assert.Equal(t, 1, v.shutdowns)
}

func TestRunFrameHook(t *testing.T) {
	v := &stubView{dt: 0.5}
	stop := errors.New("stop")
	var seen []float64

	res, err := Run(context.Background(), v, Config{
		Width: 10, Height: 10, Logger: quiet(),
		OnFrame: func(dt float64) error {
			seen = append(seen, dt)
			if len(seen) == 2 {
				return stop
			}
			return nil
		},
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, "frame-error", res.Reason)
	assert.Equal(t, []float64{0.5, 0.5}, seen)
	assert.Equal(t, 1, v.shutdowns)
}
