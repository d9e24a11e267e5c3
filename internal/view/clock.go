package view

// FrameClock measures the frame rate over a rolling window of frame times.
type FrameClock struct {
	samples [clockWindow]float64
	next    int
	count   int
	sum     float64
	last    float64
	started bool
}

const clockWindow = 120

// Tick records a frame boundary at time now (seconds).
func (c *FrameClock) Tick(now float64) {
	if !c.started {
		c.started = true
		c.last = now
		return
	}
	d := now - c.last
	c.last = now
	if d < 0 {
		d = 0
	}
	c.sum -= c.samples[c.next]
	c.samples[c.next] = d
	c.sum += d
	c.next = (c.next + 1) % clockWindow
	if c.count < clockWindow {
		c.count++
	}
}

// Framerate returns frames per second, or 0 before two ticks.
func (c *FrameClock) Framerate() float32 {
	if c.count == 0 || c.sum <= 0 {
		return 0
	}
	return float32(float64(c.count) / c.sum)
}

// Reset forgets all samples.
func (c *FrameClock) Reset() {
	*c = FrameClock{}
}

// DeltaFromFramerate converts a frame rate to a frame duration in seconds.
func DeltaFromFramerate(fps float32) float64 {
	if fps <= 0 {
		return 0
	}
	return 1.0 / float64(fps)
}
