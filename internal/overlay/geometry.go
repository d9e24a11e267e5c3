package overlay

import "github.com/inkyblackness/imgui-go/v4"

// orthoProjection maps imgui's top-left pixel space onto clip space.
// Column-major, as glUniformMatrix4fv expects without transpose.
func orthoProjection(w, h float32) [4][4]float32 {
	return [4][4]float32{
		{2.0 / w, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -h, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}
}

// scissorRect converts an imgui clip rect (x1, y1, x2, y2 from the top)
// to a GL scissor box (origin bottom-left).
func scissorRect(clip imgui.Vec4, fbHeight float32) (x, y, w, h int32) {
	x = int32(clip.X)
	y = int32(fbHeight - clip.W)
	w = int32(clip.Z - clip.X)
	h = int32(clip.W - clip.Y)
	return x, y, w, h
}
