package overlay

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

var mouseButtons = [3]glfw.MouseButton{glfw.MouseButton1, glfw.MouseButton2, glfw.MouseButton3}

// input feeds GLFW window events into the imgui IO state.
type input struct {
	io     imgui.IO
	window *glfw.Window

	time        float64
	justPressed [len(mouseButtons)]bool
}

func newInput(io imgui.IO, window *glfw.Window) *input {
	in := &input{io: io, window: window}
	in.mapKeys()
	window.SetMouseButtonCallback(in.mouseButton)
	window.SetScrollCallback(in.scroll)
	window.SetKeyCallback(in.key)
	window.SetCharCallback(in.char)
	return in
}

func (in *input) detach() {
	in.window.SetMouseButtonCallback(nil)
	in.window.SetScrollCallback(nil)
	in.window.SetKeyCallback(nil)
	in.window.SetCharCallback(nil)
}

func (in *input) mapKeys() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for k, v := range keys {
		in.io.KeyMap(k, int(v))
	}
}

// newFrame updates display size, timing and mouse state before imgui.NewFrame.
func (in *input) newFrame() {
	w, h := in.window.GetSize()
	in.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	now := glfw.GetTime()
	if in.time > 0 {
		in.io.SetDeltaTime(float32(now - in.time))
	}
	in.time = now

	if in.window.GetAttrib(glfw.Focused) != 0 {
		x, y := in.window.GetCursorPos()
		in.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		in.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	// A press and release within one frame still registers as a click.
	for i, b := range mouseButtons {
		down := in.justPressed[i] || in.window.GetMouseButton(b) == glfw.Press
		in.io.SetMouseButtonDown(i, down)
		in.justPressed[i] = false
	}
}

func (in *input) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	for i, b := range mouseButtons {
		if b == button {
			in.justPressed[i] = true
		}
	}
}

func (in *input) scroll(_ *glfw.Window, x, y float64) {
	in.io.AddMouseWheelDelta(float32(x), float32(y))
}

// keyIndex maps a GLFW key to imgui's KeysDown index. KeyUnknown (-1) has no
// slot.
func keyIndex(key glfw.Key) (int, bool) {
	if key < 0 {
		return 0, false
	}
	return int(key), true
}

func (in *input) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	idx, ok := keyIndex(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		in.io.KeyPress(idx)
	case glfw.Release:
		in.io.KeyRelease(idx)
	}
	in.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	in.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	in.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	in.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (in *input) char(_ *glfw.Window, char rune) {
	in.io.AddInputCharacters(string(char))
}
