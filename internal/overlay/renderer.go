package overlay

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

const vertSrc = `#version 330 core

uniform mat4 uProj;

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

out vec2 vUV;
out vec4 vColor;

void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uProj * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragSrc = `#version 330 core

uniform sampler2D uTex;

in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor * texture(uTex, vUV);
}
` + "\x00"

// renderer draws imgui draw data with an OpenGL 3.3 core context.
type renderer struct {
	prog  uint32
	uProj int32
	uTex  int32

	vao uint32
	vbo uint32
	ebo uint32

	fontTex uint32
}

func newRenderer(fonts imgui.FontAtlas) (*renderer, error) {
	prog, err := buildProgram(
		shaderStage{name: "vertex", kind: gl.VERTEX_SHADER, src: vertSrc},
		shaderStage{name: "fragment", kind: gl.FRAGMENT_SHADER, src: fragSrc},
	)
	if err != nil {
		return nil, err
	}
	r := &renderer{
		prog:  prog,
		uProj: gl.GetUniformLocation(prog, gl.Str("uProj\x00")),
		uTex:  gl.GetUniformLocation(prog, gl.Str("uTex\x00")),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	stride, posOff, uvOff, colOff := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(stride), uintptr(posOff))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(stride), uintptr(uvOff))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, int32(stride), uintptr(colOff))
	gl.BindVertexArray(0)

	r.uploadFonts(fonts)
	return r, nil
}

func (r *renderer) uploadFonts(fonts imgui.FontAtlas) {
	img := fonts.TextureDataRGBA32()

	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Width), int32(img.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, img.Pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	fonts.SetTextureID(imgui.TextureID(r.fontTex))
}

// render draws one frame of imgui output. Display and framebuffer sizes
// differ on high-DPI screens.
func (r *renderer) render(display, framebuffer [2]float32, data imgui.DrawData) {
	if display[0] <= 0 || display[1] <= 0 || framebuffer[0] <= 0 || framebuffer[1] <= 0 {
		return
	}
	data.ScaleClipRects(imgui.Vec2{X: framebuffer[0] / display[0], Y: framebuffer[1] / display[1]})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(framebuffer[0]), int32(framebuffer[1]))

	proj := orthoProjection(display[0], display[1])
	gl.UseProgram(r.prog)
	gl.Uniform1i(r.uTex, 0)
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0][0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)

	indexType := uint32(gl.UNSIGNED_SHORT)
	indexSize := imgui.IndexBufferLayout()
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range data.CommandLists() {
		vb, vbSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vbSize, vb, gl.STREAM_DRAW)

		ib, ibSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, ibSize, ib, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			x, y, w, h := scissorRect(cmd.ClipRect(), framebuffer[1])
			if w <= 0 || h <= 0 {
				continue
			}
			gl.Scissor(x, y, w, h)
			gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType,
				uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
}

func (r *renderer) destroy() {
	gl.DeleteTextures(1, &r.fontTex)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.prog)
	*r = renderer{}
}

// shaderStage is one compile step of the overlay program.
type shaderStage struct {
	name string
	kind uint32
	src  string
}

// buildProgram compiles each stage and links them. Shader objects never
// outlive the call; the program is deleted again if linking fails.
func buildProgram(stages ...shaderStage) (uint32, error) {
	prog := gl.CreateProgram()
	shaders := make([]uint32, 0, len(stages))
	release := func() {
		for _, sh := range shaders {
			gl.DetachShader(prog, sh)
			gl.DeleteShader(sh)
		}
	}

	for _, st := range stages {
		sh := gl.CreateShader(st.kind)
		src, free := gl.Strs(st.src)
		gl.ShaderSource(sh, 1, src, nil)
		free()
		gl.CompileShader(sh)
		gl.AttachShader(prog, sh)
		shaders = append(shaders, sh)

		var ok int32
		gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
		if ok != gl.TRUE {
			msg := infoLog(func(n *int32) { gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, n) },
				func(n int32, buf *uint8) { gl.GetShaderInfoLog(sh, n, nil, buf) })
			release()
			gl.DeleteProgram(prog)
			return 0, fmt.Errorf("overlay: %s shader: %s", st.name, msg)
		}
	}

	gl.LinkProgram(prog)
	release()

	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok != gl.TRUE {
		msg := infoLog(func(n *int32) { gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, n) },
			func(n int32, buf *uint8) { gl.GetProgramInfoLog(prog, n, nil, buf) })
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("overlay: link: %s", msg)
	}
	return prog, nil
}

// infoLog reads a GL info log through the given length and text getters.
func infoLog(length func(*int32), text func(int32, *uint8)) string {
	var n int32
	length(&n)
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	text(n, &buf[0])
	return strings.TrimSpace(strings.TrimRight(string(buf), "\x00"))
}
