package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadergradient/shader"
)

// presenter draws a top-down RGBA frame to the default framebuffer.
type presenter struct {
	program   uint32
	vao       uint32
	vbo       uint32
	textureID uint32
	width     int
	height    int
}

func newPresenter(gles bool) (*presenter, error) {
	prog, err := newProgram(shader.BlitVertexShader(gles), shader.BlitFragmentShader(gles))
	if err != nil {
		return nil, err
	}
	p := &presenter{program: prog}
	p.vao, p.vbo = newQuad(0, shader.QuadVertices)

	gl.GenTextures(1, &p.textureID)
	gl.BindTexture(gl.TEXTURE_2D, p.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.UseProgram(prog)
	gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str("u_texture\x00")), 0)
	gl.UseProgram(0)
	return p, nil
}

// draw uploads pix and blits it over a fbWidth x fbHeight viewport.
func (p *presenter) draw(pix []byte, width, height, fbWidth, fbHeight int) {
	gl.BindTexture(gl.TEXTURE_2D, p.textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if width != p.width || height != p.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		p.width, p.height = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(p.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (p *presenter) delete() {
	gl.DeleteTextures(1, &p.textureID)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
}
