package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadergradient/params"
)

// FrameInputs are the per-frame standard inputs.
type FrameInputs struct {
	Width  int
	Height int
	Time   float64
	Frame  int
	Mouse  [4]float32
}

// setUniforms uploads the standard inputs and every parameter uniform.
// The program must be in use.
func (p *Program) setUniforms(snap *params.ShaderParameters, in FrameInputs) {
	if p.resolutionLoc != -1 {
		gl.Uniform2f(p.resolutionLoc, float32(in.Width), float32(in.Height))
	}
	if p.timeLoc != -1 {
		gl.Uniform1f(p.timeLoc, float32(in.Time))
	}
	if p.frameLoc != -1 {
		gl.Uniform1i(p.frameLoc, int32(in.Frame))
	}
	if p.mouseLoc != -1 {
		gl.Uniform4f(p.mouseLoc, in.Mouse[0], in.Mouse[1], in.Mouse[2], in.Mouse[3])
	}
	if p.iChannelResolutionLoc != -1 {
		var res [12]float32
		gl.Uniform3fv(p.iChannelResolutionLoc, 4, &res[0])
	}
	for _, pl := range p.paramLocs {
		if pl.loc == -1 {
			continue
		}
		v := pl.field.Get(snap)
		if pl.field.Kind == params.KindInt {
			gl.Uniform1i(pl.loc, int32(v))
		} else {
			gl.Uniform1f(pl.loc, float32(v))
		}
	}
}

// Draw renders one frame of p into t and reads it back bottom-up into a
// buffer of t's size. Any GL error raised by the draw is returned as
// ErrDraw and no pixels are returned.
func (p *Program) Draw(t *Target, snap *params.ShaderParameters, in FrameInputs) ([]byte, error) {
	in.Width, in.Height = t.Width, t.Height
	t.bind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(p.id)
	p.setUniforms(snap, in)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if err := checkGLError(); err != nil {
		t.unbind()
		return nil, err
	}
	pix, err := t.ReadPixels()
	t.unbind()
	return pix, err
}
