package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/shader"
	xlate "github.com/richinsley/goshadergradient/translator"
)

// Program is a linked gradient program bound to the context that was
// current when it was built. It owns its quad geometry and must be deleted
// on that same context.
type Program struct {
	Mode params.MovementMode

	id  uint32
	vao uint32
	vbo uint32

	resolutionLoc         int32
	timeLoc               int32
	frameLoc              int32
	mouseLoc              int32
	iChannelResolutionLoc int32
	paramLocs             []paramLoc
}

type paramLoc struct {
	field params.Field
	loc   int32
}

// Build transforms template for p and compiles it on the current context.
func Build(template string, p params.ShaderParameters, gles bool) (*Program, error) {
	src, err := shader.Build(template, p)
	if err != nil {
		return nil, err
	}
	return CompileProgram(src, gles)
}

// CompileProgram translates, compiles and links src on the current context
// and binds the fullscreen quad to its position attribute.
func CompileProgram(src shader.Source, gles bool) (*Program, error) {
	vs, err := xlate.Translate(src.Vertex, "vertex", gles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslate, err)
	}
	fs, err := xlate.Translate(src.Fragment, "fragment", gles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslate, err)
	}

	id, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return nil, err
	}
	p := &Program{Mode: src.Mode, id: id}

	attrib := gl.GetAttribLocation(id, gl.Str(vs.MappedName(shader.PositionAttribute)+"\x00"))
	if attrib < 0 {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s", ErrMissingAttribute, shader.PositionAttribute)
	}
	p.vao, p.vbo = newQuad(uint32(attrib), shader.QuadVertices)

	gl.UseProgram(id)
	p.resolutionLoc = getUniformLocation(fs, id, "iResolution")
	p.timeLoc = getUniformLocation(fs, id, "iTime")
	p.frameLoc = getUniformLocation(fs, id, "iFrame")
	p.mouseLoc = getUniformLocation(fs, id, "iMouse")
	p.iChannelResolutionLoc = getUniformLocation(fs, id, "iChannelResolution[0]")
	if p.iChannelResolutionLoc < 0 {
		p.iChannelResolutionLoc = getUniformLocation(fs, id, "iChannelResolution")
	}
	for _, f := range params.UniformFields() {
		p.paramLocs = append(p.paramLocs, paramLoc{field: f, loc: getUniformLocation(fs, id, f.Uniform)})
	}
	gl.UseProgram(0)
	return p, nil
}

// Delete releases the program and its geometry.
func (p *Program) Delete() {
	if p == nil {
		return
	}
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.id)
}

// getUniformLocation returns -1 when the translator optimized the uniform away.
func getUniformLocation(t *xlate.Translated, program uint32, name string) int32 {
	if _, ok := t.Mapped[name]; !ok {
		return -1
	}
	return gl.GetUniformLocation(program, gl.Str(t.MappedName(name)+"\x00"))
}

// newQuad uploads vertices as a triangle strip of vec2 positions.
func newQuad(attrib uint32, vertices []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointer(attrib, 2, gl.FLOAT, false, 2*4, nil)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrCompile, strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}
