package shader

// Present pass. The graded frame is uploaded as a texture and drawn to the
// window with these.

const blitVertexSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentSourceGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

const blitVertexSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentSourceGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

// BlitVertexShader maps the present quad to texture coordinates.
func BlitVertexShader(isGLES bool) string {
	if isGLES {
		return blitVertexSourceGLES
	}
	return blitVertexSourceGL
}

// BlitFragmentShader samples u_texture and flips it vertically, since the
// presented frames hold top-down rows.
func BlitFragmentShader(isGLES bool) string {
	if isGLES {
		return blitFragmentSourceGLES
	}
	return blitFragmentSourceGL
}
