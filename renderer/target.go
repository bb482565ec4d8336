package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Target is an RGBA8 color texture attached to a framebuffer.
type Target struct {
	Width  int
	Height int

	fbo       uint32
	textureID uint32
}

// NewTarget creates a complete framebuffer of the given size on the
// current context.
func NewTarget(width, height int) (*Target, error) {
	t := &Target{}
	gl.GenFramebuffers(1, &t.fbo)
	gl.GenTextures(1, &t.textureID)
	if err := t.Resize(width, height); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// Resize reallocates the color texture. It is a no-op when the size is
// unchanged.
func (t *Target) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrFramebufferIncomplete, width, height)
	}
	if width == t.Width && height == t.Height {
		return nil
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: status 0x%x at %dx%d", ErrFramebufferIncomplete, status, width, height)
	}
	t.Width, t.Height = width, height
	return nil
}

func (t *Target) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.Width), int32(t.Height))
}

func (t *Target) unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels returns the bound target's pixels, bottom row first.
func (t *Target) ReadPixels() ([]byte, error) {
	pix := make([]byte, t.Width*t.Height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(t.Width), int32(t.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	if err := checkGLError(); err != nil {
		return nil, err
	}
	return pix, nil
}

// Delete releases the framebuffer and texture.
func (t *Target) Delete() {
	if t == nil {
		return
	}
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.textureID)
}

func checkGLError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		// drain any queued errors
		for i := 0; i < 16 && gl.GetError() != gl.NO_ERROR; i++ {
		}
		return fmt.Errorf("%w: gl error 0x%x", ErrDraw, code)
	}
	return nil
}
