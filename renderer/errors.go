package renderer

import (
	"errors"

	"github.com/richinsley/goshadergradient/shader"
)

// Failure kinds surfaced by program builds, frames and exports. Wrapped
// errors carry the driver or translator diagnostic.
var (
	ErrContextUnavailable    = errors.New("graphics context unavailable")
	ErrTransformInvariant    = shader.ErrTransformInvariant
	ErrTranslate             = errors.New("shader translation failed")
	ErrCompile               = errors.New("shader compile failed")
	ErrLink                  = errors.New("program link failed")
	ErrFramebufferIncomplete = errors.New("framebuffer incomplete")
	ErrDraw                  = errors.New("draw failed")
	ErrMissingAttribute      = errors.New("missing vertex attribute")
)
