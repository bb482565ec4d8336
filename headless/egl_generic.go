//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/goshadergradient/graphics"
)

// Available reports whether EGL pbuffer contexts can be created here.
func Available() bool { return false }

func New(width, height int) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
