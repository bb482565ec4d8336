package graphics

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// GetMouseInput returns the current mouse state: x, y, clickX, clickY
	GetMouseInput() [4]float32
	// IsGLES reports whether shaders must be emitted as ESSL.
	IsGLES() bool
}

// Factory creates an independent offscreen context of at least the given
// framebuffer size. The returned context is current on the calling thread.
type Factory func(width, height int) (Context, error)
