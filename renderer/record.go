package renderer

import (
	"fmt"
	"log"
	"math"

	"github.com/richinsley/goshadergradient/encoder"
)

// Record renders duration seconds at cfg.FPS with a fixed time step and
// streams the frames to ffmpeg. Frame i is rendered at time i/FPS.
func (r *Renderer) Record(cfg encoder.Config, duration float64) error {
	if cfg.FPS <= 0 || duration <= 0 {
		return fmt.Errorf("invalid recording length %vs at %d fps", duration, cfg.FPS)
	}
	r.context.MakeCurrent()
	if err := r.Resize(cfg.Width, cfg.Height); err != nil {
		return err
	}

	enc, err := encoder.Start(cfg)
	if err != nil {
		return err
	}

	totalFrames := int(math.Ceil(duration * float64(cfg.FPS)))
	timeStep := 1.0 / float64(cfg.FPS)
	log.Printf("Recording %d frames at %dx%d to %s", totalFrames, cfg.Width, cfg.Height, cfg.OutputFile)

	var renderErr error
	for i := 0; i < totalFrames; i++ {
		pix := make([]byte, cfg.Width*cfg.Height*4)
		in := FrameInputs{Time: float64(i) * timeStep, Frame: i}
		if err := r.RenderInto(pix, in); err != nil {
			renderErr = fmt.Errorf("frame %d: %w", i, err)
			break
		}
		enc.WriteFrame(pix, int64(i))
	}

	encErr := enc.Close()
	if renderErr != nil {
		return renderErr
	}
	return encErr
}
