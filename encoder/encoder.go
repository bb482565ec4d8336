// Package encoder streams rendered RGBA frames into an ffmpeg process.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Config describes the video being recorded.
type Config struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFmpegPath string
	Codec      string // "h264" (default) or "hevc"
}

// Frame is one top-down RGBA frame.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Encoder is the consumer side of the record pipeline. The render loop
// produces frames into it; a goroutine pipes them to ffmpeg.
type Encoder struct {
	cfg    Config
	frames chan *Frame
	done   chan error
}

// GetArgs returns the ffmpeg input and output arguments for cfg.
func GetArgs(cfg Config) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": cfg.FPS,
	}

	outputArgs = ffmpeg.KwArgs{"pix_fmt": "yuv420p"}
	hevc := cfg.Codec == "hevc"
	switch runtime.GOOS {
	case "darwin":
		if hevc {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
		outputArgs["b:v"] = "25M"
	default:
		if hevc {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
		outputArgs["crf"] = "18"
	}
	if hevc && strings.HasSuffix(cfg.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// Start launches ffmpeg and returns an encoder accepting frames.
func Start(cfg Config) (*Encoder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid recording geometry %dx%d@%d", cfg.Width, cfg.Height, cfg.FPS)
	}
	if cfg.OutputFile == "" {
		return nil, errors.New("no output file")
	}
	e := &Encoder{
		cfg:    cfg,
		frames: make(chan *Frame, 4),
		done:   make(chan error, 1),
	}
	go e.run()
	return e, nil
}

func (e *Encoder) run() {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := GetArgs(e.cfg)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(e.cfg.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if e.cfg.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(e.cfg.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock a writer stuck on a dead process
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	frameSize := e.cfg.Width * e.cfg.Height * 4
	var writeErr error
	for frame := range e.frames {
		if writeErr != nil {
			continue
		}
		if len(frame.Pixels) != frameSize {
			writeErr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), frameSize)
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to ffmpeg: %v", frame.PTS, err)
			writeErr = err
		}
	}
	pipeWriter.Close()

	err := <-errc
	if err == nil {
		err = writeErr
	}
	e.done <- err
}

// WriteFrame queues a frame. The encoder takes ownership of pix.
func (e *Encoder) WriteFrame(pix []byte, pts int64) {
	e.frames <- &Frame{Pixels: pix, PTS: pts}
}

// Close flushes queued frames, waits for ffmpeg to exit and returns its
// error, if any.
func (e *Encoder) Close() error {
	close(e.frames)
	if err := <-e.done; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
