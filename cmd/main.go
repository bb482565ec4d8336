package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/richinsley/goshadergradient/clock"
	"github.com/richinsley/goshadergradient/encoder"
	"github.com/richinsley/goshadergradient/exporter"
	"github.com/richinsley/goshadergradient/glfwcontext"
	"github.com/richinsley/goshadergradient/graphics"
	"github.com/richinsley/goshadergradient/headless"
	"github.com/richinsley/goshadergradient/hud"
	"github.com/richinsley/goshadergradient/options"
	"github.com/richinsley/goshadergradient/output"
	"github.com/richinsley/goshadergradient/params"
	"github.com/richinsley/goshadergradient/renderer"
	"github.com/richinsley/goshadergradient/shader"
)

func init() {
	runtime.LockOSThread()
}

// initialParameters applies the parameter flags on top of the defaults.
// Out of range values are clamped by the store.
func initialParameters(opts *options.ShaderOptions) (*params.Store, error) {
	store, err := params.NewStore(params.Defaults())
	if err != nil {
		return nil, err
	}
	for name, v := range opts.Params {
		if _, err := store.Set(name, *v); err != nil {
			return nil, fmt.Errorf("-%s: %w", name, err)
		}
	}
	if _, err := store.Set("exportResolution", float64(*opts.Resolution)); err != nil {
		return nil, fmt.Errorf("-resolution: %w", err)
	}
	stops, err := params.ParseStops(*opts.Stops)
	if err != nil {
		return nil, fmt.Errorf("-stops: %w", err)
	}
	store.SetStops(stops)
	return store, nil
}

// offscreenFactory prefers an EGL pbuffer, which needs no display server,
// and falls back to a hidden GLFW window.
func offscreenFactory() (graphics.Factory, func(), error) {
	if headless.Available() {
		return headless.New, func() {}, nil
	}
	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	return glfwcontext.NewOffscreen, glfwcontext.TerminateGraphics, nil
}

func runInteractive(opts *options.ShaderOptions, store *params.Store) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(*opts.Width, *opts.Height, "goshadergradient")
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Shutdown()

	status := hud.NewStatus(4 * time.Second)
	r, err := renderer.New(win, store, clock.New(), status, shader.FlowFieldTemplate(), true)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	exp := exporter.New(glfwcontext.NewOffscreen, shader.FlowFieldTemplate(), status, *opts.OutputDir)
	bindKeys(win, r, exp, status)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Println("Starting interactive render loop...")
	r.Run(ctx)
	exp.Wait()
	return nil
}

func runExport(opts *options.ShaderOptions, store *params.Store, aspect float64) error {
	factory, cleanup, err := offscreenFactory()
	if err != nil {
		return err
	}
	defer cleanup()

	exp := exporter.New(factory, shader.FlowFieldTemplate(), hud.NewStatus(0), *opts.OutputDir)
	snap := store.Snapshot()
	t := *opts.ExportTime
	pix, w, h, err := exp.Render(snap.ShaderParameters, aspect, t, int(t*60))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	path, err := output.WritePNG(*opts.OutputDir, pix, w, h, time.Now())
	if err != nil {
		return err
	}
	log.Printf("Export succeeded: %dx%dpx -> %s", w, h, path)
	return nil
}

func runRecord(opts *options.ShaderOptions, store *params.Store) error {
	factory, cleanup, err := offscreenFactory()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, err := factory(*opts.Width, *opts.Height)
	if err != nil {
		return fmt.Errorf("%w: %v", renderer.ErrContextUnavailable, err)
	}
	defer ctx.Shutdown()

	r, err := renderer.New(ctx, store, clock.New(), hud.NewStatus(0), shader.FlowFieldTemplate(), false)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	cfg := encoder.Config{
		Width:      *opts.Width,
		Height:     *opts.Height,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		FFmpegPath: *opts.FFmpegPath,
		Codec:      *opts.Codec,
	}
	if err := r.Record(cfg, *opts.Duration); err != nil {
		return fmt.Errorf("recording failed: %w", err)
	}
	log.Printf("Successfully rendered to %s", cfg.OutputFile)
	return nil
}

func main() {
	defaults := params.Defaults()
	opts := &options.ShaderOptions{
		Help:       flag.Bool("help", false, "Show help message"),
		Mode:       flag.String("mode", "interactive", "Run mode: interactive, export or record"),
		Width:      flag.Int("width", 1280, "Window or recording width"),
		Height:     flag.Int("height", 720, "Window or recording height"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		OutputDir:  flag.String("dir", ".", "Directory exported images are written to"),
		FFmpegPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "Recording codec: h264 or hevc"),

		Resolution: flag.Int("resolution", defaults.ExportResolution, "Export resolution (long edge, pixels)"),
		Aspect:     flag.String("aspect", "16:9", "Aspect ratio for -mode export, W:H or decimal"),
		ExportTime: flag.Float64("time", 0, "Shader time for -mode export, in seconds"),

		Params: make(map[string]*float64),
		Stops:  flag.String("stops", "", "Comma separated CSS colors for the color ramp"),
	}
	for _, f := range params.UniformFields() {
		usage := fmt.Sprintf("Initial %s, %g to %g", f.Name, f.Min, f.Max)
		opts.Params[f.Name] = flag.Float64(f.Name, f.Get(&defaults), usage)
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Procedural Gradient Viewer/Exporter")
		flag.PrintDefaults()
		return
	}

	store, err := initialParameters(opts)
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}
	log.Printf("Gradient stops: %s", params.FormatStops(store.Snapshot().GradientColors))
	aspect, err := output.ParseAspect(*opts.Aspect)
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	switch *opts.Mode {
	case "interactive":
		err = runInteractive(opts, store)
	case "export":
		err = runExport(opts, store, aspect)
	case "record":
		err = runRecord(opts, store)
	default:
		err = fmt.Errorf("unknown mode %q", *opts.Mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}
