package options

// ShaderOptions holds the command line surface. Pointer fields mirror the
// flag package so values can be bound directly.
type ShaderOptions struct {
	Help       *bool
	Mode       *string // "interactive", "record" or "export"
	Width      *int
	Height     *int
	Duration   *float64
	FPS        *int
	OutputFile *string
	OutputDir  *string
	FFmpegPath *string
	Codec      *string

	// Export mode
	Resolution *int
	Aspect     *string
	ExportTime *float64

	// Initial parameter values, keyed by parameter name
	Params map[string]*float64
	Stops  *string
}
