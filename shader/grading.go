package shader

// GradeStage is one step of the color grading chain appended to the entry
// point. Stages run in table order on the linear color `col`.
type GradeStage struct {
	Name string
	Code string
}

var gradeStages = []GradeStage{
	{
		Name: "rgb multipliers",
		Code: `
    col.r *= uRgbMultiplierR;
    col.g *= uRgbMultiplierG;
    col.b *= uRgbMultiplierB;`,
	},
	{
		Name: "color offset",
		Code: `
    col += uColorOffset;`,
	},
	{
		Name: "contrast",
		Code: `
    col = (col - 0.5) * uContrast + 0.5;`,
	},
	{
		Name: "hue rotation",
		Code: `
    vec3 hsl = rgb2hsl(col);
    hsl.x = mod(hsl.x + uHue / 360.0, 1.0);
    col = hsl2rgb(hsl);`,
	},
	{
		Name: "saturation",
		Code: `
    col = mix(vec3(getLuminance(col)), col, uSaturation);`,
	},
	{
		Name: "vibrance",
		Code: `
    col = applyVibrance(col, uVibrance);`,
	},
	{
		Name: "film grain",
		Code: `
    col = applyGrain(col, uv, iResolution.xy, uGrainAmount, uGrainSize, time);`,
	},
	{
		Name: "posterize",
		Code: `
    if (uPosterize < 256.0) {
        float levels = max(2.0, uPosterize);
        col = min(floor(clamp(col, 0.0, 1.0) * levels), levels - 1.0) / (levels - 1.0);
    }`,
	},
	{
		Name: "scanlines",
		Code: `
    if (uScanlines > 0.0) {
        float frequency = iResolution.y / max(uScanlineWidth, 0.1);
        float scanline = pow(sin(fragCoord.y / iResolution.y * frequency * 3.14159) * 0.5 + 0.5, 10.0);
        col *= mix(1.0, scanline * 0.8 + 0.2, uScanlines);
    }`,
	},
}

// GradeStages returns the grading chain in application order.
func GradeStages() []GradeStage {
	out := make([]GradeStage, len(gradeStages))
	copy(out, gradeStages)
	return out
}
