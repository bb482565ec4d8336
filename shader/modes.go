package shader

import (
	"github.com/richinsley/goshadergradient/params"
)

// ModeBranch holds the GLSL for one movement mode at both decision points:
// the scalar field function and the per-iteration perturbation inside the
// field sampling loop.
//
// Field statements may assign offset (added to p), inner (phase inside the
// nested sine) and outer (phase of the product term). They start from
// offset = 0, inner = uPhaseX, outer = 0.
type ModeBranch struct {
	Mode  params.MovementMode
	Field string
	Loop  string
}

func (b ModeBranch) Index() int   { return int(b.Mode) }
func (b ModeBranch) Name() string { return b.Mode.String() }

var modeBranches = []ModeBranch{
	{
		Mode: params.ModeCircular,
		Field: `
        inner = time * uVelocity + uPhaseX;
        outer = time * uVelocity;`,
		Loop: `
            p.x = p.x + sin(time * uMode2Speed / 10.0) / 10.0;
            p.y = p.y + cos(time * uMode2Speed / 10.0) / 10.0;`,
	},
	{
		Mode: params.ModeLinear,
		Field: `
        float drift = time * uVelocity;
        offset = vec2(drift * 0.5, drift * 0.3);`,
		Loop: `
            p.x = p.x + time * uVelocity * 0.1;
            p.y = p.y + time * uVelocity * 0.05;`,
	},
	{
		Mode: params.ModeVortex,
		Field: `
        float dist = length(p);
        float angle = atan(p.y, p.x) + time * uVelocity * 2.0 / (dist + 0.5);
        offset = vec2(cos(angle), sin(angle)) * dist * 0.3;`,
		Loop: `
            float dist = length(p);
            float angle = time * uMode2Speed / (dist * 5.0 + 1.0);
            float px = p.x;
            p.x = px * cos(angle) - p.y * sin(angle);
            p.y = px * sin(angle) + p.y * cos(angle);`,
	},
	{
		Mode: params.ModeResonance,
		Field: `
        float wave1 = sin(p.x * 2.0 + time * uVelocity) * sin(p.y * 2.0 + time * uVelocity * 0.7);
        float wave2 = cos(p.x * 3.0 + time * uVelocity * 1.3) * cos(p.y * 3.0 + time * uVelocity * 0.9);
        offset = vec2(wave1 * 0.2 + wave2 * 0.15, wave1 * 0.15 - wave2 * 0.2);`,
		Loop: `
            float osc1 = sin(p.x * 2.0 + time * uMode2Speed / 10.0);
            float osc2 = cos(p.y * 2.0 + time * uMode2Speed / 12.0);
            float osc3 = sin((p.x + p.y) * 1.5 + time * uMode2Speed / 8.0);
            p.x = p.x + (osc1 + osc3) / 20.0;
            p.y = p.y + (osc2 - osc3) / 20.0;`,
	},
	{
		Mode: params.ModeChaotic,
		Field: `
        float n1 = sin(p.x * 3.14159 + time * uVelocity) * cos(p.y * 2.71828 + time * uVelocity * 1.1);
        float n2 = cos(p.x * 2.71828 - time * uVelocity * 0.8) * sin(p.y * 3.14159 - time * uVelocity);
        offset = vec2(n1, n2) * 0.25;`,
		Loop: `
            float chaosX = sin(p.x * 5.0 + time * uMode2Speed / 7.0) * cos(p.y * 3.0 + time * uMode2Speed / 9.0);
            float chaosY = cos(p.x * 3.0 - time * uMode2Speed / 11.0) * sin(p.y * 5.0 - time * uMode2Speed / 6.0);
            p.x = p.x + chaosX / 18.0;
            p.y = p.y + chaosY / 18.0;`,
	},
	{
		Mode: params.ModeBurst,
		Field: `
        vec2 c1 = vec2(0.3, 0.3);
        vec2 c2 = vec2(-0.3, -0.3);
        float e1 = sin(time * uVelocity * 2.0) * length(p - c1) * 0.3;
        float e2 = cos(time * uVelocity * 2.0) * length(p - c2) * 0.3;
        offset = normalize(p - c1) * e1 + normalize(p - c2) * e2;`,
		Loop: `
            vec2 c1 = vec2(0.2, 0.2);
            vec2 c2 = vec2(-0.2, -0.2);
            float b1 = sin(time * uMode2Speed / 5.0) * length(p - c1) * 0.15;
            float b2 = cos(time * uMode2Speed / 5.0) * length(p - c2) * 0.15;
            p += (normalize(p - c1) * b1 + normalize(p - c2) * b2) / 10.0;`,
	},
	{
		Mode: params.ModeFlow,
		Field: `
        float flowX = sin(p.y * 1.5 + time * uVelocity) * 0.4;
        float flowY = cos(p.x * 1.5 + time * uVelocity * 0.7) * 0.4;
        float curl = sin(p.x * p.y * 2.0 + time * uVelocity) * 0.2;
        offset = vec2(flowX + curl, flowY - curl);`,
		Loop: `
            float flowX = sin(p.y * 2.0 + time * uMode2Speed / 8.0);
            float flowY = cos(p.x * 2.0 + time * uMode2Speed / 10.0);
            float swirl = sin(p.x * p.y * 3.0 + time * uMode2Speed / 12.0) * 0.5;
            p.x = p.x + (flowX + swirl) / 16.0;
            p.y = p.y + (flowY - swirl) / 16.0;`,
	},
	{
		Mode: params.ModeStatic,
		Field: `
        inner = uPhaseX;`,
		Loop: `
            // frozen: no per-iteration drift`,
	},
}
