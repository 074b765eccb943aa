package flow

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Cp range mapped onto the color ramp. Values outside clamp to the ends.
const (
	cpRampMin = -3.0
	cpRampMax = 1.0
)

// CpToColor maps a pressure coefficient onto a blue-cyan-green-yellow-red
// ramp. Strong suction renders blue, stagnation renders red.
func CpToColor(cp float64) Color {
	t := (cp - cpRampMin) / (cpRampMax - cpRampMin)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	var c Color
	switch {
	case t < 0.25:
		f := t / 0.25
		c = Color{R: 0, G: f, B: 1}
	case t < 0.5:
		f := (t - 0.25) / 0.25
		c = Color{R: 0, G: 1, B: 1 - f}
	case t < 0.75:
		f := (t - 0.5) / 0.25
		c = Color{R: f, G: 1, B: 0}
	default:
		f := (t - 0.75) / 0.25
		c = Color{R: 1, G: 1 - f, B: 0}
	}
	return c.clamped()
}

func (c Color) clamped() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Scale multiplies all channels by f and clamps the result.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}.clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
