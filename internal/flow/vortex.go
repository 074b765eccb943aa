package flow

import "math"

const vortexCenterEps = 1e-9

// VortexVelocity evaluates a Rankine vortex centered at (cx, ce). Inside the
// core radius the fluid rotates as a solid body, outside it decays as 1/r.
// The returned velocity is purely tangential; the degenerate point at the
// center yields (0, 0).
func VortexVelocity(xi, eta, cx, ce, circulation, coreRadius float64) (vxi, veta float64) {
	dx := xi - cx
	de := eta - ce
	r := math.Hypot(dx, de)
	if r < vortexCenterEps {
		return 0, 0
	}

	var tangential float64
	if r < coreRadius {
		tangential = circulation * r / (2 * math.Pi * coreRadius * coreRadius)
	} else {
		tangential = circulation / (2 * math.Pi * r)
	}

	// Rotate the unit radial vector by +90 degrees.
	vxi = -de / r * tangential
	veta = dx / r * tangential
	return vxi, veta
}
