package flow

import "math"

// stagnationSpeed is the local speed below which tracing stops.
const stagnationSpeed = 1e-6

// PathSample is one point of a traced streamline with the local velocity.
type PathSample struct {
	Xi, Eta   float64
	VXi, VEta float64
}

// TracePath integrates the top-view velocity field from a seed with explicit
// Euler steps of constant length. Normalizing each step by the local speed
// keeps sample spacing uniform even where the potential-flow speed diverges
// near the body or vanishes at stagnation points.
//
// Tracing stops without recording the terminal point when the local speed
// drops below stagnationSpeed or the next position falls inside the body.
// The first sample is always the seed; at most steps samples are returned.
func TracePath(seedXi, seedEta float64, steps int, stepSize float64) []PathSample {
	path := make([]PathSample, 0, steps)
	xi, eta := seedXi, seedEta

	for i := 0; i < steps; i++ {
		vxi, veta := TopViewVelocity(xi, eta)
		speed := math.Hypot(vxi, veta)
		if speed < stagnationSpeed {
			break
		}
		path = append(path, PathSample{Xi: xi, Eta: eta, VXi: vxi, VEta: veta})

		xi += vxi / speed * stepSize
		eta += veta / speed * stepSize
		if xi*xi+eta*eta <= 1 {
			break
		}
	}
	return path
}
