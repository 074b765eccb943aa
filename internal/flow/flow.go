// Closed-form potential flow around a unit cylinder
package flow

// Velocities are expressed in body-normalized coordinates: the vehicle
// cross-section is the unit circle, xi is lateral, eta points downstream
// along the freestream axis. Freestream speed is 1.

// TopViewVelocity evaluates uniform flow plus a cylinder doublet at (xi, eta)
// in the plan view. Points inside the body return (0, 0).
func TopViewVelocity(xi, eta float64) (vxi, veta float64) {
	r2 := xi*xi + eta*eta
	if r2 <= 1 {
		return 0, 0
	}
	r4 := r2 * r2
	vxi = -2 * xi * eta / r4
	veta = 1 - (eta*eta-xi*xi)/r4
	return vxi, veta
}

// SideViewVelocity applies the same closed form in the longitudinal-vertical
// plane. It returns (veta, vy) and is used to deflect streamlines over and
// under the body.
func SideViewVelocity(etaN, yN float64) (veta, vy float64) {
	vy, veta = TopViewVelocity(yN, etaN)
	return veta, vy
}

// PressureCoeff returns the incompressible Bernoulli pressure coefficient
// Cp = 1 - |v|^2. Cp is 1 at stagnation, 0 in the freestream, and negative
// in suction zones.
func PressureCoeff(vxi, veta float64) float64 {
	return 1 - (vxi*vxi + veta*veta)
}
