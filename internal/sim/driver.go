package sim

import (
	"math"

	"aeroviz-sim/internal/config"
)

// DriveCycle produces a repeating speed trace resembling a lap: a slow
// fundamental with a faster harmonic layered on top, plus a wing-stall
// window once per period.
type DriveCycle struct {
	minKmh    float64
	maxKmh    float64
	period    float64
	stallFrom float64 // fraction of the period
	stallTo   float64
}

// NewDriveCycle builds a cycle from config, falling back to sane values for
// unset fields.
func NewDriveCycle(cfg config.DriveConfig) *DriveCycle {
	d := &DriveCycle{
		minKmh:    cfg.MinSpeedKmh,
		maxKmh:    cfg.MaxSpeedKmh,
		period:    cfg.PeriodSeconds,
		stallFrom: cfg.StallFrom,
		stallTo:   cfg.StallTo,
	}
	if d.maxKmh <= 0 {
		d.maxKmh = maxSpeedKmh
	}
	if d.maxKmh < d.minKmh {
		d.minKmh, d.maxKmh = d.maxKmh, d.minKmh
	}
	if d.period <= 0 {
		d.period = 45
	}
	return d
}

// Speed returns the cycle speed in km/h at time t.
func (d *DriveCycle) Speed(t float64) float64 {
	base := 0.5 * (1 - math.Cos(2*math.Pi*t/d.period))
	harmonic := 0.12 * math.Sin(2*math.Pi*t*3/d.period)
	f := base + harmonic
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return d.minKmh + f*(d.maxKmh-d.minKmh)
}

// Stalled reports whether the wing-stall window is active at time t.
func (d *DriveCycle) Stalled(t float64) bool {
	if d.stallTo <= d.stallFrom {
		return false
	}
	frac := math.Mod(t, d.period) / d.period
	return frac >= d.stallFrom && frac < d.stallTo
}
