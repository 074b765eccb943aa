package sim

// Speed mapping and tuned visual constants. The odd-looking values are
// deliberate: they were dialed in against the running visualization and
// parity matters more than roundness.
const (
	// maxSpeedKmh maps speed onto speedFactor in [0, 1].
	maxSpeedKmh = 350.0

	// Streamline tracing.
	traceSteps    = 160
	traceStepSize = 0.12

	// Guide lines.
	guideMaxOpacity = 0.55
	// Fraction of the side-view vertical velocity accumulated per sample
	// while walking a guide line.
	guideLiftGain = 0.35

	// Smoke particle chains.
	smokePerSeed      = 6
	smokeBaseRate     = 9.0
	smokeSpeedClampLo = 0.4
	smokeSpeedClampHi = 3.2
	smokeJitterDecay  = 0.9
	smokeJitterBase   = 0.015
	// Jitter amplitude growth per normalized unit downstream of the body.
	smokeJitterGrowth = 0.012
	smokeLiftGain     = 0.06
	smokeMaxOpacity   = 0.85
	smokePointSize    = 0.05

	// Trailing vortex spirals.
	vortexSpeedThreshold = 0.15
	vortexSpiralTurns    = 3.5
	vortexSpiralPoints   = 64
	vortexSpiralLength   = 4.0
	vortexMaxOpacity     = 0.7

	// Wake particle street.
	wakeDriftGain     = 2.2
	wakeFlutterGain   = 0.5
	wakeRecycleZ      = 9.0
	wakeRecycleLatMul = 2.5
	wakeMaxOpacity    = 0.6
	wakePointSize     = 0.07

	// Surface pressure overlay.
	overlayRecomputeDelta = 7.0 // km/h change needed to refresh patch colors
	overlayPatchRows      = 5
	overlayPatchCols      = 7
	overlayStallNoise     = 0.12
	overlayStallRadiusMul = 1.8
	overlayStallIntensity = 0.15
	overlayTraceTurns     = 2.5
	overlayTracePoints    = 48
	overlayTraceLength    = 2.5
)

// speedFactor maps a speed in km/h onto [0, 1].
func speedFactor(kmh float64) float64 {
	f := kmh / maxSpeedKmh
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
