package sim

import (
	"math"

	"aeroviz-sim/internal/flow"
	"aeroviz-sim/internal/scene"
)

func (s *FreeFlowSimulation) updateGuides(sf float64) {
	op := sf * guideMaxOpacity
	s.guides.SetOpacity(op)
	s.lastGuideOpacity = op
}

// updateSmoke advances every smoke particle along its cached path. Advance
// rate scales with speed and with the clamped local flow speed, so particles
// bunch up near stagnation and race through suction zones without the point
// spacing collapsing entirely.
func (s *FreeFlowSimulation) updateSmoke(dt, sf float64) {
	hh := s.base.Extents.HalfHeight
	cpSum := 0.0
	cpCount := 0

	for i := range s.smokeSeed {
		path := s.paths[s.smokeSeed[i]]
		if len(path) < 2 {
			continue
		}
		seed := s.seeds[s.smokeSeed[i]]
		end := float64(len(path) - 1)

		// Interpolated sample at the current progress.
		pos := s.smokeProgress[i]
		if pos > end {
			pos = end
		}
		j := int(pos)
		if j >= len(path)-1 {
			j = len(path) - 2
		}
		f := pos - float64(j)
		a, b := path[j], path[j+1]
		xi := a.Xi + (b.Xi-a.Xi)*f
		eta := a.Eta + (b.Eta-a.Eta)*f
		vxi := a.VXi + (b.VXi-a.VXi)*f
		veta := a.VEta + (b.VEta-a.VEta)*f

		localSpeed := math.Hypot(vxi, veta)
		if localSpeed < smokeSpeedClampLo {
			localSpeed = smokeSpeedClampLo
		} else if localSpeed > smokeSpeedClampHi {
			localSpeed = smokeSpeedClampHi
		}
		s.smokeProgress[i] += dt * smokeBaseRate * sf * localSpeed
		if s.smokeProgress[i] >= end {
			s.smokeProgress[i] = 0
			s.smokeJitX[i] = 0
			s.smokeJitY[i] = 0
			s.smokeLift[i] = 0
		}

		// Vertical accumulator from the side-view field.
		y := seed.Height + s.smokeLift[i]
		_, vy := flow.SideViewVelocity(eta, y/hh)
		s.smokeLift[i] += vy * smokeLiftGain * dt

		// Correlated jitter growing with downstream distance.
		amp := smokeJitterBase
		if eta > 0 {
			amp += smokeJitterGrowth * eta
		}
		s.smokeJitX[i] = s.smokeJitX[i]*smokeJitterDecay + (s.rng.Float64()*2-1)*amp
		s.smokeJitY[i] = s.smokeJitY[i]*smokeJitterDecay + (s.rng.Float64()*2-1)*amp

		cp := flow.PressureCoeff(vxi, veta)
		cpSum += cp
		cpCount++

		p := s.world(xi, eta, y)
		p.X += s.smokeJitX[i]
		p.Y += s.smokeJitY[i]
		s.smoke.SetPoint(i, p, flow.CpToColor(cp), smokePointSize)
	}

	s.smoke.SetOpacity(sf * smokeMaxOpacity)
	if cpCount > 0 {
		s.lastMeanCp = cpSum / float64(cpCount)
	}
}

// updateSpirals recomputes the trailing-vortex spiral geometry from scratch
// every frame. Spirals only form above a fixed speed threshold; radius grows
// with the square of the speed factor, following dynamic pressure.
func (s *FreeFlowSimulation) updateSpirals(t, sf float64) {
	if sf < vortexSpeedThreshold {
		s.spirals.SetVisible(false)
		s.lastVortexDrawn = false
		return
	}
	s.spirals.SetVisible(true)
	s.lastVortexDrawn = true

	p := s.derived.Profile
	radius := sf * sf * p.MaxVortexRadius
	col := flow.CpToColor(-1.5)

	for vi := range s.base.Vortices {
		if vi >= len(p.Vortices) {
			// Vortex dropped by the stall transform: collapse its line.
			s.spirals.SetLine(vi, nil, nil)
			continue
		}
		v := p.Vortices[vi]
		line, cols := s.spiralGeometry(v.Xi, v.Eta, float64(v.Sign), radius, s.shedPhase, col)
		s.spirals.SetLine(vi, line, cols)
	}
	s.spirals.SetOpacity(sf * vortexMaxOpacity)
}

func (s *FreeFlowSimulation) updateWake(dt, t, sf float64) {
	p := s.derived.Profile
	s.wakeActive = p.Wake.Count
	if s.wakeActive > len(s.wakeX) {
		s.wakeActive = len(s.wakeX)
	}
	freq := s.sheddingFrequency()
	hl := p.Extents.HalfLength

	for i := 0; i < s.wakeActive; i++ {
		// Alternating lateral flutter on top of the stored drift.
		vx := s.wakeDrift[i] + math.Sin(2*math.Pi*freq*t+s.wakePhase[i])*wakeFlutterGain
		s.wakeX[i] += vx * sf * dt
		s.wakeZ[i] += s.wakeVZ[i] * wakeDriftGain * sf * dt

		if s.wakeZ[i] > hl+wakeRecycleZ || math.Abs(s.wakeX[i]) > p.Wake.Width*p.Extents.HalfWidth*wakeRecycleLatMul {
			s.seedWakeParticle(i, false)
		}

		pt := scene.Point3{X: s.wakeX[i], Y: s.wakeY[i], Z: s.wakeZ[i]}
		s.wake.SetPoint(i, pt, wakeColor, wakePointSize)
	}
	op := sf * wakeMaxOpacity
	s.wake.SetOpacity(op)
	s.lastWakeOpacity = op
}

// wakeColor is the neutral turbulent-smoke tint of the wake street.
var wakeColor = flow.Color{R: 0.75, G: 0.8, B: 0.85}

// spiralGeometry builds one helical vortex trace growing downstream from
// the vortex center.
func (s *FreeFlowSimulation) spiralGeometry(xi, eta, sign, radius, phase float64, col flow.Color) ([]scene.Point3, []flow.Color) {
	p := s.derived.Profile
	center := s.world(xi, eta, p.Extents.HalfHeight)
	pts := make([]scene.Point3, vortexSpiralPoints)
	cols := make([]flow.Color, vortexSpiralPoints)
	for i := range pts {
		frac := float64(i) / float64(vortexSpiralPoints-1)
		angle := sign * (phase + frac*vortexSpiralTurns*2*math.Pi)
		r := radius * (0.25 + 0.75*frac)
		pts[i] = scene.Point3{
			X: center.X + math.Cos(angle)*r,
			Y: center.Y + math.Sin(angle)*r,
			Z: center.Z + frac*vortexSpiralLength,
		}
		cols[i] = col.Scale(1 - 0.6*frac)
	}
	return pts, cols
}
