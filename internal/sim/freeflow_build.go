package sim

import (
	"fmt"
	"math"

	"aeroviz-sim/internal/flow"
	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/scene"
)

// world converts a body-normalized position plus a world height into scene
// coordinates.
func (s *FreeFlowSimulation) world(xi, eta, height float64) scene.Point3 {
	e := s.base.Extents
	return scene.Point3{X: xi * e.HalfWidth, Y: height, Z: eta * e.HalfLength}
}

// rebuild disposes all owned buffers and reconstructs them for the given
// vehicle: every seed's streamline is traced once and cached, guide lines
// are laid out with their vertical deflection baked in, and all particle
// pools are reseeded.
func (s *FreeFlowSimulation) rebuild(v profile.Vehicle) error {
	s.disposeBuffers()

	p := profile.ForVehicle(v)
	s.base = p
	s.derived = profile.ApplyWingStall(p, s.stalled)
	s.stallDirty = false
	s.shedPhase = 0

	s.seeds = profile.BuildSeeds(p)
	s.paths = make([][]flow.PathSample, len(s.seeds))
	for i, seed := range s.seeds {
		s.paths[i] = flow.TracePath(seed.Xi, seed.Eta, traceSteps, traceStepSize)
	}

	if err := s.buildGuides(); err != nil {
		return fmt.Errorf("guide lines: %w", err)
	}
	if err := s.buildSmoke(); err != nil {
		return fmt.Errorf("smoke chains: %w", err)
	}
	if err := s.buildSpirals(); err != nil {
		return fmt.Errorf("vortex spirals: %w", err)
	}
	if err := s.buildWake(); err != nil {
		return fmt.Errorf("wake street: %w", err)
	}
	return nil
}

// buildGuides creates one Cp-colored polyline per seed. The vertical offset
// is accumulated incrementally while walking the line, adding a small
// side-view deflection delta at every sample rather than solving for the
// height globally.
func (s *FreeFlowSimulation) buildGuides() error {
	ls, err := s.backend.NewLineSet("guides-"+s.id, len(s.seeds), traceSteps)
	if err != nil {
		return err
	}
	s.guides = ls
	s.group.Add(ls)

	hh := s.base.Extents.HalfHeight
	for i, path := range s.paths {
		pts := make([]scene.Point3, len(path))
		cols := make([]flow.Color, len(path))
		y := s.seeds[i].Height
		for j, sample := range path {
			_, vy := flow.SideViewVelocity(sample.Eta, y/hh)
			y += vy * guideLiftGain * traceStepSize
			pts[j] = s.world(sample.Xi, sample.Eta, y)
			cols[j] = flow.CpToColor(flow.PressureCoeff(sample.VXi, sample.VEta))
		}
		ls.SetLine(i, pts, cols)
	}
	ls.SetOpacity(0)
	return nil
}

// buildSmoke allocates the smoke chain pools: a fixed number of particles
// per seed with path progress spread evenly along the seed's path.
func (s *FreeFlowSimulation) buildSmoke() error {
	n := len(s.seeds) * smokePerSeed
	pc, err := s.backend.NewPointCloud("smoke-"+s.id, n)
	if err != nil {
		return err
	}
	s.smoke = pc
	s.group.Add(pc)

	s.smokeSeed = make([]int32, n)
	s.smokeProgress = make([]float64, n)
	s.smokeJitX = make([]float64, n)
	s.smokeJitY = make([]float64, n)
	s.smokeLift = make([]float64, n)

	idx := 0
	for seedIdx, path := range s.paths {
		span := float64(len(path))
		for k := 0; k < smokePerSeed; k++ {
			s.smokeSeed[idx] = int32(seedIdx)
			s.smokeProgress[idx] = span * float64(k) / float64(smokePerSeed)
			idx++
		}
	}
	pc.SetOpacity(0)
	return nil
}

// buildSpirals creates one spiral line per vortex definition of the base
// profile. Spiral geometry is recomputed fully every frame; only the line
// capacity is fixed here.
func (s *FreeFlowSimulation) buildSpirals() error {
	ls, err := s.backend.NewLineSet("vortices-"+s.id, len(s.base.Vortices), vortexSpiralPoints)
	if err != nil {
		return err
	}
	s.spirals = ls
	s.group.Add(ls)
	ls.SetOpacity(0)
	ls.SetVisible(false)
	return nil
}

// buildWake allocates the wake pool at stalled capacity so toggling the wing
// state never resizes the buffers; wakeActive tracks the live count.
func (s *FreeFlowSimulation) buildWake() error {
	capacity := profile.ApplyWingStall(s.base, true).Profile.Wake.Count
	if c := s.base.Wake.Count; c > capacity {
		capacity = c
	}
	pc, err := s.backend.NewPointCloud("wake-"+s.id, capacity)
	if err != nil {
		return err
	}
	s.wake = pc
	s.group.Add(pc)

	s.wakeX = make([]float64, capacity)
	s.wakeY = make([]float64, capacity)
	s.wakeZ = make([]float64, capacity)
	s.wakeDrift = make([]float64, capacity)
	s.wakeVZ = make([]float64, capacity)
	s.wakePhase = make([]float64, capacity)
	for i := 0; i < capacity; i++ {
		s.seedWakeParticle(i, true)
	}
	s.wakeActive = s.derived.Profile.Wake.Count
	pc.SetOpacity(0)
	return nil
}

// seedWakeParticle resets particle i to a fresh random position in the wake
// window. Initial seeding spreads particles across the whole window; a
// recycled particle restarts near the body's trailing edge.
func (s *FreeFlowSimulation) seedWakeParticle(i int, spread bool) {
	p := s.derived.Profile
	w := p.Wake
	hl := p.Extents.HalfLength

	s.wakeX[i] = (s.rng.Float64()*2 - 1) * w.Width * p.Extents.HalfWidth
	s.wakeY[i] = w.HeightMin + s.rng.Float64()*(w.HeightMax-w.HeightMin)
	if spread {
		s.wakeZ[i] = hl + s.rng.Float64()*wakeRecycleZ
	} else {
		s.wakeZ[i] = hl + s.rng.Float64()*0.5
	}
	s.wakeDrift[i] = (s.rng.Float64()*2 - 1) * 0.3
	s.wakeVZ[i] = 0.5 + s.rng.Float64()*0.5
	s.wakePhase[i] = s.rng.Float64() * 2 * math.Pi
}

func (s *FreeFlowSimulation) disposeBuffers() {
	s.group.Clear()
	s.guides, s.smoke, s.spirals, s.wake = nil, nil, nil, nil
	s.seeds, s.paths = nil, nil
	s.smokeSeed, s.smokeProgress, s.smokeJitX, s.smokeJitY, s.smokeLift = nil, nil, nil, nil, nil
	s.wakeX, s.wakeY, s.wakeZ, s.wakeDrift, s.wakeVZ, s.wakePhase = nil, nil, nil, nil, nil, nil
	s.wakeActive = 0
}
