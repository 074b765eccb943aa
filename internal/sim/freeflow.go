package sim

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"aeroviz-sim/internal/flow"
	"aeroviz-sim/internal/frame"
	"aeroviz-sim/internal/logging"
	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/scene"
)

// FreeFlowSimulation animates the flow field around the body: Cp-colored
// guide lines, advected smoke-particle chains, trailing-vortex spirals, and
// a Karman-style wake particle street.
//
// All particle state lives in flat per-field slices indexed by particle id,
// rebuilt wholesale on vehicle change and mutated in place every frame.
type FreeFlowSimulation struct {
	ctx     context.Context
	id      string
	backend scene.Backend
	group   *scene.Group
	rng     *rand.Rand

	mu      sync.Mutex
	vehicle profile.Vehicle
	base    *profile.Profile
	derived profile.Derived

	speedKmh   float64
	visible    bool
	stalled    bool
	stallDirty bool
	shedPhase  float64

	seeds []profile.Seed
	paths [][]flow.PathSample

	guides scene.LineSet

	// Smoke chain state, one entry per particle.
	smoke         scene.PointCloud
	smokeSeed     []int32
	smokeProgress []float64
	smokeJitX     []float64
	smokeJitY     []float64
	smokeLift     []float64

	spirals scene.LineSet

	// Wake street state. Buffers are allocated at stalled capacity so the
	// stall transform never resizes them; wakeActive bounds the live range.
	wake       scene.PointCloud
	wakeX      []float64
	wakeY      []float64
	wakeZ      []float64
	wakeDrift  []float64
	wakeVZ     []float64
	wakePhase  []float64
	wakeActive int

	// Last-frame stats for the frame writer.
	lastGuideOpacity float64
	lastWakeOpacity  float64
	lastVortexDrawn  bool
	lastMeanCp       float64
	lastT            float64
	lastDt           float64
}

// NewFreeFlow attaches a free-flow engine to the host group, built invisible
// for the default vehicle. On backend failure it degrades to a no-op engine
// instead of propagating the error into the render loop.
func NewFreeFlow(ctx context.Context, backend scene.Backend, host *scene.Group) Aerodynamics {
	s := &FreeFlowSimulation{
		ctx:     ctx,
		id:      uuid.New().String(),
		backend: backend,
		group:   host.NewChild("freeflow"),
		rng:     rand.New(rand.NewSource(rand.Int63())),
		vehicle: profile.DefaultVehicle,
	}
	if err := s.rebuild(profile.DefaultVehicle); err != nil {
		s.group.Dispose()
		return fallback(ctx, "freeflow", err)
	}
	s.group.SetVisible(false)
	return s
}

// SetVehicle switches the active vehicle class. Unchanged codes are a no-op;
// unknown codes fall back to the default profile. The rebuild is immediate
// and holds the engine lock for its duration.
func (s *FreeFlowSimulation) SetVehicle(v profile.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !profile.Known(v) {
		logging.FromContext(s.ctx).Warn("unknown vehicle, using default",
			"vehicle", string(v), "default", string(profile.DefaultVehicle))
		v = profile.DefaultVehicle
	}
	if v == s.vehicle {
		return
	}
	if err := s.rebuild(v); err != nil {
		logging.FromContext(s.ctx).Error("vehicle rebuild failed", "vehicle", string(v), "err", err)
		return
	}
	s.vehicle = v
}

// SetSpeed stores the new speed; all derived values refresh on the next
// update.
func (s *FreeFlowSimulation) SetSpeed(kmh float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kmh < 0 {
		kmh = 0
	}
	s.speedKmh = kmh
}

// SetVisible toggles the engine's scene group without recomputing anything.
func (s *FreeFlowSimulation) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
	s.group.SetVisible(visible)
}

// SetWingStall marks the wing state dirty; the derived profile is applied on
// the next update.
func (s *FreeFlowSimulation) SetWingStall(stalled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stalled == s.stalled {
		return
	}
	s.stalled = stalled
	s.stallDirty = true
}

// Dispose releases all primitives and detaches from the host.
func (s *FreeFlowSimulation) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposeBuffers()
	s.group.Dispose()
}

// Update advances the animation by dt seconds at absolute time t. It is a
// no-op while invisible. Each subsystem is insulated: a fault in one leaves
// the others and the frame intact.
func (s *FreeFlowSimulation) Update(dt, t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible {
		return
	}
	if s.stallDirty {
		s.derived = profile.ApplyWingStall(s.base, s.stalled)
		s.stallDirty = false
	}

	sf := speedFactor(s.speedKmh)
	s.advanceShedding(dt, sf)

	runSubsystem(s.ctx, "guides", func() { s.updateGuides(sf) })
	runSubsystem(s.ctx, "smoke", func() { s.updateSmoke(dt, sf) })
	runSubsystem(s.ctx, "vortices", func() { s.updateSpirals(t, sf) })
	runSubsystem(s.ctx, "wake", func() { s.updateWake(dt, t, sf) })

	s.lastT = t
	s.lastDt = dt
}

// sheddingFrequency is the Strouhal relation f = St * U / (2 * halfWidth),
// with speed converted to m/s.
func (s *FreeFlowSimulation) sheddingFrequency() float64 {
	p := s.derived.Profile
	speedMS := s.speedKmh / 3.6
	return p.Strouhal * speedMS / (2 * p.Extents.HalfWidth)
}

func (s *FreeFlowSimulation) advanceShedding(dt, sf float64) {
	if sf <= 0 {
		return
	}
	s.shedPhase += 2 * math.Pi * s.sheddingFrequency() * dt
	if s.shedPhase > 1e6 {
		s.shedPhase = math.Mod(s.shedPhase, 2*math.Pi)
	}
}

// Snapshot returns the last frame's stats row.
func (s *FreeFlowSimulation) Snapshot() frame.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return frame.Row{
		RunID:        s.id,
		Vehicle:      string(s.vehicle),
		T:            s.lastT,
		Dt:           s.lastDt,
		SpeedKmh:     s.speedKmh,
		SpeedFactor:  speedFactor(s.speedKmh),
		WingStalled:  s.stalled,
		SmokeActive:  len(s.smokeSeed),
		WakeActive:   s.wakeActive,
		GuideOpacity: s.lastGuideOpacity,
		WakeOpacity:  s.lastWakeOpacity,
		VortexDrawn:  s.lastVortexDrawn,
		MeanCp:       s.lastMeanCp,
	}
}
