package sim

import (
	"context"
	"io"
	"math"
	"testing"

	"aeroviz-sim/internal/logging"
	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/scene"
)

func quietCtx() context.Context {
	return logging.NewContext(context.Background(), logging.NewWithWriter(io.Discard, false))
}

func newTestFreeFlow(t *testing.T) (*FreeFlowSimulation, *mockBackend) {
	t.Helper()
	b := &mockBackend{}
	e := NewFreeFlow(quietCtx(), b, scene.NewGroup("root"))
	ff, ok := e.(*FreeFlowSimulation)
	if !ok {
		t.Fatalf("expected a live engine, got %T", e)
	}
	return ff, b
}

func TestNewFreeFlowBuildsPrimitives(t *testing.T) {
	ff, b := newTestFreeFlow(t)

	// One line set for guides, one for vortex spirals; point clouds for
	// smoke and wake.
	if len(b.lineSets) != 2 {
		t.Errorf("line sets = %d, want 2", len(b.lineSets))
	}
	if len(b.pointClouds) != 2 {
		t.Errorf("point clouds = %d, want 2", len(b.pointClouds))
	}

	p := profile.ForVehicle(profile.DefaultVehicle)
	if got, want := len(ff.smokeSeed), len(ff.seeds)*smokePerSeed; got != want {
		t.Errorf("smoke pool = %d, want %d", got, want)
	}
	if ff.wakeActive != p.Wake.Count {
		t.Errorf("wake active = %d, want %d", ff.wakeActive, p.Wake.Count)
	}
}

func TestNewFreeFlowFallsBackOnBackendFailure(t *testing.T) {
	b := &mockBackend{failAll: true}
	e := NewFreeFlow(quietCtx(), b, scene.NewGroup("root"))
	if _, ok := e.(noopAerodynamics); !ok {
		t.Fatalf("expected the no-op fallback, got %T", e)
	}
	// The fallback must absorb the full interface without panicking.
	e.SetVehicle(profile.VehicleSUV)
	e.SetSpeed(100)
	e.SetWingStall(true)
	e.Update(0.033, 1)
	e.Dispose()
}

func TestFreeFlowOpacityTracksSpeed(t *testing.T) {
	ff, b := newTestFreeFlow(t)
	ff.SetVisible(true)

	guides := b.lineSets[0]
	smoke := b.pointClouds[0]
	wake := b.pointClouds[1]

	ff.SetSpeed(0)
	ff.Update(0.033, 0.033)
	if guides.opacity != 0 || smoke.opacity != 0 || wake.opacity != 0 {
		t.Errorf("standing still should be fully transparent: guides=%v smoke=%v wake=%v",
			guides.opacity, smoke.opacity, wake.opacity)
	}

	ff.SetSpeed(maxSpeedKmh)
	ff.Update(0.033, 0.066)
	if guides.opacity != guideMaxOpacity {
		t.Errorf("guide opacity at top speed = %v, want %v", guides.opacity, guideMaxOpacity)
	}
	if smoke.opacity != smokeMaxOpacity {
		t.Errorf("smoke opacity at top speed = %v, want %v", smoke.opacity, smokeMaxOpacity)
	}
	if wake.opacity != wakeMaxOpacity {
		t.Errorf("wake opacity at top speed = %v, want %v", wake.opacity, wakeMaxOpacity)
	}
}

func TestFreeFlowVortexSpeedThreshold(t *testing.T) {
	ff, b := newTestFreeFlow(t)
	ff.SetVisible(true)
	spirals := b.lineSets[1]

	ff.SetSpeed(maxSpeedKmh * vortexSpeedThreshold * 0.5)
	ff.Update(0.033, 0.033)
	if spirals.visible {
		t.Errorf("spirals visible below the speed threshold")
	}
	if ff.Snapshot().VortexDrawn {
		t.Errorf("snapshot reports vortices drawn below the threshold")
	}

	ff.SetSpeed(maxSpeedKmh)
	ff.Update(0.033, 0.066)
	if !spirals.visible {
		t.Errorf("spirals hidden at top speed")
	}
	if spirals.opacity != vortexMaxOpacity {
		t.Errorf("spiral opacity at top speed = %v, want %v", spirals.opacity, vortexMaxOpacity)
	}
	if len(spirals.lines) == 0 {
		t.Errorf("no spiral geometry pushed at top speed")
	}
}

func TestSmokeAdvancesAndRecyclesAtPathEnd(t *testing.T) {
	ff, _ := newTestFreeFlow(t)
	ff.SetVisible(true)
	ff.SetSpeed(maxSpeedKmh)

	before := append([]float64(nil), ff.smokeProgress...)
	ff.Update(0.033, 0.033)
	for i := range ff.smokeSeed {
		if len(ff.paths[ff.smokeSeed[i]]) < 2 {
			continue
		}
		if ff.smokeProgress[i] <= before[i] {
			t.Fatalf("particle %d stalled on its path: %v -> %v", i, before[i], ff.smokeProgress[i])
		}
	}

	// Park one particle just short of its path end with dirty accumulators
	// and let the next frame recycle it.
	path := ff.paths[ff.smokeSeed[0]]
	ff.smokeProgress[0] = float64(len(path)-1) - 1e-3
	ff.smokeJitX[0], ff.smokeJitY[0], ff.smokeLift[0] = 0.7, -0.7, 0.9
	ff.Update(0.033, 0.066)

	if got := ff.smokeProgress[0]; got != 0 {
		t.Errorf("recycled particle progress = %v, want 0", got)
	}
	// One frame of fresh jitter and lift lands after the reset, so the
	// accumulators are small but not exactly zero.
	if j := math.Abs(ff.smokeJitX[0]); j > 0.2 {
		t.Errorf("lateral jitter survived recycle: %v", j)
	}
	if j := math.Abs(ff.smokeJitY[0]); j > 0.2 {
		t.Errorf("vertical jitter survived recycle: %v", j)
	}
	if l := math.Abs(ff.smokeLift[0]); l > 0.1 {
		t.Errorf("lift accumulator survived recycle: %v", l)
	}
}

func TestWakeRecyclesIntoDownstreamWindow(t *testing.T) {
	ff, _ := newTestFreeFlow(t)
	ff.SetVisible(true)
	ff.SetSpeed(200)

	p := ff.derived.Profile
	hl := p.Extents.HalfLength
	lat := p.Wake.Width * p.Extents.HalfWidth

	ff.wakeZ[0] = hl + wakeRecycleZ + 1
	ff.wakeX[1] = lat*wakeRecycleLatMul + 1
	ff.Update(0.033, 0.033)

	if z := ff.wakeZ[0]; z < hl || z > hl+0.5 {
		t.Errorf("downstream runaway reseeded at z=%v, want within [%v, %v]", z, hl, hl+0.5)
	}
	if x := math.Abs(ff.wakeX[0]); x > lat {
		t.Errorf("downstream runaway reseeded at |x|=%v, want within %v", x, lat)
	}
	if z := ff.wakeZ[1]; z < hl || z > hl+0.5 {
		t.Errorf("lateral runaway reseeded at z=%v, want within [%v, %v]", z, hl, hl+0.5)
	}
	if x := math.Abs(ff.wakeX[1]); x > lat {
		t.Errorf("lateral runaway reseeded at |x|=%v, want within %v", x, lat)
	}
}

func TestFreeFlowUpdateSkippedWhileInvisible(t *testing.T) {
	ff, b := newTestFreeFlow(t)
	guides := b.lineSets[0]

	ff.SetSpeed(maxSpeedKmh)
	ff.Update(0.033, 0.033)
	if guides.opacity != 0 {
		t.Errorf("invisible engine touched its primitives")
	}
	row := ff.Snapshot()
	if row.T != 0 {
		t.Errorf("invisible engine advanced its clock: t=%v", row.T)
	}
}

func TestFreeFlowWakeBuffersSurviveStall(t *testing.T) {
	ff, _ := newTestFreeFlow(t)
	ff.SetVisible(true)
	ff.SetSpeed(200)

	base := profile.ForVehicle(profile.DefaultVehicle)
	stalledCount := profile.ApplyWingStall(base, true).Profile.Wake.Count

	if len(ff.wakeX) != stalledCount {
		t.Fatalf("wake capacity = %d, want stalled count %d", len(ff.wakeX), stalledCount)
	}
	buf := &ff.wakeX[0]

	ff.Update(0.033, 0.033)
	if ff.wakeActive != base.Wake.Count {
		t.Errorf("unstalled wake active = %d, want %d", ff.wakeActive, base.Wake.Count)
	}

	ff.SetWingStall(true)
	ff.Update(0.033, 0.066)
	if ff.wakeActive != stalledCount {
		t.Errorf("stalled wake active = %d, want %d", ff.wakeActive, stalledCount)
	}
	if len(ff.wakeX) != stalledCount || &ff.wakeX[0] != buf {
		t.Errorf("stall transition reallocated the wake buffers")
	}

	ff.SetWingStall(false)
	ff.Update(0.033, 0.099)
	if ff.wakeActive != base.Wake.Count {
		t.Errorf("recovered wake active = %d, want %d", ff.wakeActive, base.Wake.Count)
	}
	if &ff.wakeX[0] != buf {
		t.Errorf("stall recovery reallocated the wake buffers")
	}
}

func TestFreeFlowStallCollapsesRearSpirals(t *testing.T) {
	b := &mockBackend{}
	e := NewFreeFlow(quietCtx(), b, scene.NewGroup("root"))
	ff := e.(*FreeFlowSimulation)
	ff.SetVehicle(profile.VehicleFormula)
	ff.SetVisible(true)
	ff.SetSpeed(maxSpeedKmh)
	ff.SetWingStall(true)
	ff.Update(0.033, 0.033)

	// The rebuild for the formula profile allocated a fresh spiral set.
	spirals := b.lineSets[len(b.lineSets)-1]
	if spirals.id != "vortices-"+ff.id {
		t.Fatalf("unexpected line set order, got id %q", spirals.id)
	}

	base := profile.ForVehicle(profile.VehicleFormula)
	kept := len(profile.ApplyWingStall(base, true).Profile.Vortices)
	for vi := kept; vi < len(base.Vortices); vi++ {
		line, ok := spirals.lines[vi]
		if !ok {
			t.Fatalf("dropped vortex %d never touched", vi)
		}
		if len(line.pts) != 0 {
			t.Errorf("dropped vortex %d still has geometry", vi)
		}
	}
	for vi := 0; vi < kept; vi++ {
		if len(spirals.lines[vi].pts) == 0 {
			t.Errorf("surviving vortex %d has no geometry", vi)
		}
	}
}

func TestFreeFlowSetVehicleUnknownKeepsCurrent(t *testing.T) {
	ff, _ := newTestFreeFlow(t)
	ff.SetVehicle("hovercraft")
	if ff.vehicle != profile.DefaultVehicle {
		t.Errorf("unknown vehicle switched the engine to %s", ff.vehicle)
	}
}

func TestFreeFlowSetVehicleRebuilds(t *testing.T) {
	ff, _ := newTestFreeFlow(t)
	ff.SetVehicle(profile.VehicleSUV)
	if ff.vehicle != profile.VehicleSUV {
		t.Fatalf("vehicle = %s, want suv", ff.vehicle)
	}
	p := profile.ForVehicle(profile.VehicleSUV)
	if got, want := len(ff.seeds), len(profile.BuildSeeds(p)); got != want {
		t.Errorf("seed count after switch = %d, want %d", got, want)
	}
	if ff.Snapshot().Vehicle != "suv" {
		t.Errorf("snapshot vehicle = %q, want suv", ff.Snapshot().Vehicle)
	}
}

func TestFreeFlowSnapshot(t *testing.T) {
	ff, _ := newTestFreeFlow(t)
	ff.SetVisible(true)
	ff.SetSpeed(175)
	ff.Update(0.033, 1.5)

	row := ff.Snapshot()
	if row.RunID == "" {
		t.Errorf("snapshot missing run id")
	}
	if row.SpeedKmh != 175 {
		t.Errorf("snapshot speed = %v, want 175", row.SpeedKmh)
	}
	if row.SpeedFactor != 0.5 {
		t.Errorf("snapshot speed factor = %v, want 0.5", row.SpeedFactor)
	}
	if row.T != 1.5 || row.Dt != 0.033 {
		t.Errorf("snapshot clock = (%v, %v), want (1.5, 0.033)", row.T, row.Dt)
	}
	if row.SmokeActive != len(ff.smokeSeed) {
		t.Errorf("snapshot smoke count = %d, want %d", row.SmokeActive, len(ff.smokeSeed))
	}
}

func TestSpeedFactorClamps(t *testing.T) {
	if speedFactor(-10) != 0 {
		t.Errorf("negative speed should clamp to 0")
	}
	if speedFactor(maxSpeedKmh/2) != 0.5 {
		t.Errorf("speedFactor(%v) = %v, want 0.5", maxSpeedKmh/2, speedFactor(maxSpeedKmh/2))
	}
	if speedFactor(maxSpeedKmh*2) != 1 {
		t.Errorf("overspeed should clamp to 1")
	}
}
