package sim

import (
	"testing"

	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/scene"
)

func newTestOverlay(t *testing.T) (*SurfacePressureOverlay, *mockBackend) {
	t.Helper()
	b := &mockBackend{}
	e := NewOverlay(quietCtx(), b, scene.NewGroup("root"))
	o, ok := e.(*SurfacePressureOverlay)
	if !ok {
		t.Fatalf("expected a live overlay, got %T", e)
	}
	return o, b
}

func TestNewOverlayBuildsPatches(t *testing.T) {
	o, b := newTestOverlay(t)
	if len(b.patches) != len(o.patches) {
		t.Fatalf("backend patches = %d, overlay tracks %d", len(b.patches), len(o.patches))
	}
	roles := map[string]int{}
	for _, sp := range o.patches {
		roles[sp.role]++
	}
	for _, role := range []string{roleHood, roleRoof, roleRearWing, roleDiffuser} {
		if roles[role] != 1 {
			t.Errorf("role %s appears %d times, want 1", role, roles[role])
		}
	}
	if roles[roleSide] != 2 {
		t.Errorf("expected two side patches, got %d", roles[roleSide])
	}
}

func TestNewOverlayFallsBackOnBackendFailure(t *testing.T) {
	b := &mockBackend{failAll: true}
	e := NewOverlay(quietCtx(), b, scene.NewGroup("root"))
	if _, ok := e.(noopAerodynamics); !ok {
		t.Fatalf("expected the no-op fallback, got %T", e)
	}
}

func TestOverlayRecomputeCoalescing(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.SetVisible(true)

	o.SetSpeed(100)
	o.Update(0.033, 0.033)
	if got := o.RecomputeCount(); got != 1 {
		t.Fatalf("first update recomputes = %d, want 1", got)
	}

	// Small speed drift stays within the coalescing window.
	o.SetSpeed(100 + overlayRecomputeDelta*0.5)
	o.Update(0.033, 0.066)
	o.Update(0.033, 0.099)
	if got := o.RecomputeCount(); got != 1 {
		t.Errorf("drift inside the window triggered recomputes: %d", got)
	}

	o.SetSpeed(100 + overlayRecomputeDelta*1.5)
	o.Update(0.033, 0.132)
	if got := o.RecomputeCount(); got != 2 {
		t.Errorf("recomputes after a large speed change = %d, want 2", got)
	}
}

func TestOverlayStallForcesRecompute(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.SetVisible(true)
	o.SetSpeed(150)
	o.Update(0.033, 0.033)
	before := o.RecomputeCount()

	o.SetWingStall(true)
	o.Update(0.033, 0.066)
	if got := o.RecomputeCount(); got != before+1 {
		t.Errorf("stall toggle recomputes = %d, want %d", got, before+1)
	}

	// Same state again is not dirty.
	o.SetWingStall(true)
	o.Update(0.033, 0.099)
	if got := o.RecomputeCount(); got != before+1 {
		t.Errorf("redundant stall toggle recomputed colors")
	}
}

func TestOverlayMarkersFadeAtStandstill(t *testing.T) {
	o, b := newTestOverlay(t)
	o.SetVisible(true)
	o.SetSpeed(0)
	o.Update(0.033, 0.033)

	// markers is the only point cloud the overlay owns.
	if len(b.pointClouds) != 1 {
		t.Fatalf("point clouds = %d, want 1", len(b.pointClouds))
	}
	if op := b.pointClouds[0].opacity; op != 0 {
		t.Errorf("marker opacity at standstill = %v, want 0", op)
	}
	if op := b.lineSets[0].opacity; op != 0 {
		t.Errorf("core trace opacity at standstill = %v, want 0", op)
	}
}

func TestOverlayStallDampsRearMarkers(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.SetVisible(true)
	o.SetSpeed(250)
	o.Update(0.033, 1.0)

	pc := o.markers.(*mockPointCloud)
	frontBefore := pc.points[0].size
	rearBefore := pc.points[2].size

	// Same animation time so the pulse term cancels out of the comparison.
	o.SetWingStall(true)
	o.Update(0.033, 1.0)

	if got := pc.points[0].size; got != frontBefore {
		t.Errorf("front marker size changed across stall: %v -> %v", frontBefore, got)
	}
	rearAfter := pc.points[2].size
	if rearAfter >= rearBefore {
		t.Fatalf("stalled rear marker size = %v, want below %v", rearAfter, rearBefore)
	}
	// Radius puffs up while intensity collapses, so the net marker size
	// drops well below the diffuse-radius gain alone.
	if rearAfter > rearBefore*overlayStallRadiusMul*overlayStallIntensity {
		t.Errorf("stalled rear marker size = %v, intensity cut not applied", rearAfter)
	}
}

func TestOverlayUpdateSkippedWhileInvisible(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.SetSpeed(200)
	o.Update(0.033, 0.033)
	if o.RecomputeCount() != 0 {
		t.Errorf("invisible overlay recomputed patch colors")
	}
}

func TestOverlaySetVehicleRebuilds(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.SetVisible(true)
	o.SetSpeed(120)
	o.Update(0.033, 0.033)

	o.SetVehicle(profile.VehicleFormula)
	if o.vehicle != profile.VehicleFormula {
		t.Fatalf("vehicle = %s, want formula", o.vehicle)
	}
	if o.computedOnce {
		t.Errorf("vehicle switch should force a color refresh")
	}

	o.Update(0.033, 0.066)
	p := profile.ForVehicle(profile.VehicleFormula)
	if got := len(o.markers.(*mockPointCloud).points); got != len(p.PressureZones) {
		t.Errorf("marker count = %d, want %d", got, len(p.PressureZones))
	}
}
