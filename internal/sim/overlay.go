package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"aeroviz-sim/internal/flow"
	"aeroviz-sim/internal/logging"
	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/scene"
)

// Patch roles. The stall transform singles out the rear wing.
const (
	roleHood     = "hood"
	roleRoof     = "roof"
	roleSide     = "side"
	roleRearWing = "rear-wing"
	roleDiffuser = "diffuser"
)

// surfacePatch is one rectangular body-surface region, subdivided into a
// small vertex grid and painted with pressure-coefficient colors.
type surfacePatch struct {
	role   string
	center scene.Point3
	halfU  float64 // lateral half-size, meters
	halfV  float64 // longitudinal half-size, meters
}

// SurfacePressureOverlay paints per-vertex Cp colors onto body-surface
// patches and animates pulsing pressure-zone markers plus two vortex-core
// traces at the diffuser exit.
type SurfacePressureOverlay struct {
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

	patches    []surfacePatch
	patchPrims []scene.Patch
	patchNoise [][]float64

	markers scene.PointCloud
	traces  scene.LineSet

	// Patch colors refresh only when the speed moved far enough since the
	// last recompute.
	lastComputedSpeed float64
	computedOnce      bool
	recomputes        int
}

// NewOverlay attaches a surface-pressure overlay to the host group, built
// invisible for the default vehicle. Backend failure degrades to a no-op
// engine.
func NewOverlay(ctx context.Context, backend scene.Backend, host *scene.Group) Aerodynamics {
	o := &SurfacePressureOverlay{
		ctx:     ctx,
		id:      uuid.New().String(),
		backend: backend,
		group:   host.NewChild("overlay"),
		rng:     rand.New(rand.NewSource(rand.Int63())),
		vehicle: profile.DefaultVehicle,
	}
	if err := o.rebuild(profile.DefaultVehicle); err != nil {
		o.group.Dispose()
		return fallback(ctx, "overlay", err)
	}
	o.group.SetVisible(false)
	return o
}

func (o *SurfacePressureOverlay) SetVehicle(v profile.Vehicle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !profile.Known(v) {
		logging.FromContext(o.ctx).Warn("unknown vehicle, using default",
			"vehicle", string(v), "default", string(profile.DefaultVehicle))
		v = profile.DefaultVehicle
	}
	if v == o.vehicle {
		return
	}
	if err := o.rebuild(v); err != nil {
		logging.FromContext(o.ctx).Error("vehicle rebuild failed", "vehicle", string(v), "err", err)
		return
	}
	o.vehicle = v
}

func (o *SurfacePressureOverlay) SetSpeed(kmh float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if kmh < 0 {
		kmh = 0
	}
	o.speedKmh = kmh
}

func (o *SurfacePressureOverlay) SetVisible(visible bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = visible
	o.group.SetVisible(visible)
}

func (o *SurfacePressureOverlay) SetWingStall(stalled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if stalled == o.stalled {
		return
	}
	o.stalled = stalled
	o.stallDirty = true
}

func (o *SurfacePressureOverlay) Dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.group.Dispose()
	o.patchPrims, o.patchNoise, o.markers, o.traces = nil, nil, nil, nil
}

func (o *SurfacePressureOverlay) Update(dt, t float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.visible {
		return
	}
	if o.stallDirty {
		o.derived = profile.ApplyWingStall(o.base, o.stalled)
		o.stallDirty = false
		o.computedOnce = false // force a color refresh with the new profile
	}

	sf := speedFactor(o.speedKmh)

	runSubsystem(o.ctx, "patches", func() {
		if !o.computedOnce || math.Abs(o.speedKmh-o.lastComputedSpeed) > overlayRecomputeDelta {
			o.recomputePatchColors(sf)
			o.lastComputedSpeed = o.speedKmh
			o.computedOnce = true
			o.recomputes++
		}
	})
	runSubsystem(o.ctx, "markers", func() { o.updateMarkers(t, sf) })
	runSubsystem(o.ctx, "coretraces", func() { o.updateTraces(sf) })
}

// RecomputeCount reports how many patch color refreshes have run.
func (o *SurfacePressureOverlay) RecomputeCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.recomputes
}

// bodyPatches lays out the painted surface regions for one vehicle class.
// Body styles without an exposed rear wing paint a trunk-lid patch under the
// same role so the stall signature still has a home.
func bodyPatches(p *profile.Profile) []surfacePatch {
	e := p.Extents
	patches := []surfacePatch{
		{role: roleHood, center: scene.Point3{Y: e.HalfHeight * 0.8, Z: -e.HalfLength * 0.55}, halfU: e.HalfWidth * 0.7, halfV: e.HalfLength * 0.3},
		{role: roleRoof, center: scene.Point3{Y: e.HalfHeight * 1.3, Z: 0}, halfU: e.HalfWidth * 0.6, halfV: e.HalfLength * 0.25},
		{role: roleSide, center: scene.Point3{X: e.HalfWidth, Y: e.HalfHeight * 0.6, Z: 0}, halfU: e.HalfHeight * 0.4, halfV: e.HalfLength * 0.5},
		{role: roleSide, center: scene.Point3{X: -e.HalfWidth, Y: e.HalfHeight * 0.6, Z: 0}, halfU: e.HalfHeight * 0.4, halfV: e.HalfLength * 0.5},
		{role: roleRearWing, center: scene.Point3{Y: e.HalfHeight * 1.5, Z: e.HalfLength * 0.85}, halfU: e.HalfWidth * 0.8, halfV: e.HalfLength * 0.12},
		{role: roleDiffuser, center: scene.Point3{Y: 0.12, Z: e.HalfLength * 0.8}, halfU: e.HalfWidth * 0.6, halfV: e.HalfLength * 0.18},
	}
	return patches
}

func (o *SurfacePressureOverlay) rebuild(v profile.Vehicle) error {
	o.group.Clear()
	o.patchPrims, o.patchNoise = nil, nil

	p := profile.ForVehicle(v)
	o.base = p
	o.derived = profile.ApplyWingStall(p, o.stalled)
	o.stallDirty = false
	o.computedOnce = false

	o.patches = bodyPatches(p)
	for i, sp := range o.patches {
		prim, err := o.backend.NewPatch(fmt.Sprintf("patch-%d-%s-%s", i, sp.role, o.id), overlayPatchRows, overlayPatchCols)
		if err != nil {
			return fmt.Errorf("patch %s: %w", sp.role, err)
		}
		o.group.Add(prim)
		o.patchPrims = append(o.patchPrims, prim)
		o.patchNoise = append(o.patchNoise, make([]float64, overlayPatchRows*overlayPatchCols))
	}

	markers, err := o.backend.NewPointCloud("zones-"+o.id, len(p.PressureZones))
	if err != nil {
		return fmt.Errorf("zone markers: %w", err)
	}
	o.markers = markers
	o.group.Add(markers)

	traces, err := o.backend.NewLineSet("coretraces-"+o.id, 2, overlayTracePoints)
	if err != nil {
		return fmt.Errorf("core traces: %w", err)
	}
	o.traces = traces
	o.group.Add(traces)
	return nil
}

// recomputePatchColors repaints every patch vertex. Each vertex maps to
// normalized flow coordinates, samples the top-view field scaled by the
// speed factor, and fades toward the neutral freestream color as the
// vehicle slows. Stalled rear-wing patches carry correlated near-zero noise
// instead of a computed signature.
func (o *SurfacePressureOverlay) recomputePatchColors(sf float64) {
	p := o.base
	for pi, sp := range o.patches {
		prim := o.patchPrims[pi]
		noise := o.patchNoise[pi]
		stalledWing := o.stalled && sp.role == roleRearWing

		for r := 0; r < overlayPatchRows; r++ {
			for c := 0; c < overlayPatchCols; c++ {
				fu := float64(c)/float64(overlayPatchCols-1)*2 - 1
				fv := float64(r)/float64(overlayPatchRows-1)*2 - 1
				pt := scene.Point3{
					X: sp.center.X + fu*sp.halfU,
					Y: sp.center.Y,
					Z: sp.center.Z + fv*sp.halfV,
				}

				var cp float64
				if stalledWing {
					k := r*overlayPatchCols + c
					noise[k] = noise[k]*0.7 + (o.rng.Float64()*2-1)*overlayStallNoise
					cp = noise[k]
				} else {
					xi := pt.X / p.Extents.HalfWidth
					eta := pt.Z / p.Extents.HalfLength
					vxi, veta := flow.TopViewVelocity(xi, eta)
					cp = flow.PressureCoeff(vxi*sf, veta*sf)
					cp -= 1 - sf
				}
				prim.SetVertex(r, c, pt, flow.CpToColor(cp))
			}
		}
		prim.SetOpacity(0.4 + 0.6*sf)
	}
}

// updateMarkers pulses the pressure-zone markers. The derived profile has
// already weakened stalled rear intensities; the overlay cuts them further
// and puffs up their radius into a diffuse signature.
func (o *SurfacePressureOverlay) updateMarkers(t, sf float64) {
	p := o.derived.Profile
	for i, z := range p.PressureZones {
		pulse := 0.8 + 0.2*math.Sin(t*2+z.Phase)
		scale := sf * sf * z.Intensity * pulse
		radius := z.Radius
		if o.stalled && z.Eta > p.RearThreshold {
			radius *= overlayStallRadiusMul
			scale *= overlayStallIntensity
		}
		pt := scene.Point3{
			X: z.Xi * p.Extents.HalfWidth,
			Y: z.Height,
			Z: z.Eta * p.Extents.HalfLength,
		}
		o.markers.SetPoint(i, pt, z.Color.Scale(0.5+0.5*pulse), radius*scale)
	}
	o.markers.SetOpacity(sf * sf * (0.8 + 0.2*math.Sin(t*2)))
}

// updateTraces recomputes the two vortex-core spirals growing downstream
// from the diffuser exit.
func (o *SurfacePressureOverlay) updateTraces(sf float64) {
	p := o.base
	radius := sf * 0.25
	col := flow.CpToColor(-2)

	for side := 0; side < 2; side++ {
		sign := 1.0
		if side == 1 {
			sign = -1.0
		}
		origin := scene.Point3{X: sign * p.Extents.HalfWidth * 0.45, Y: 0.15, Z: p.Extents.HalfLength}
		pts := make([]scene.Point3, overlayTracePoints)
		cols := make([]flow.Color, overlayTracePoints)
		for i := range pts {
			frac := float64(i) / float64(overlayTracePoints-1)
			angle := sign * frac * overlayTraceTurns * 2 * math.Pi
			r := radius * frac
			pts[i] = scene.Point3{
				X: origin.X + math.Cos(angle)*r,
				Y: origin.Y + math.Sin(angle)*r,
				Z: origin.Z + frac*overlayTraceLength,
			}
			cols[i] = col.Scale(1 - 0.5*frac)
		}
		o.traces.SetLine(side, pts, cols)
	}
	o.traces.SetOpacity(sf)
}
