package profile

// Wing-stall degradation factors. Tuned for looks, not physics.
const (
	stallIntensityFactor = 0.25
	stallWakeCountFactor = 1.5
	stallWakeWidthFactor = 1.6
)

// Derived is the result of ApplyWingStall. When Owned is false the Profile
// pointer aliases the base profile and must be treated as read-only; when
// true it is an independent copy.
type Derived struct {
	Profile *Profile
	Owned   bool
}

// ApplyWingStall derives the profile in effect for the given wing state.
// Unstalled it returns the base profile itself. Stalled it returns a copy
// with rear pressure zones weakened, rear trailing vortices dropped, and a
// wider, denser wake; the base profile is never mutated.
func ApplyWingStall(p *Profile, stalled bool) Derived {
	if !stalled {
		return Derived{Profile: p}
	}

	d := *p

	d.PressureZones = make([]PressureZone, len(p.PressureZones))
	copy(d.PressureZones, p.PressureZones)
	for i := range d.PressureZones {
		if d.PressureZones[i].Eta > p.RearThreshold {
			d.PressureZones[i].Intensity *= stallIntensityFactor
		}
	}

	// Separated flow destroys the organized trailing vortices behind the
	// wing; only forward vortex structures survive.
	d.Vortices = nil
	for _, v := range p.Vortices {
		if v.Eta <= p.RearThreshold {
			d.Vortices = append(d.Vortices, v)
		}
	}

	d.Wake.Count = int(float64(p.Wake.Count) * stallWakeCountFactor)
	d.Wake.Width = p.Wake.Width * stallWakeWidthFactor

	return Derived{Profile: &d, Owned: true}
}
