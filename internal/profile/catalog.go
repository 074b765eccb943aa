package profile

import "aeroviz-sim/internal/flow"

// Built-in vehicle classes. Geometry and tuning values are visual, not
// measured; they were picked for plausible on-screen behavior.
var catalog = map[Vehicle]*Profile{
	VehicleFormula:  formulaProfile,
	VehicleGT:       gtProfile,
	VehicleRoadster: roadsterProfile,
	VehicleSUV:      suvProfile,
}

// ForVehicle returns the profile for v, falling back to DefaultVehicle when
// the code is unknown.
func ForVehicle(v Vehicle) *Profile {
	if p, ok := catalog[v]; ok {
		return p
	}
	return catalog[DefaultVehicle]
}

// Known reports whether v names a built-in vehicle class.
func Known(v Vehicle) bool {
	_, ok := catalog[v]
	return ok
}

// Vehicles lists the built-in vehicle classes in a stable order.
func Vehicles() []Vehicle {
	return []Vehicle{VehicleFormula, VehicleGT, VehicleRoadster, VehicleSUV}
}

var formulaProfile = &Profile{
	Vehicle: VehicleFormula,
	Extents: Extents{HalfWidth: 1.0, HalfLength: 2.8, HalfHeight: 0.5},
	Seeds: SeedLayout{
		TopLanes:         10,
		TopHeights:       [2]float64{0.35, 0.85},
		SideCount:        10,
		UnderfloorCount:  5,
		UnderfloorHeight: 0.06,
		FarFieldCount:    4,
		FrontWing:        &FrontWingSeeds{Count: 6, Height: 0.18, Eta: -1.15},
	},
	PressureZones: []PressureZone{
		{Xi: 0, Eta: -1.05, Height: 0.2, Color: flow.Color{R: 1, G: 0.2, B: 0.1}, Radius: 0.35, Intensity: 1.0, Phase: 0},
		{Xi: 0, Eta: -0.3, Height: 0.55, Color: flow.Color{R: 1, G: 0.5, B: 0.1}, Radius: 0.3, Intensity: 0.7, Phase: 1.3},
		{Xi: 0.55, Eta: 0.1, Height: 0.3, Color: flow.Color{R: 0.2, G: 0.4, B: 1}, Radius: 0.25, Intensity: 0.6, Phase: 2.1},
		{Xi: -0.55, Eta: 0.1, Height: 0.3, Color: flow.Color{R: 0.2, G: 0.4, B: 1}, Radius: 0.25, Intensity: 0.6, Phase: 2.7},
		{Xi: 0, Eta: 0.95, Height: 0.9, Color: flow.Color{R: 0.1, G: 0.3, B: 1}, Radius: 0.4, Intensity: 1.0, Phase: 0.6},
		{Xi: 0, Eta: 1.1, Height: 0.15, Color: flow.Color{R: 0.3, G: 0.9, B: 0.9}, Radius: 0.3, Intensity: 0.8, Phase: 1.9},
	},
	Vortices: []VortexDef{
		{Xi: 0.95, Eta: 1.05, Sign: -1, Strength: 1.4, CoreRadius: 0.12},
		{Xi: -0.95, Eta: 1.05, Sign: 1, Strength: 1.4, CoreRadius: 0.12},
		{Xi: 0.75, Eta: -1.1, Sign: -1, Strength: 0.6, CoreRadius: 0.08},
		{Xi: -0.75, Eta: -1.1, Sign: 1, Strength: 0.6, CoreRadius: 0.08},
	},
	Wake:            Wake{Count: 140, Width: 1.1, HeightMin: 0.1, HeightMax: 1.0},
	RearThreshold:   0,
	Strouhal:        0.21,
	MaxVortexRadius: 0.55,
}

var gtProfile = &Profile{
	Vehicle: VehicleGT,
	Extents: Extents{HalfWidth: 0.95, HalfLength: 2.3, HalfHeight: 0.65},
	Seeds: SeedLayout{
		TopLanes:         10,
		TopHeights:       [2]float64{0.5, 1.05},
		SideCount:        10,
		UnderfloorCount:  4,
		UnderfloorHeight: 0.1,
		FarFieldCount:    4,
	},
	PressureZones: []PressureZone{
		{Xi: 0, Eta: -1.0, Height: 0.4, Color: flow.Color{R: 1, G: 0.25, B: 0.1}, Radius: 0.4, Intensity: 1.0, Phase: 0},
		{Xi: 0, Eta: -0.45, Height: 0.8, Color: flow.Color{R: 1, G: 0.6, B: 0.15}, Radius: 0.3, Intensity: 0.6, Phase: 0.9},
		{Xi: 0, Eta: 0.85, Height: 0.75, Color: flow.Color{R: 0.15, G: 0.35, B: 1}, Radius: 0.45, Intensity: 0.9, Phase: 1.7},
		{Xi: 0, Eta: 1.05, Height: 0.2, Color: flow.Color{R: 0.3, G: 0.85, B: 0.9}, Radius: 0.35, Intensity: 0.7, Phase: 2.4},
	},
	Vortices: []VortexDef{
		{Xi: 0.8, Eta: 1.0, Sign: -1, Strength: 1.0, CoreRadius: 0.14},
		{Xi: -0.8, Eta: 1.0, Sign: 1, Strength: 1.0, CoreRadius: 0.14},
	},
	Wake:            Wake{Count: 110, Width: 1.0, HeightMin: 0.15, HeightMax: 1.1},
	RearThreshold:   0,
	Strouhal:        0.2,
	MaxVortexRadius: 0.45,
}

var roadsterProfile = &Profile{
	Vehicle: VehicleRoadster,
	Extents: Extents{HalfWidth: 0.9, HalfLength: 2.1, HalfHeight: 0.6},
	Seeds: SeedLayout{
		TopLanes:         9,
		TopHeights:       [2]float64{0.45, 0.95},
		SideCount:        10,
		UnderfloorCount:  4,
		UnderfloorHeight: 0.09,
		FarFieldCount:    4,
		FrontWing:        &FrontWingSeeds{Count: 4, Height: 0.22, Eta: -1.0},
	},
	PressureZones: []PressureZone{
		{Xi: 0, Eta: -0.95, Height: 0.35, Color: flow.Color{R: 1, G: 0.3, B: 0.1}, Radius: 0.35, Intensity: 0.9, Phase: 0.2},
		{Xi: 0, Eta: -0.35, Height: 0.7, Color: flow.Color{R: 1, G: 0.65, B: 0.2}, Radius: 0.3, Intensity: 0.55, Phase: 1.1},
		{Xi: 0, Eta: 0.8, Height: 0.65, Color: flow.Color{R: 0.2, G: 0.4, B: 1}, Radius: 0.4, Intensity: 0.8, Phase: 1.8},
	},
	Vortices: []VortexDef{
		{Xi: 0.75, Eta: 0.95, Sign: -1, Strength: 0.9, CoreRadius: 0.13},
		{Xi: -0.75, Eta: 0.95, Sign: 1, Strength: 0.9, CoreRadius: 0.13},
	},
	Wake:            Wake{Count: 100, Width: 0.95, HeightMin: 0.12, HeightMax: 1.0},
	RearThreshold:   0,
	Strouhal:        0.2,
	MaxVortexRadius: 0.4,
}

var suvProfile = &Profile{
	Vehicle: VehicleSUV,
	Extents: Extents{HalfWidth: 1.0, HalfLength: 2.4, HalfHeight: 0.9},
	Seeds: SeedLayout{
		TopLanes:         10,
		TopHeights:       [2]float64{0.7, 1.4},
		SideCount:        10,
		UnderfloorCount:  3,
		UnderfloorHeight: 0.14,
		FarFieldCount:    4,
	},
	PressureZones: []PressureZone{
		{Xi: 0, Eta: -1.0, Height: 0.55, Color: flow.Color{R: 1, G: 0.2, B: 0.1}, Radius: 0.5, Intensity: 1.0, Phase: 0},
		{Xi: 0, Eta: 0.9, Height: 1.0, Color: flow.Color{R: 0.15, G: 0.3, B: 1}, Radius: 0.55, Intensity: 1.0, Phase: 1.5},
		{Xi: 0, Eta: 1.05, Height: 0.3, Color: flow.Color{R: 0.3, G: 0.8, B: 0.9}, Radius: 0.4, Intensity: 0.8, Phase: 2.2},
	},
	Vortices: []VortexDef{
		{Xi: 0.85, Eta: 0.95, Sign: -1, Strength: 1.2, CoreRadius: 0.18},
		{Xi: -0.85, Eta: 0.95, Sign: 1, Strength: 1.2, CoreRadius: 0.18},
	},
	Wake:            Wake{Count: 150, Width: 1.25, HeightMin: 0.2, HeightMax: 1.6},
	RearThreshold:   0,
	Strouhal:        0.19,
	MaxVortexRadius: 0.6,
}
