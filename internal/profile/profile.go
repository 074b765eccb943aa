// Static per-vehicle aerodynamic configuration
package profile

import "aeroviz-sim/internal/flow"

// Vehicle identifies one of the supported body styles.
type Vehicle string

const (
	VehicleFormula  Vehicle = "formula"
	VehicleGT       Vehicle = "gt"
	VehicleRoadster Vehicle = "roadster"
	VehicleSUV      Vehicle = "suv"

	// DefaultVehicle is used when an unknown vehicle code is requested.
	DefaultVehicle = VehicleGT
)

// Extents holds the half-sizes of the body in meters.
type Extents struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfLength float64 `yaml:"half_length"`
	HalfHeight float64 `yaml:"half_height"`
}

// PressureZone marks a pulsing high/low pressure spot on the body surface.
type PressureZone struct {
	Xi, Eta   float64
	Height    float64
	Color     flow.Color
	Radius    float64
	Intensity float64
	Phase     float64
}

// VortexDef describes one trailing vortex in body-normalized coordinates.
type VortexDef struct {
	Xi, Eta    float64
	Sign       int // +1 counter-clockwise, -1 clockwise
	Strength   float64
	CoreRadius float64
}

// Wake parameterizes the turbulent wake particle street.
type Wake struct {
	Count     int
	Width     float64
	HeightMin float64
	HeightMax float64
}

// FrontWingSeeds places streamline seeds at an exposed front wing. Body
// styles without one leave it nil.
type FrontWingSeeds struct {
	Count  int
	Height float64
	Eta    float64
}

// SeedLayout holds the per-group seed counts and placement parameters
// expanded by BuildSeeds.
type SeedLayout struct {
	TopLanes         int
	TopHeights       [2]float64
	SideCount        int
	UnderfloorCount  int
	UnderfloorHeight float64
	FarFieldCount    int
	FrontWing        *FrontWingSeeds
}

// Profile is the immutable aerodynamic configuration of one vehicle class.
// Callers share Profile pointers and must never mutate them; ApplyWingStall
// derives modified copies instead.
type Profile struct {
	Vehicle Vehicle
	Extents Extents
	Seeds   SeedLayout

	PressureZones []PressureZone
	Vortices      []VortexDef
	Wake          Wake

	// RearThreshold is the eta position separating front from rear for the
	// wing-stall transform; zones and vortices aft of it degrade.
	RearThreshold float64

	// Strouhal relates shedding frequency to speed and body width.
	Strouhal float64

	// MaxVortexRadius bounds the trailing-vortex spiral radius at top speed.
	MaxVortexRadius float64
}
