// Aerodynamic visualization engines and their host-facing interface
package sim

import (
	"context"

	"aeroviz-sim/internal/logging"
	"aeroviz-sim/internal/profile"
)

// Aerodynamics is the host-facing surface of one visualization engine.
// The host render loop drives Update once per frame; setters only store
// state and defer expensive work to the next update.
type Aerodynamics interface {
	SetVehicle(v profile.Vehicle)
	SetSpeed(kmh float64)
	SetVisible(visible bool)
	SetWingStall(stalled bool)
	Update(dt, t float64)
	Dispose()
}

// noopAerodynamics is substituted when engine construction fails, so the
// render loop keeps running with the visualization disabled.
type noopAerodynamics struct{}

func (noopAerodynamics) SetVehicle(profile.Vehicle) {}
func (noopAerodynamics) SetSpeed(float64)           {}
func (noopAerodynamics) SetVisible(bool)            {}
func (noopAerodynamics) SetWingStall(bool)          {}
func (noopAerodynamics) Update(float64, float64)    {}
func (noopAerodynamics) Dispose()                   {}

// fallback logs a construction failure and returns the no-op engine.
func fallback(ctx context.Context, name string, err error) Aerodynamics {
	logging.FromContext(ctx).Error("engine construction failed, using no-op",
		"engine", name, "err", err)
	return noopAerodynamics{}
}

// runSubsystem insulates one subsystem of a frame update: a panic inside fn
// is logged and swallowed so the other subsystems and the frame itself
// still proceed, with the failed subsystem frozen at its last good state.
func runSubsystem(ctx context.Context, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error("subsystem fault", "subsystem", name, "panic", r)
		}
	}()
	fn()
}
