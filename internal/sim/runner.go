package sim

import (
	"context"
	"sync"
	"time"

	"aeroviz-sim/internal/config"
	"aeroviz-sim/internal/frame"
	"aeroviz-sim/internal/logging"
	"aeroviz-sim/internal/profile"
	"aeroviz-sim/internal/scene"
)

// FrameWriter is an interface to support different frame-stat sinks.
type FrameWriter interface {
	WriteFrame(frame.Row) error
}

// Optional: writers can also support batch mode.
type batchFrameWriter interface {
	WriteFrames([]frame.Row) error
}

// snapshotter is the optional stats capability of an engine. The no-op
// fallback engine doesn't have it.
type snapshotter interface {
	Snapshot() frame.Row
}

// Simulator drives the visualization engines through a fixed-interval frame
// loop, feeding them speed and wing state from a drive cycle and fanning
// frame stats out to the configured sinks.
type Simulator struct {
	engines      []Aerodynamics
	writer       FrameWriter
	drive        *DriveCycle
	tickInterval time.Duration

	mu            sync.Mutex
	vehicle       profile.Vehicle
	speedOverride float64
	overrideOn    bool
	stallOverride bool
	overrideStall bool
	paused        bool
	elapsed       float64
}

// NewSimulator builds both engines against the backend and wires them to the
// host group. Engines that fail construction degrade to no-ops individually.
func NewSimulator(ctx context.Context, cfg *config.Config, backend scene.Backend, host *scene.Group, writer FrameWriter) *Simulator {
	v := profile.Vehicle(cfg.Vehicle)
	if !profile.Known(v) {
		v = profile.DefaultVehicle
	}

	s := &Simulator{
		engines:      []Aerodynamics{NewFreeFlow(ctx, backend, host), NewOverlay(ctx, backend, host)},
		writer:       writer,
		drive:        NewDriveCycle(cfg.Drive),
		tickInterval: cfg.TickInterval(),
		vehicle:      v,
	}
	for _, e := range s.engines {
		e.SetVehicle(v)
		e.SetVisible(true)
	}
	return s
}

// Run starts the frame loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval, "vehicle", string(s.vehicle))
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now
			s.Step(ctx, dt)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// Step advances all engines by dt seconds and writes one frame-stat row per
// engine that exposes stats.
func (s *Simulator) Step(ctx context.Context, dt float64) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return
	}
	s.elapsed += dt
	t := s.elapsed

	speed := s.drive.Speed(t)
	if s.overrideOn {
		speed = s.speedOverride
	}
	stalled := s.drive.Stalled(t)
	if s.overrideStall {
		stalled = s.stallOverride
	}
	engines := s.engines
	s.mu.Unlock()

	var batch []frame.Row
	for _, e := range engines {
		e.SetSpeed(speed)
		e.SetWingStall(stalled)
		e.Update(dt, t)
		if sn, ok := e.(snapshotter); ok {
			row := sn.Snapshot()
			row.Timestamp = time.Now().UTC()
			batch = append(batch, row)
		}
	}

	if s.writer == nil || len(batch) == 0 {
		return
	}
	if bw, ok := s.writer.(batchFrameWriter); ok {
		if err := bw.WriteFrames(batch); err != nil {
			log.Error("frame batch write failed", "err", err)
		}
		return
	}
	for _, row := range batch {
		if err := s.writer.WriteFrame(row); err != nil {
			log.Error("frame write failed", "run_id", row.RunID, "err", err)
		}
	}
}

// SetVehicle switches all engines to the given vehicle class.
func (s *Simulator) SetVehicle(v profile.Vehicle) {
	s.mu.Lock()
	if !profile.Known(v) {
		v = profile.DefaultVehicle
	}
	s.vehicle = v
	engines := s.engines
	s.mu.Unlock()
	for _, e := range engines {
		e.SetVehicle(v)
	}
}

// Vehicle returns the active vehicle class.
func (s *Simulator) Vehicle() profile.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vehicle
}

// ToggleStall flips the manual wing-stall override and returns the new
// state. The drive cycle's own stall windows are ignored while an override
// is set.
func (s *Simulator) ToggleStall() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stallOverride = !s.stallOverride
	s.overrideStall = true
	return s.stallOverride
}

// SetSpeedOverride pins the speed to a fixed value, bypassing the drive
// cycle.
func (s *Simulator) SetSpeedOverride(kmh float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kmh < 0 {
		kmh = 0
	}
	s.speedOverride = kmh
	s.overrideOn = true
}

// ClearOverrides hands control back to the drive cycle.
func (s *Simulator) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrideOn = false
	s.overrideStall = false
}

// TogglePause flips the pause state and returns it.
func (s *Simulator) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Dispose releases all engine resources.
func (s *Simulator) Dispose() {
	s.mu.Lock()
	engines := s.engines
	s.engines = nil
	s.mu.Unlock()
	for _, e := range engines {
		e.Dispose()
	}
}
