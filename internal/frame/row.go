// Frame statistics rows with greptime tags
package frame

import (
	"os"
	"time"
)

// Row captures one rendered frame's aerodynamic state for the stats sinks.
type Row struct {
	RunID        string    `json:"run_id"`  // TAG
	Vehicle      string    `json:"vehicle"` // TAG
	T            float64   `json:"t"`       // FIELD, seconds since start
	Dt           float64   `json:"dt"`      // FIELD
	SpeedKmh     float64   `json:"speed_kmh"`
	SpeedFactor  float64   `json:"speed_factor"`
	WingStalled  bool      `json:"wing_stalled"`
	SmokeActive  int       `json:"smoke_active"`
	WakeActive   int       `json:"wake_active"`
	GuideOpacity float64   `json:"guide_opacity"`
	WakeOpacity  float64   `json:"wake_opacity"`
	VortexDrawn  bool      `json:"vortex_drawn"`
	MeanCp       float64   `json:"mean_cp"`
	Timestamp    time.Time `json:"ts"` // TIME INDEX
}

// TableName holds the table name used when writing to GreptimeDB. It
// defaults to "aero_frames" but can be overridden via the AEROVIZ_TABLE
// environment variable.
var TableName = func() string {
	if env := os.Getenv("AEROVIZ_TABLE"); env != "" {
		return env
	}
	return "aero_frames"
}()

func (Row) TableName() string {
	return TableName
}
