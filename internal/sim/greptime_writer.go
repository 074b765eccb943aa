// GreptimeDBWriter ships frame stats to GreptimeDB via the ingester client
package sim

import (
	"context"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"aeroviz-sim/internal/frame"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes frame rows to a GreptimeDB table.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
}

// NewGreptimeDBWriter creates a GreptimeDB writer for the given endpoint and
// database.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{
		client: client,
		table:  frame.TableName,
	}, nil
}

// WriteFrame inserts a single frame row.
func (w *GreptimeDBWriter) WriteFrame(row frame.Row) error {
	return w.WriteFrames([]frame.Row{row})
}

// WriteFrames inserts multiple frame rows in one request.
func (w *GreptimeDBWriter) WriteFrames(rows []frame.Row) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.New(context.Background())

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("vehicle", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("t", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("dt", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("speed_kmh", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("speed_factor", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("wing_stalled", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("smoke_active", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("wake_active", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("guide_opacity", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("wake_opacity", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("vortex_drawn", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("mean_cp", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID,
			r.Vehicle,
			r.T,
			r.Dt,
			r.SpeedKmh,
			r.SpeedFactor,
			r.WingStalled,
			int64(r.SmokeActive),
			int64(r.WakeActive),
			r.GuideOpacity,
			r.WakeOpacity,
			r.VortexDrawn,
			r.MeanCp,
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	_, err = w.client.Write(ctx, tbl)
	return err
}
