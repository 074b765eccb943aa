package main

import (
	"aeroviz-sim/internal/config"
	"aeroviz-sim/internal/sim"
)

// newFrameWriter assembles the frame-stat writer chain from config: an
// optional primary sink (the TUI), an optional JSONL export, an optional
// GreptimeDB sink, and STDOUT output in headless mode. It returns the
// writer and a cleanup function closing any resources.
func newFrameWriter(cfg *config.Config, primary sim.FrameWriter, headless, color bool) (sim.FrameWriter, func(), error) {
	cleanup := func() {}
	var writers []sim.FrameWriter

	if primary != nil {
		writers = append(writers, primary)
	}
	if headless {
		if color {
			writers = append(writers, sim.NewColorStdoutWriter())
		} else {
			writers = append(writers, sim.NewJSONStdoutWriter())
		}
	}
	if cfg.Sinks.LogFile != "" {
		fw, err := sim.NewFileWriter(cfg.Sinks.LogFile)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, fw)
		cleanup = func() { fw.Close() }
	}
	if cfg.Sinks.Greptime.Endpoint != "" {
		db := cfg.Sinks.Greptime.Database
		if db == "" {
			db = "public"
		}
		gw, err := sim.NewGreptimeDBWriter(cfg.Sinks.Greptime.Endpoint, db)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		writers = append(writers, gw)
	}

	switch len(writers) {
	case 0:
		return nil, cleanup, nil
	case 1:
		return writers[0], cleanup, nil
	default:
		return sim.NewMultiWriter(writers...), cleanup, nil
	}
}
