package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aeroviz-sim/internal/sim"
)

var (
	replayInput string
	replaySpeed float64
	replayColor bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a frame-stat log file",
	Long:  "replay feeds frame rows from a JSONL log back to STDOUT at recorded (or accelerated) pace.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		var writer sim.FrameWriter
		if replayColor {
			writer = sim.NewColorStdoutWriter()
		} else {
			writer = sim.NewJSONStdoutWriter()
		}
		return sim.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to frame-stat log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayColor, "color", false, "Colorized table output")
	replayCmd.MarkFlagRequired("input")
}
