package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aeroviz",
	Short: "Aerodynamic flow visualization toolkit",
	Long:  "Aeroviz renders a stylized potential-flow visualization around a vehicle body and streams per-frame aero stats to pluggable sinks.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
}
