package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"aeroviz-sim/internal/config"
	"aeroviz-sim/internal/logging"
	"aeroviz-sim/internal/scene"
	"aeroviz-sim/internal/sim"
	"aeroviz-sim/internal/tui"
)

var (
	runConfigPath string
	runSchemaPath string
	runVehicle    string
	runHeadless   bool
	runColor      bool
	runLogFile    string
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the live flow visualization",
	Long:  "run starts the visualization engines, drives them through a speed cycle, and renders into the terminal (or streams frame stats headlessly).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}
		if runVehicle != "" {
			cfg.Vehicle = runVehicle
		}
		if runLogFile != "" {
			cfg.Sinks.LogFile = runLogFile
		}
		if env := os.Getenv("GREPTIMEDB_ENDPOINT"); env != "" {
			cfg.Sinks.Greptime.Endpoint = env
		}

		if runHeadless {
			return runHeadlessLoop(cfg)
		}
		return runTUI(cfg)
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to configuration YAML (defaults compiled in)")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "", "Path to CUE schema file for config validation")
	runCmd.Flags().StringVar(&runVehicle, "vehicle", "", "Vehicle class: formula, gt, roadster, suv")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "No terminal UI; print frame stats to STDOUT")
	runCmd.Flags().BoolVar(&runColor, "color", false, "Colorized table output in headless mode")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export frame stats (JSONL)")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Debug logging")
}

func runTUI(cfg *config.Config) error {
	// Logs can't share the alternate screen; divert them to the log file's
	// sidecar or drop them.
	logSink := io.Discard
	if cfg.Sinks.LogFile != "" {
		if f, err := os.Create(cfg.Sinks.LogFile + ".log"); err == nil {
			defer f.Close()
			logSink = f
		}
	}
	log := logging.NewWithWriter(logSink, runVerbose)
	ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
	defer cancel()

	renderer := tui.NewRenderer()
	host := scene.NewGroup("host")

	// The UI writer is bound to the program after construction; frames sent
	// before that are dropped.
	uiWriter := tui.NewWriter(nil)
	simulator, cleanup, err := buildSimulator(ctx, cfg, renderer, host, uiWriter)
	if err != nil {
		return err
	}
	defer cleanup()
	defer simulator.Dispose()

	model := tui.NewModel(simulator, renderer)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	uiWriter.SetProgram(prog)

	go simulator.Run(ctx)

	_, err = prog.Run()
	cancel()
	return err
}

func runHeadlessLoop(cfg *config.Config) error {
	log := logging.New(runVerbose)
	ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
	defer cancel()

	renderer := tui.NewRenderer()
	host := scene.NewGroup("host")

	simulator, cleanup, err := buildSimulator(ctx, cfg, renderer, host, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	defer simulator.Dispose()

	go simulator.Run(ctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	cancel()
	log.Info("visualization stopped")
	return nil
}

// buildSimulator wires the writer chain and constructs the simulator.
func buildSimulator(ctx context.Context, cfg *config.Config, backend scene.Backend, host *scene.Group, primary sim.FrameWriter) (*sim.Simulator, func(), error) {
	writer, cleanup, err := newFrameWriter(cfg, primary, runHeadless, runColor)
	if err != nil {
		return nil, nil, err
	}
	return sim.NewSimulator(ctx, cfg, backend, host, writer), cleanup, nil
}
