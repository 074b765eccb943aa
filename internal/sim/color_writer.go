// ColorStdoutWriter prints human-friendly, colorized frame stats to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"aeroviz-sim/internal/frame"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorGray   = "\x1b[90m"
)

// ColorStdoutWriter prints frame rows as an ANSI-colored table. Consecutive
// rows reuse one tabwriter so columns stay aligned.
type ColorStdoutWriter struct {
	out  io.Writer
	once sync.Once
	tw   *tabwriter.Writer
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{out: os.Stdout}
}

func (w *ColorStdoutWriter) printHeader() {
	fmt.Fprintln(w.tw, strings.Join([]string{
		"VEHICLE", "T", "SPEED", "FACTOR", "WING", "SMOKE", "WAKE", "MEAN CP",
	}, "\t"))
}

// WriteFrame prints one colorized frame row.
func (w *ColorStdoutWriter) WriteFrame(row frame.Row) error {
	w.once.Do(func() {
		w.tw = tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
		w.printHeader()
	})

	wing := colorGreen + "attached" + colorReset
	if row.WingStalled {
		wing = colorRed + "stalled" + colorReset
	}
	speedCol := colorGray
	switch {
	case row.SpeedFactor > 0.75:
		speedCol = colorRed
	case row.SpeedFactor > 0.4:
		speedCol = colorYellow
	case row.SpeedFactor > 0.1:
		speedCol = colorCyan
	}
	fmt.Fprintf(w.tw, "%s\t%6.1f\t%s%5.1f%s\t%.2f\t%s\t%d\t%d\t%s%+.3f%s\n",
		row.Vehicle, row.T,
		speedCol, row.SpeedKmh, colorReset,
		row.SpeedFactor, wing,
		row.SmokeActive, row.WakeActive,
		colorBlue, row.MeanCp, colorReset,
	)
	return w.tw.Flush()
}

// WriteFrames prints multiple rows.
func (w *ColorStdoutWriter) WriteFrames(rows []frame.Row) error {
	for _, r := range rows {
		if err := w.WriteFrame(r); err != nil {
			return err
		}
	}
	return nil
}
