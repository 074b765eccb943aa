// Writer implementation printing frame stats to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"aeroviz-sim/internal/frame"
)

// JSONStdoutWriter prints frame rows as JSON lines.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteFrame outputs a frame row in JSON format.
func (w *JSONStdoutWriter) WriteFrame(row frame.Row) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteFrames outputs multiple frame rows in JSON format.
func (w *JSONStdoutWriter) WriteFrames(rows []frame.Row) error {
	for _, r := range rows {
		_ = w.WriteFrame(r)
	}
	return nil
}
