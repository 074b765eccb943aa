package sim

import "aeroviz-sim/internal/frame"

// MultiWriter fans frame rows out to multiple writers.
type MultiWriter struct {
	writers []FrameWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...FrameWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// WriteFrame sends a frame row to all writers.
func (mw *MultiWriter) WriteFrame(row frame.Row) error {
	for _, w := range mw.writers {
		if err := w.WriteFrame(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFrames sends multiple frame rows to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteFrames(rows []frame.Row) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchFrameWriter); ok {
			if err := bw.WriteFrames(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteFrame(r); err != nil {
				return err
			}
		}
	}
	return nil
}
