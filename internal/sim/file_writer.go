package sim

import (
	"encoding/json"
	"os"

	"aeroviz-sim/internal/frame"
)

// FileWriter appends frame rows to a JSONL file for later replay.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates a FileWriter truncating any existing file at path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// WriteFrame logs a single frame row.
func (f *FileWriter) WriteFrame(row frame.Row) error {
	return f.enc.Encode(row)
}

// WriteFrames logs multiple frame rows.
func (f *FileWriter) WriteFrames(rows []frame.Row) error {
	for _, r := range rows {
		if err := f.WriteFrame(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}
