package recording

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Serialize renders frames as CSV: the header record first, then one record per
// frame, LF line endings. Frames are written as given; a frame with the wrong
// number of values produces a misaligned row rather than an error.
func Serialize(frames []Frame) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, frame := range frames {
		if err := w.Write(frame); err != nil {
			return nil, fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
