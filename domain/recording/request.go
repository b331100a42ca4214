package recording

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// StoreRequest is a validated landmark upload
type StoreRequest struct {
	Label  string  // trimmed prediction, used verbatim as the folder name
	Frames []Frame // non-empty
}

// DecodeStoreRequest reads a {"data": [[...]], "prediction": "..."} body.
// Data is validated before prediction, and numbers keep their literal JSON text.
func DecodeStoreRequest(r io.Reader) (*StoreRequest, error) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&payload); err != nil || payload == nil {
		return nil, ErrInvalidBody
	}

	frames, err := decodeFrames(payload["data"])
	if err != nil {
		return nil, err
	}

	var prediction string
	if raw, ok := payload["prediction"]; !ok || json.Unmarshal(raw, &prediction) != nil {
		return nil, ErrMissingPrediction
	}
	label := strings.TrimSpace(prediction)
	if label == "" {
		return nil, ErrMissingPrediction
	}

	return &StoreRequest{Label: label, Frames: frames}, nil
}

func decodeFrames(raw json.RawMessage) ([]Frame, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidData
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil || len(rows) == 0 {
		return nil, ErrInvalidData
	}

	frames := make([]Frame, 0, len(rows))
	for i, row := range rows {
		frame, err := decodeFrame(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidData, i, err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func decodeFrame(row json.RawMessage) (Frame, error) {
	dec := json.NewDecoder(bytes.NewReader(row))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	values, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array")
	}

	frame := make(Frame, len(values))
	for i, value := range values {
		s, ok := formatValue(value)
		if !ok {
			return nil, fmt.Errorf("value %d is not a scalar", i)
		}
		frame[i] = s
	}
	return frame, nil
}

func formatValue(v any) (string, bool) {
	switch x := v.(type) {
	case json.Number:
		return x.String(), true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case nil:
		return "", true
	default:
		return "", false
	}
}
