package recording

import (
	"strings"
	"testing"
)

func fullFrame(value string) Frame {
	f := make(Frame, ColumnCount())
	for i := range f {
		f[i] = value
	}
	return f
}

func TestSerialize(t *testing.T) {
	headerLine := strings.Join(Header(), ",")

	tests := []struct {
		name      string
		frames    []Frame
		wantLines []string
	}{
		{
			name:      "single frame",
			frames:    []Frame{fullFrame("0.1")},
			wantLines: []string{headerLine, strings.Join(fullFrame("0.1"), ",")},
		},
		{
			name:   "multiple frames keep order",
			frames: []Frame{fullFrame("1"), fullFrame("2"), fullFrame("3")},
			wantLines: []string{
				headerLine,
				strings.Join(fullFrame("1"), ","),
				strings.Join(fullFrame("2"), ","),
				strings.Join(fullFrame("3"), ","),
			},
		},
		{
			name:      "short frame is written misaligned",
			frames:    []Frame{{"0.5", "0.25"}},
			wantLines: []string{headerLine, "0.5,0.25"},
		},
		{
			name:      "values are written verbatim",
			frames:    []Frame{{"1e-7", "-0.000", ""}},
			wantLines: []string{headerLine, "1e-7,-0.000,"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Serialize(tt.frames)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}

			got := string(out)
			if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
				t.Errorf("expected exactly one trailing newline, got %q", got[max(0, len(got)-5):])
			}
			if strings.Contains(got, "\r") {
				t.Error("expected LF line endings only")
			}

			lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
			if len(lines) != len(tt.wantLines) {
				t.Fatalf("expected %d lines, got %d", len(tt.wantLines), len(lines))
			}
			for i := range lines {
				if lines[i] != tt.wantLines[i] {
					t.Errorf("line %d = %q, want %q", i, lines[i], tt.wantLines[i])
				}
			}
		})
	}
}
