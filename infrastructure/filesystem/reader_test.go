package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReader_ReadFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "data.nosuchext"),
	}
	for i, p := range paths {
		if err := os.WriteFile(p, []byte(strings.Repeat("x", i+1)), 0600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := NewReader().ReadFiles(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	if files[0].Name != "notes.txt" {
		t.Errorf("expected name notes.txt, got %q", files[0].Name)
	}
	if !strings.HasPrefix(files[0].ContentType, "text/plain") {
		t.Errorf("expected text/plain, got %q", files[0].ContentType)
	}
	if files[1].ContentType != "application/octet-stream" {
		t.Errorf("expected octet-stream fallback, got %q", files[1].ContentType)
	}
	if string(files[1].Content) != "xx" {
		t.Errorf("unexpected content %q", files[1].Content)
	}
}

func TestReader_ReadFiles_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.txt")},
		{name: "directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReader().ReadFiles([]string{tt.path}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
