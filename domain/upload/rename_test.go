package upload

import "testing"

func TestRenamedName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "with extension", input: "photo.png", n: 3, want: "photo (3).png"},
		{name: "first index", input: "a.txt", n: 1, want: "a (1).txt"},
		{name: "no extension", input: "README", n: 1, want: "README (1)"},
		{name: "only final extension moves", input: "archive.tar.gz", n: 2, want: "archive.tar (2).gz"},
		{name: "dotfile has no extension", input: ".env", n: 1, want: ".env (1)"},
		{name: "dotfile with extension", input: ".config.yaml", n: 4, want: ".config (4).yaml"},
		{name: "trailing dot", input: "notes.", n: 1, want: "notes (1)."},
		{name: "spaces kept", input: "my file.pdf", n: 10, want: "my file (10).pdf"},
		{name: "last index", input: "x.bin", n: MaxRenameAttempts, want: "x (999).bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenamedName(tt.input, tt.n); got != tt.want {
				t.Errorf("RenamedName(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
