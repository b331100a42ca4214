package drive

import "testing"

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "thumbs_up", want: "thumbs_up"},
		{input: "it's", want: `it\'s`},
		{input: `back\slash`, want: `back\\slash`},
		{input: `\'`, want: `\\\'`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeQuery(tt.input); got != tt.want {
				t.Errorf("escapeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFolderQuery(t *testing.T) {
	got := folderQuery("root-1", "o'clock")
	want := `mimeType='application/vnd.google-apps.folder' and trashed=false and name='o\'clock' and 'root-1' in parents`
	if got != want {
		t.Errorf("folderQuery() = %q, want %q", got, want)
	}
}

func TestFileByNameQuery(t *testing.T) {
	got := fileByNameQuery("folder-1", "a.txt")
	want := `mimeType!='application/vnd.google-apps.folder' and trashed=false and name='a.txt' and 'folder-1' in parents`
	if got != want {
		t.Errorf("fileByNameQuery() = %q, want %q", got, want)
	}
}
