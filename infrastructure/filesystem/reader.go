package filesystem

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"drive-upload-services/domain/storage"
	"drive-upload-services/domain/upload"
)

// Reader loads local files for upload using the os package
type Reader struct{}

// NewReader creates a new filesystem reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadFiles reads every path in order. The upload name is the base name and the
// content type is guessed from the extension.
func (r *Reader) ReadFiles(paths []string) ([]upload.File, error) {
	files := make([]upload.File, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, upload.File{
			Name:        filepath.Base(p),
			ContentType: ContentType(p),
			Content:     content,
		})
	}
	return files, nil
}

// ContentType guesses a MIME type from the file extension
func ContentType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return storage.MimeTypeOctetStream
}
