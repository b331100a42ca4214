package storage

import "io"

// UploadRequest contains the parameters needed to create a file in Google Drive
type UploadRequest struct {
	FileName string    // Target filename in Google Drive
	FolderID string    // Target folder ID in Google Drive
	MimeType string    // MIME type of the content
	Content  io.Reader // File bytes
}

// MIME type constants used by the services
const (
	MimeTypeFolder      = "application/vnd.google-apps.folder"
	MimeTypeCSV         = "text/csv"
	MimeTypeOctetStream = "application/octet-stream"
)
