package storage

import (
	"context"
	"io"
	"time"
)

// DriveClient defines the interface for Google Drive operations
// This is a port that can be implemented by different infrastructure adapters
type DriveClient interface {
	// GetFile returns metadata for a file or folder, including its shared drive id
	GetFile(ctx context.Context, fileID string) (*FileInfo, error)

	// FindFolders lists non-trashed folders named exactly name directly under parentID.
	// A non-empty driveID scopes the search to that shared drive.
	FindFolders(ctx context.Context, parentID, name, driveID string) ([]FileInfo, error)

	// CreateFolder creates a folder named name under parentID
	CreateFolder(ctx context.Context, parentID, name string) (*FileInfo, error)

	// FindFileByName returns the first non-folder, non-trashed file named name in folderID,
	// or nil when there is none
	FindFileByName(ctx context.Context, folderID, name string) (*FileInfo, error)

	// UploadFile creates a new file with the given content
	UploadFile(ctx context.Context, req UploadRequest) (*FileInfo, error)

	// UpdateFileContent replaces the content of an existing file, keeping its id and name
	UpdateFileContent(ctx context.Context, fileID, mimeType string, content io.Reader) (*FileInfo, error)
}

// FileInfo represents metadata about a file or folder in Google Drive
type FileInfo struct {
	ID          string
	Name        string
	MimeType    string
	Size        int64
	DriveID     string // shared drive id, empty for My Drive
	WebViewLink string
	CreatedTime time.Time
}

// IsFolder reports whether the entry is a Drive folder
func (f FileInfo) IsFolder() bool {
	return f.MimeType == MimeTypeFolder
}

// InSharedDrive reports whether the entry belongs to a shared drive
func (f FileInfo) InSharedDrive() bool {
	return f.DriveID != ""
}
