package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"drive-upload-services/domain/storage"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Fields requested from the Drive API
const (
	fileFields   = "id, name, mimeType, size, driveId, webViewLink, createdTime"
	listFields   = "files(id, name, mimeType, driveId, webViewLink)"
	createFields = "id, name, mimeType, parents, webViewLink"
)

// Scopes for the two services
var (
	// ScopeFile limits access to files the service account created or was given
	ScopeFile = drive.DriveFileScope
	// ScopeFull allows reading and updating any file the credentials can see
	ScopeFull = drive.DriveScope
)

// ListParams describes a files.list call
type ListParams struct {
	Query   string
	Fields  string
	DriveID string // when set, the search is scoped to this shared drive
}

// DriveService defines the interface for Google Drive API operations
// This allows mocking the Google Drive API in tests
type DriveService interface {
	GetFile(ctx context.Context, fileID string, fields string) (*drive.File, error)
	ListFiles(ctx context.Context, params ListParams) ([]*drive.File, error)
	CreateFile(ctx context.Context, file *drive.File, media io.Reader, mimeType string, fields string) (*drive.File, error)
	UpdateFile(ctx context.Context, fileID string, media io.Reader, mimeType string, fields string) (*drive.File, error)
}

// GoogleDriveService is the production implementation using the Google Drive API
type GoogleDriveService struct {
	service *drive.Service
}

// GetFile fetches file metadata, including items in shared drives
func (s *GoogleDriveService) GetFile(ctx context.Context, fileID string, fields string) (*drive.File, error) {
	return s.service.Files.Get(fileID).
		Fields(googleapi.Field(fields)).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
}

// ListFiles lists files matching the query
func (s *GoogleDriveService) ListFiles(ctx context.Context, params ListParams) ([]*drive.File, error) {
	call := s.service.Files.List().
		Q(params.Query).
		Spaces("drive").
		Fields(googleapi.Field(params.Fields)).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)
	if params.DriveID != "" {
		call = call.Corpora("drive").DriveId(params.DriveID)
	}

	r, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return r.Files, nil
}

// CreateFile creates a file; media may be nil for folders
func (s *GoogleDriveService) CreateFile(ctx context.Context, file *drive.File, media io.Reader, mimeType string, fields string) (*drive.File, error) {
	call := s.service.Files.Create(file).
		Fields(googleapi.Field(fields)).
		SupportsAllDrives(true)
	if media != nil {
		call = call.Media(media, googleapi.ContentType(mimeType))
	}
	return call.Context(ctx).Do()
}

// UpdateFile replaces a file's content
func (s *GoogleDriveService) UpdateFile(ctx context.Context, fileID string, media io.Reader, mimeType string, fields string) (*drive.File, error) {
	return s.service.Files.Update(fileID, &drive.File{}).
		Media(media, googleapi.ContentType(mimeType)).
		Fields(googleapi.Field(fields)).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
}

// Credentials describes where service account credentials come from.
// JSON takes precedence over File.
type Credentials struct {
	JSON  string // service account key contents
	File  string // path to a service account key
	Scope string
}

// Client implements storage.DriveClient using Google Drive API
type Client struct {
	driveService DriveService
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithDriveService sets a custom drive service (for testing)
func WithDriveService(svc DriveService) ClientOption {
	return func(c *Client) {
		c.driveService = svc
	}
}

// NewClient creates a new Google Drive client
// If no options are provided, it initializes a real Google Drive service
func NewClient(ctx context.Context, creds Credentials, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	// If no custom drive service was provided, create a real one
	if c.driveService == nil {
		svc, err := newGoogleDriveService(ctx, creds)
		if err != nil {
			return nil, err
		}
		c.driveService = svc
	}

	return c, nil
}

// newGoogleDriveService creates a production Google Drive service from a service account key
func newGoogleDriveService(ctx context.Context, creds Credentials) (*GoogleDriveService, error) {
	b, err := creds.key()
	if err != nil {
		return nil, err
	}

	scope := creds.Scope
	if scope == "" {
		scope = ScopeFile
	}

	config, err := google.JWTConfigFromJSON(b, scope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client := config.Client(ctx)
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}

	return &GoogleDriveService{service: srv}, nil
}

func (c Credentials) key() ([]byte, error) {
	if c.JSON != "" {
		return []byte(c.JSON), nil
	}
	if c.File == "" {
		return nil, storage.ErrMissingCredentials
	}
	b, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	return b, nil
}

// GetFile implements storage.DriveClient
func (c *Client) GetFile(ctx context.Context, fileID string) (*storage.FileInfo, error) {
	f, err := c.driveService.GetFile(ctx, fileID, fileFields)
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	info := toFileInfo(f)
	return &info, nil
}

// FindFolders implements storage.DriveClient
func (c *Client) FindFolders(ctx context.Context, parentID, name, driveID string) ([]storage.FileInfo, error) {
	files, err := c.driveService.ListFiles(ctx, ListParams{
		Query:   folderQuery(parentID, name),
		Fields:  listFields,
		DriveID: driveID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search folders: %w", err)
	}

	result := make([]storage.FileInfo, 0, len(files))
	for _, f := range files {
		result = append(result, toFileInfo(f))
	}
	return result, nil
}

// CreateFolder implements storage.DriveClient
func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (*storage.FileInfo, error) {
	f, err := c.driveService.CreateFile(ctx, &drive.File{
		Name:     name,
		MimeType: storage.MimeTypeFolder,
		Parents:  []string{parentID},
	}, nil, "", createFields)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	info := toFileInfo(f)
	return &info, nil
}

// FindFileByName implements storage.DriveClient
func (c *Client) FindFileByName(ctx context.Context, folderID, name string) (*storage.FileInfo, error) {
	files, err := c.driveService.ListFiles(ctx, ListParams{
		Query:  fileByNameQuery(folderID, name),
		Fields: listFields,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search for %s: %w", name, err)
	}
	if len(files) == 0 {
		return nil, nil
	}
	info := toFileInfo(files[0])
	return &info, nil
}

// UploadFile implements storage.DriveClient
func (c *Client) UploadFile(ctx context.Context, req storage.UploadRequest) (*storage.FileInfo, error) {
	f, err := c.driveService.CreateFile(ctx, &drive.File{
		Name:    req.FileName,
		Parents: []string{req.FolderID},
	}, req.Content, mimeTypeOrDefault(req.MimeType), createFields)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", req.FileName, err)
	}
	info := toFileInfo(f)
	return &info, nil
}

// UpdateFileContent implements storage.DriveClient
func (c *Client) UpdateFileContent(ctx context.Context, fileID, mimeType string, content io.Reader) (*storage.FileInfo, error) {
	f, err := c.driveService.UpdateFile(ctx, fileID, content, mimeTypeOrDefault(mimeType), createFields)
	if err != nil {
		return nil, fmt.Errorf("failed to update file %s: %w", fileID, err)
	}
	info := toFileInfo(f)
	return &info, nil
}

func toFileInfo(f *drive.File) storage.FileInfo {
	return storage.FileInfo{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		DriveID:     f.DriveId,
		WebViewLink: f.WebViewLink,
		CreatedTime: parseTime(f.CreatedTime),
	}
}

func mimeTypeOrDefault(mimeType string) string {
	if strings.TrimSpace(mimeType) == "" {
		return storage.MimeTypeOctetStream
	}
	return mimeType
}

// parseTime parses a Google Drive timestamp string
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Ensure Client implements storage.DriveClient
var _ storage.DriveClient = (*Client)(nil)
