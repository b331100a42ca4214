package recording

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"drive-upload-services/domain/recording"
	"drive-upload-services/domain/storage"

	"github.com/docker/go-units"
)

// Service stores landmark recordings as CSV files in per-label folders
type Service struct {
	driveClient  storage.DriveClient
	resolver     *FolderResolver
	rootFolderID string
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the clock used to name recordings
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new recording service
func NewService(client storage.DriveClient, rootFolderID string, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		driveClient:  client,
		resolver:     NewFolderResolver(client, logger),
		rootFolderID: rootFolderID,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StoreResult describes an uploaded recording
type StoreResult struct {
	FileID string
	Path   string // "<label>/<filename>"
	Size   int64
}

// Configured reports whether a root folder is set
func (s *Service) Configured() error {
	if s.rootFolderID == "" {
		return recording.ErrMissingRootFolder
	}
	return nil
}

// Store uploads frames as a new recording in the label folder.
// Every call creates a new file; nothing is overwritten.
func (s *Service) Store(ctx context.Context, req *recording.StoreRequest) (*StoreResult, error) {
	if err := s.Configured(); err != nil {
		return nil, err
	}

	misaligned := 0
	for _, f := range req.Frames {
		if !f.Aligned() {
			misaligned++
		}
	}
	if misaligned > 0 {
		s.logger.Debug("recording has frames that do not match the header",
			"label", req.Label,
			"misaligned", misaligned,
			"columns", recording.ColumnCount(),
		)
	}

	fileName := recording.FileName(s.now())
	data, err := recording.Serialize(req.Frames)
	if err != nil {
		return nil, err
	}

	folderID, err := s.resolver.Resolve(ctx, s.rootFolderID, req.Label)
	if err != nil {
		return nil, err
	}

	file, err := s.driveClient.UploadFile(ctx, storage.UploadRequest{
		FileName: fileName,
		FolderID: folderID,
		MimeType: storage.MimeTypeCSV,
		Content:  bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload recording: %w", err)
	}

	path := recording.Path(req.Label, fileName)
	s.logger.Info("stored recording",
		"path", path,
		"file_id", file.ID,
		"frames", len(req.Frames),
		"size", units.HumanSize(float64(len(data))),
	)
	return &StoreResult{FileID: file.ID, Path: path, Size: int64(len(data))}, nil
}
