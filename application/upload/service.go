package upload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"drive-upload-services/domain/storage"
	"drive-upload-services/domain/upload"

	"github.com/docker/go-units"
)

// Service uploads batches of files into a Drive folder, resolving name
// conflicts according to a ConflictPolicy
type Service struct {
	driveClient storage.DriveClient
	logger      *slog.Logger
}

// NewService creates a new upload service
func NewService(client storage.DriveClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{driveClient: client, logger: logger}
}

// Upload processes files sequentially in input order and returns one result per
// file, in the same order. A provider error on any file aborts the batch; files
// already written stay in Drive but no partial results are returned.
func (s *Service) Upload(ctx context.Context, folderID string, policy upload.ConflictPolicy, files []upload.File) ([]upload.Result, error) {
	if folderID == "" {
		return nil, upload.ErrMissingFolder
	}
	if _, err := upload.ParsePolicy(string(policy)); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, upload.ErrNoFiles
	}

	results := make([]upload.Result, 0, len(files))
	for _, f := range files {
		result, err := s.uploadOne(ctx, folderID, policy, f)
		if err != nil {
			return nil, err
		}
		s.logger.Info("file processed",
			"name", result.Name,
			"action", result.Action,
			"folder_id", folderID,
			"size", units.HumanSize(float64(len(f.Content))),
		)
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) uploadOne(ctx context.Context, folderID string, policy upload.ConflictPolicy, f upload.File) (upload.Result, error) {
	existing, err := s.driveClient.FindFileByName(ctx, folderID, f.Name)
	if err != nil {
		return upload.Result{}, fmt.Errorf("failed to check for existing file: %w", err)
	}

	if existing != nil {
		switch policy {
		case upload.PolicySkip:
			return upload.Result{Name: f.Name, Action: upload.ActionSkipped}, nil

		case upload.PolicyOverwrite:
			updated, err := s.driveClient.UpdateFileContent(ctx, existing.ID, f.ContentType, bytes.NewReader(f.Content))
			if err != nil {
				return upload.Result{}, fmt.Errorf("failed to overwrite %s: %w", f.Name, err)
			}
			return newResult(updated, f.Name, upload.ActionOverwritten), nil
		}
	}

	finalName := f.Name
	action := upload.ActionCreated
	if existing != nil {
		finalName, err = s.availableName(ctx, folderID, f.Name)
		if err != nil {
			return upload.Result{}, err
		}
		action = upload.ActionCreatedRenamed
	}

	created, err := s.driveClient.UploadFile(ctx, storage.UploadRequest{
		FileName: finalName,
		FolderID: folderID,
		MimeType: f.ContentType,
		Content:  bytes.NewReader(f.Content),
	})
	if err != nil {
		return upload.Result{}, fmt.Errorf("failed to upload %s: %w", finalName, err)
	}
	return newResult(created, finalName, action), nil
}

// availableName probes "name (1).ext", "name (2).ext", ... with one lookup per
// candidate and returns the first name not present in the folder
func (s *Service) availableName(ctx context.Context, folderID, name string) (string, error) {
	for i := 1; i <= upload.MaxRenameAttempts; i++ {
		candidate := upload.RenamedName(name, i)
		existing, err := s.driveClient.FindFileByName(ctx, folderID, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check for existing file: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %q after %d attempts", upload.ErrRenameExhausted, name, upload.MaxRenameAttempts)
}

func newResult(f *storage.FileInfo, fallbackName string, action upload.Action) upload.Result {
	name := f.Name
	if name == "" {
		name = fallbackName
	}
	id := f.ID
	result := upload.Result{Name: name, Action: action, ID: &id}
	if f.WebViewLink != "" {
		link := f.WebViewLink
		result.Link = &link
	}
	return result
}
