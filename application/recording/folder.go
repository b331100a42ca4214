package recording

import (
	"context"
	"fmt"
	"log/slog"

	"drive-upload-services/domain/storage"
)

// FolderResolver finds or creates label folders under a parent folder.
//
// The lookup and the create are separate provider calls, so two requests with
// the same new label can both miss and create duplicate folders. Later lookups
// return whichever duplicate the provider lists first.
type FolderResolver struct {
	driveClient storage.DriveClient
	logger      *slog.Logger
}

// NewFolderResolver creates a new folder resolver
func NewFolderResolver(client storage.DriveClient, logger *slog.Logger) *FolderResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderResolver{driveClient: client, logger: logger}
}

// Resolve returns the id of the folder named label directly under parentID,
// creating it when none exists
func (r *FolderResolver) Resolve(ctx context.Context, parentID, label string) (string, error) {
	parent, err := r.driveClient.GetFile(ctx, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to read parent folder: %w", err)
	}

	folders, err := r.driveClient.FindFolders(ctx, parentID, label, parent.DriveID)
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %q: %w", label, err)
	}
	if len(folders) > 0 {
		return folders[0].ID, nil
	}

	folder, err := r.driveClient.CreateFolder(ctx, parentID, label)
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", label, err)
	}
	r.logger.Info("created label folder", "label", label, "folder_id", folder.ID, "shared_drive", parent.InSharedDrive())
	return folder.ID, nil
}
