package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"drive-upload-services/domain/storage"
	"drive-upload-services/infrastructure/config"
	"drive-upload-services/infrastructure/drive"
	"drive-upload-services/infrastructure/memdrive"
)

// newDriveClient picks the backend from configuration. Credential problems are
// returned so the caller can decide whether they are fatal.
func newDriveClient(ctx context.Context, c *config.Config, scope string) (storage.DriveClient, error) {
	g := c.Google
	switch {
	case g.Backend == config.BackendMemory:
		// configured folders must exist before the first request
		return memdrive.New(
			memdrive.WithFolder(c.Landmarks.RootFolderID, "Landmarks"),
			memdrive.WithFolder(c.Uploads.DefaultFolderID, "Uploads"),
		), nil

	case g.UsesOAuth():
		client, err := drive.NewClientWithOAuth(ctx, drive.OAuthConfig{
			CredentialsFile: g.OAuthClientFile,
			TokenFile:       g.TokenFile,
			Scope:           scope,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Drive client: %w", err)
		}
		return client, nil

	default:
		client, err := drive.NewClient(ctx, drive.Credentials{
			JSON:  g.CredentialsJSON,
			File:  g.CredentialsFile,
			Scope: scope,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Drive client: %w", err)
		}
		return client, nil
	}
}

// serverDriveClient never fails: a client that cannot be built is replaced by
// one that reports the error on every call.
func serverDriveClient(ctx context.Context, c *config.Config, scope string, logger *slog.Logger) storage.DriveClient {
	client, err := newDriveClient(ctx, c, scope)
	if err != nil {
		logger.Warn("drive client unavailable, requests will fail until configured", "error", err)
		return storage.Unavailable(err)
	}
	logger.Info("drive client ready", "backend", c.Google.Backend, "oauth", c.Google.UsesOAuth())
	return client
}
