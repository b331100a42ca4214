//go:build manual

package drive

import (
	"context"
	"fmt"
	"os"
	"testing"
)

// TestRealDriveConnectivity tests real Google Drive connectivity
// Run with: GOOGLE_DRIVE_FOLDER_ID=... go test -tags=manual -v ./infrastructure/drive/... -run TestRealDriveConnectivity
func TestRealDriveConnectivity(t *testing.T) {
	credentialsPath := "../../credentials.json"
	folderID := os.Getenv("GOOGLE_DRIVE_FOLDER_ID")

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		t.Skip("credentials.json not found - skipping real Drive test")
	}
	if folderID == "" {
		t.Skip("GOOGLE_DRIVE_FOLDER_ID not set - skipping real Drive test")
	}

	ctx := context.Background()

	client, err := NewClient(ctx, Credentials{File: credentialsPath, Scope: ScopeFull})
	if err != nil {
		t.Fatalf("Failed to create Drive client: %v", err)
	}

	parent, err := client.GetFile(ctx, folderID)
	if err != nil {
		t.Fatalf("Failed to get folder: %v", err)
	}

	folders, err := client.FindFolders(ctx, folderID, "connectivity_check", parent.DriveID)
	if err != nil {
		t.Fatalf("Failed to search folders: %v", err)
	}

	fmt.Printf("\n=== Google Drive Connectivity Test ===\n")
	fmt.Printf("Folder %q (shared drive: %v)\n", parent.Name, parent.InSharedDrive())
	fmt.Printf("Found %d 'connectivity_check' folders\n\n", len(folders))
}
