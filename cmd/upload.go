package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	appupload "drive-upload-services/application/upload"
	"drive-upload-services/domain/storage"
	"drive-upload-services/domain/upload"
	"drive-upload-services/infrastructure/drive"
	"drive-upload-services/infrastructure/filesystem"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var (
	uploadFolderID string
	uploadPolicy   string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload local files to Google Drive",
	Long: `Upload local files into a Drive folder with the same conflict handling
as POST /upload.

The folder defaults to uploads.default_folder_id and the policy to
uploads.conflict_policy.

Example:
  drive-upload-services upload report.pdf photo.png
  drive-upload-services upload --folder 1AbC... --policy overwrite notes.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadFolderID, "folder", "", "Drive folder ID (defaults to uploads.default_folder_id)")
	uploadCmd.Flags().StringVar(&uploadPolicy, "policy", "", "Conflict policy: rename, overwrite or skip (defaults to uploads.conflict_policy)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	folderID := uploadFolderID
	if folderID == "" {
		folderID = c.Uploads.DefaultFolderID
	}
	policyName := uploadPolicy
	if policyName == "" {
		policyName = c.Uploads.ConflictPolicy
	}
	policy, err := upload.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newDriveClient(ctx, c, drive.ScopeFull)
	if err != nil {
		return err
	}

	return RunUploadWithDependencies(ctx, client, folderID, policy, args, os.Stdout)
}

// RunUploadWithDependencies runs the upload command with injected dependencies (for testing)
func RunUploadWithDependencies(
	ctx context.Context,
	driveClient storage.DriveClient,
	folderID string,
	policy upload.ConflictPolicy,
	paths []string,
	output OutputWriter,
) error {
	files, err := filesystem.NewReader().ReadFiles(paths)
	if err != nil {
		return err
	}
	var total int
	for _, f := range files {
		total += len(f.Content)
	}

	fmt.Fprintf(output, "Uploading %d file(s), %s, policy %s...\n", len(files), units.HumanSize(float64(total)), policy)

	service := appupload.NewService(driveClient, nil)
	results, err := service.Upload(ctx, folderID, policy, files)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tACTION\tLINK")
	for _, r := range results {
		link := "-"
		if r.Link != nil {
			link = *r.Link
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Action, link)
	}
	return w.Flush()
}
