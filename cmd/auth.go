package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"drive-upload-services/infrastructure/drive"

	"github.com/spf13/cobra"
)

var authScope string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize Google Drive access with a user account",
	Long: `Runs the browser OAuth flow with the client in google.oauth_client_file
and stores the token in google.token_file.

Only needed when no service account key is configured.

Example:
  drive-upload-services auth
  drive-upload-services auth --scope file`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().StringVar(&authScope, "scope", "full", "Drive scope to request: full or file")
}

func runAuth(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}
	if c.Google.OAuthClientFile == "" {
		return fmt.Errorf("google.oauth_client_file is not set. Run 'drive-upload-services setup' or set GOOGLE_OAUTH_CLIENT_FILE")
	}

	scope, err := scopeFor(authScope)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	return drive.Authorize(ctx, drive.OAuthConfig{
		CredentialsFile: c.Google.OAuthClientFile,
		TokenFile:       c.Google.TokenFile,
		Scope:           scope,
	}, os.Stdout)
}

func scopeFor(name string) (string, error) {
	switch name {
	case "full":
		return drive.ScopeFull, nil
	case "file":
		return drive.ScopeFile, nil
	default:
		return "", fmt.Errorf("unknown scope %q. Use full or file", name)
	}
}
