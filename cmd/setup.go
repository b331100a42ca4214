package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"drive-upload-services/domain/upload"
	"drive-upload-services/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through choosing Google credentials, the Drive
folders both services write to, and the default conflict policy.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out OutputWriter) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to drive-upload-services setup!")
	fmt.Fprintln(out)

	cfg := &config.Config{}

	if err := promptServer(prompter, cfg); err != nil {
		return err
	}

	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	if err := promptFolders(prompter, cfg); err != nil {
		return err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	if cfg.Google.UsesOAuth() {
		fmt.Fprintln(out, "Run 'drive-upload-services auth' to authorize Google Drive access.")
	}
	return nil
}

func promptServer(prompter Prompter, cfg *config.Config) error {
	port, err := prompter.Input("Port to listen on?", config.DefaultPort)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if port == "" {
		port = config.DefaultPort
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 {
		return fmt.Errorf("port must be a positive number")
	}
	cfg.Server.Port = port
	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	inMemory, err := prompter.Confirm("Use the in-memory Drive backend (no Google account, for local testing)?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if inMemory {
		cfg.Google.Backend = config.BackendMemory
		return nil
	}
	cfg.Google.Backend = config.BackendGoogle

	useServiceAccount, err := prompter.Confirm("Authenticate with a service account key?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}

	if useServiceAccount {
		key, err := prompter.Input("Path to service account key file?", "service-account.json")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if key == "" {
			return fmt.Errorf("service account key path is required")
		}
		cfg.Google.CredentialsFile = key
		return nil
	}

	client, err := prompter.Input("Path to OAuth client credentials file?", "credentials.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if client == "" {
		client = "credentials.json"
	}
	cfg.Google.OAuthClientFile = client

	token, err := prompter.Input("Where should the OAuth token be stored?", config.DefaultTokenFile)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.TokenFile = token
	return nil
}

func promptFolders(prompter Prompter, cfg *config.Config) error {
	root, err := prompter.Input("Google Drive folder ID for landmark recordings? (blank to skip)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Landmarks.RootFolderID = root

	uploads, err := prompter.Input("Default Google Drive folder ID for uploads? (blank to require folder_id)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Uploads.DefaultFolderID = uploads

	policy, err := prompter.Input("Default conflict policy (rename, overwrite, skip)?", string(upload.DefaultPolicy))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if policy == "" {
		policy = string(upload.DefaultPolicy)
	}
	if _, err := upload.ParsePolicy(policy); err != nil {
		return err
	}
	cfg.Uploads.ConflictPolicy = policy
	return nil
}
