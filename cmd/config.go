package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"drive-upload-services/infrastructure/config"

	"github.com/spf13/cobra"
)

// DefaultOutput is the default output writer for config commands
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit configuration",
	Long: `Show the effective configuration or edit values in the configuration file.

Examples:
  drive-upload-services config show
  drive-upload-services config get uploads.conflict_policy
  drive-upload-services config set uploads.conflict_policy skip
  drive-upload-services config set landmarks.root_folder_id 1AbC...`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- SHOW command ---

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show every setting after the config file, environment variables and
defaults have been applied. Secrets are masked.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}
	return RunConfigShowWithDependencies(c, DefaultOutput)
}

// RunConfigShowWithDependencies runs the show command with injected dependencies
func RunConfigShowWithDependencies(c *config.Config, out OutputWriter) error {
	mgr := config.NewConfigManager(c, "")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "KEY\tVALUE")
	for _, e := range mgr.List() {
		value := e.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Key, value)
	}
	return w.Flush()
}

// --- GET command ---

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}
	value, err := config.NewConfigManager(c, "").Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(DefaultOutput, value)
	return nil
}

// --- SET command ---

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the configuration file",
	Long: `Set a value in the configuration file. Environment variables still take
precedence when the services start.

Keys:
  server.port, server.log_level, server.multipart_memory_bytes,
  google.backend, google.credentials_json, google.credentials_file,
  google.oauth_client_file, google.token_file,
  landmarks.root_folder_id, uploads.default_folder_id, uploads.conflict_policy`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunConfigSetWithDependencies(path, args[0], args[1], DefaultOutput)
}

// RunConfigSetWithDependencies edits the file at configPath only, so values
// coming from the environment are never written back
func RunConfigSetWithDependencies(configPath, key, value string, out OutputWriter) error {
	c, err := config.Load(configPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		c = &config.Config{}
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	default:
		return err
	}

	mgr := config.NewConfigManager(c, configPath)
	if err := mgr.Set(key, value); err != nil {
		return err
	}

	shown, _ := mgr.Get(key)
	fmt.Fprintf(out, "Set %s = %s\n", key, shown)
	return nil
}
