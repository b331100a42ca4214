package cmd

import (
	"fmt"
	"os"

	"drive-upload-services/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "drive-upload-services",
	Short: "HTTP services that store uploads in Google Drive",
	Long: `drive-upload-services runs two small HTTP services backed by Google Drive:

  - landmarks: accepts recorded hand/pose landmark frames and stores each
    recording as a CSV file in a per-label folder
  - uploads:   accepts multipart file uploads and writes them into a folder,
    resolving name conflicts by renaming, overwriting or skipping

Settings come from config/config.yaml and environment variables, with the
environment taking precedence.

Example:
  drive-upload-services serve landmarks
  PORT=9000 drive-upload-services serve uploads`,
	SilenceUsage: true,
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}
	cfg, cfgErr = config.Build(cfgFile, os.Getenv)
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", cfgErr)
	}
	return cfg, nil
}
