package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"drive-upload-services/api"
	"drive-upload-services/application/recording"
	"drive-upload-services/application/upload"
	"drive-upload-services/infrastructure/config"
	"drive-upload-services/infrastructure/drive"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run one of the HTTP services",
}

var serveLandmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "Serve POST /store-data for landmark recordings",
	Long: `Serve the landmark recording API.

Each POST /store-data stores the posted frames as a new CSV file in a folder
named after the prediction label, under GOOGLE_DRIVE_FOLDER_ID.

Example:
  GOOGLE_DRIVE_FOLDER_ID=1AbC... GOOGLE_CREDENTIALS_JSON="$(cat key.json)" \
    drive-upload-services serve landmarks`,
	Args: cobra.NoArgs,
	RunE: runServeLandmarks,
}

var serveUploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Serve POST /upload for multi-file uploads",
	Long: `Serve the multi-file upload API and its HTML form at /.

Files are written into folder_id (or DRIVE_FOLDER_ID). When a file with the
same name exists, conflict_policy decides: rename (default), overwrite or skip.

Example:
  DRIVE_FOLDER_ID=1AbC... GOOGLE_SERVICE_ACCOUNT_KEY=key.json \
    drive-upload-services serve uploads`,
	Args: cobra.NoArgs,
	RunE: runServeUploads,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.AddCommand(serveLandmarksCmd)
	serveCmd.AddCommand(serveUploadsCmd)

	serveCmd.PersistentFlags().StringVar(&servePort, "port", "", "port to listen on (overrides PORT and server.port)")
}

// serveConfig loads the config and applies serve flags on top of it
func serveConfig() (*config.Config, error) {
	c, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return withPort(c, servePort)
}

// withPort returns a copy of c listening on port, or c itself when port is empty
func withPort(c *config.Config, port string) (*config.Config, error) {
	if port == "" {
		return c, nil
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("invalid --port %q", port)
	}
	out := *c
	out.Server.Port = port
	return &out, nil
}

func newLogger(c *config.Config) *slog.Logger {
	level, _ := c.Server.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func runServeLandmarks(cmd *cobra.Command, args []string) error {
	c, err := serveConfig()
	if err != nil {
		return err
	}
	logger := newLogger(c).With("service", "landmarks")
	if c.Landmarks.RootFolderID == "" {
		logger.Warn("GOOGLE_DRIVE_FOLDER_ID is not set, /store-data will fail")
	}

	client := serverDriveClient(cmd.Context(), c, drive.ScopeFile, logger)
	svc := recording.NewService(client, c.Landmarks.RootFolderID, logger)
	return serve(c, api.NewLandmarkRouter(svc, logger), logger)
}

func runServeUploads(cmd *cobra.Command, args []string) error {
	c, err := serveConfig()
	if err != nil {
		return err
	}
	logger := newLogger(c).With("service", "uploads")

	client := serverDriveClient(cmd.Context(), c, drive.ScopeFull, logger)
	svc := upload.NewService(client, logger)
	return serve(c, api.NewUploadRouter(svc, c, logger), logger)
}

// serve runs the HTTP server until a shutdown signal arrives, then drains connections
func serve(c *config.Config, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", c.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       10 * time.Minute,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "backend", c.Google.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, shutdownSignals...)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info("shutdown signal received, draining connections")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
