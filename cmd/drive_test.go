package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"drive-upload-services/api"
	"drive-upload-services/application/recording"
	"drive-upload-services/application/upload"
	"drive-upload-services/domain/storage"
	"drive-upload-services/infrastructure/config"
	"drive-upload-services/infrastructure/drive"
	"drive-upload-services/infrastructure/memdrive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func googleConfig(g config.GoogleConfig) *config.Config {
	return &config.Config{Google: g}
}

func memoryConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	env["DRIVE_BACKEND"] = config.BackendMemory
	c, err := config.Build("", func(k string) string { return env[k] })
	require.NoError(t, err)
	return c
}

func TestNewDriveClient_Memory(t *testing.T) {
	client, err := newDriveClient(context.Background(), googleConfig(config.GoogleConfig{Backend: config.BackendMemory}), drive.ScopeFile)
	require.NoError(t, err)
	assert.IsType(t, &memdrive.Drive{}, client)
}

func TestNewDriveClient_MemorySeedsConfiguredFolders(t *testing.T) {
	c := memoryConfig(t, map[string]string{
		"GOOGLE_DRIVE_FOLDER_ID": "root",
		"DRIVE_FOLDER_ID":        "uploads",
	})

	client, err := newDriveClient(context.Background(), c, drive.ScopeFull)
	require.NoError(t, err)

	for _, id := range []string{"root", "uploads"} {
		info, err := client.GetFile(context.Background(), id)
		require.NoError(t, err, id)
		assert.True(t, info.IsFolder(), id)
	}
}

func TestMemoryBackend_StoreData(t *testing.T) {
	c := memoryConfig(t, map[string]string{"GOOGLE_DRIVE_FOLDER_ID": "root"})
	client := serverDriveClient(context.Background(), c, drive.ScopeFile, discardLogger)
	router := api.NewLandmarkRouter(recording.NewService(client, c.Landmarks.RootFolderID, discardLogger), discardLogger)

	req := httptest.NewRequest(http.MethodPost, "/store-data", strings.NewReader(`{"data":[[0.1,0.2]],"prediction":"wave"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.True(t, strings.HasPrefix(body["uploadedPath"], "wave/landmarks_recording_"))
}

func TestMemoryBackend_Upload(t *testing.T) {
	c := memoryConfig(t, map[string]string{"DRIVE_FOLDER_ID": "uploads"})
	client := serverDriveClient(context.Background(), c, drive.ScopeFull, discardLogger)
	router := api.NewUploadRouter(upload.NewService(client, discardLogger), c, discardLogger)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"action":"created"`)
	assert.Contains(t, rec.Body.String(), `"name":"notes.txt"`)
}

func TestNewDriveClient_MissingCredentials(t *testing.T) {
	_, err := newDriveClient(context.Background(), googleConfig(config.GoogleConfig{Backend: config.BackendGoogle}), drive.ScopeFile)
	assert.ErrorIs(t, err, storage.ErrMissingCredentials)
}

func TestNewDriveClient_OAuthWithoutClientFile(t *testing.T) {
	g := config.GoogleConfig{
		Backend:         config.BackendGoogle,
		OAuthClientFile: filepath.Join(t.TempDir(), "missing.json"),
		TokenFile:       filepath.Join(t.TempDir(), "token.json"),
	}
	_, err := newDriveClient(context.Background(), googleConfig(g), drive.ScopeFull)
	assert.Error(t, err)
}

func TestServerDriveClient_FallsBackToUnavailable(t *testing.T) {
	client := serverDriveClient(context.Background(), googleConfig(config.GoogleConfig{Backend: config.BackendGoogle}), drive.ScopeFile, discardLogger)
	require.NotNil(t, client)

	_, err := client.GetFile(context.Background(), "root")
	assert.ErrorIs(t, err, storage.ErrMissingCredentials)
}

func TestScopeFor(t *testing.T) {
	scope, err := scopeFor("file")
	require.NoError(t, err)
	assert.Equal(t, drive.ScopeFile, scope)

	scope, err = scopeFor("full")
	require.NoError(t, err)
	assert.Equal(t, drive.ScopeFull, scope)

	_, err = scopeFor("admin")
	assert.Error(t, err)
}
