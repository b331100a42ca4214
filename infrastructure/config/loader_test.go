package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build(filepath.Join(t.TempDir(), "missing.yaml"), envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Server.LogLevel)
	assert.Equal(t, int64(DefaultMultipartMemoryBytes), cfg.Server.MultipartMemoryBytes)
	assert.Equal(t, BackendGoogle, cfg.Google.Backend)
	assert.Equal(t, DefaultTokenFile, cfg.Google.TokenFile)
	assert.Equal(t, DefaultConflictPolicy, cfg.Uploads.ConflictPolicy)
	assert.False(t, cfg.Google.HasCredentials())
}

func TestBuild_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `server:
  port: "9000"
  log_level: debug
landmarks:
  root_folder_id: file-root
uploads:
  default_folder_id: file-uploads
  conflict_policy: skip
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	cfg, err := Build(path, envFrom(map[string]string{
		"PORT":                   "8080",
		"DRIVE_FOLDER_ID":        "env-uploads",
		"MULTIPART_MEMORY_BYTES": "1024",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, int64(1024), cfg.Server.MultipartMemoryBytes)
	assert.Equal(t, "file-root", cfg.Landmarks.RootFolderID)
	assert.Equal(t, "env-uploads", cfg.Uploads.DefaultFolderID)
	assert.Equal(t, "skip", cfg.Uploads.ConflictPolicy)
}

func TestApplyEnv_Credentials(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantJSON string
		wantFile string
	}{
		{
			name:     "credentials json",
			env:      map[string]string{"GOOGLE_CREDENTIALS_JSON": `{"type":"service_account"}`},
			wantJSON: `{"type":"service_account"}`,
		},
		{
			name:     "service account key as json",
			env:      map[string]string{"GOOGLE_SERVICE_ACCOUNT_KEY": `{"type":"service_account"}`},
			wantJSON: `{"type":"service_account"}`,
		},
		{
			name:     "service account key as path",
			env:      map[string]string{"GOOGLE_SERVICE_ACCOUNT_KEY": "/secrets/key.json"},
			wantFile: "/secrets/key.json",
		},
		{
			name: "credentials json wins",
			env: map[string]string{
				"GOOGLE_CREDENTIALS_JSON":    `{"a":1}`,
				"GOOGLE_SERVICE_ACCOUNT_KEY": "/secrets/key.json",
			},
			wantJSON: `{"a":1}`,
		},
		{
			name:     "application default file",
			env:      map[string]string{"GOOGLE_APPLICATION_CREDENTIALS": "/adc.json"},
			wantFile: "/adc.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			require.NoError(t, cfg.ApplyEnv(envFrom(tt.env)))
			assert.Equal(t, tt.wantJSON, cfg.Google.CredentialsJSON)
			assert.Equal(t, tt.wantFile, cfg.Google.CredentialsFile)
			assert.True(t, cfg.Google.HasCredentials())
			assert.False(t, cfg.Google.UsesOAuth())
		})
	}
}

func TestApplyEnv_InvalidMultipartMemoryBytes(t *testing.T) {
	for _, v := range []string{"abc", "0", "-5"} {
		cfg := &Config{}
		err := cfg.ApplyEnv(envFrom(map[string]string{"MULTIPART_MEMORY_BYTES": v}))
		assert.Error(t, err, v)
	}
}

func TestGoogleConfig_UsesOAuth(t *testing.T) {
	assert.True(t, GoogleConfig{OAuthClientFile: "client.json"}.UsesOAuth())
	assert.False(t, GoogleConfig{OAuthClientFile: "client.json", CredentialsFile: "sa.json"}.UsesOAuth())
	assert.False(t, GoogleConfig{}.UsesOAuth())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.Google.Backend = BackendMemory }},
		{name: "unknown backend", mutate: func(c *Config) { c.Google.Backend = "dropbox" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Server.LogLevel = "loud" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerConfig_SlogLevel(t *testing.T) {
	level, err := ServerConfig{LogLevel: "warn"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ServerConfig{LogLevel: "DEBUG"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{
		Server:  ServerConfig{Port: "8001", LogLevel: "info", MultipartMemoryBytes: 2048},
		Uploads: UploadsConfig{DefaultFolderID: "abc", ConflictPolicy: "overwrite"},
	}
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Build(path, envFrom(nil))
	assert.Error(t, err)
}
