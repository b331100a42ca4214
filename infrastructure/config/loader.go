package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked for when --config is not given
const DefaultPath = "config/config.yaml"

// Drive backends
const (
	BackendGoogle = "google"
	BackendMemory = "memory"
)

// Defaults
const (
	DefaultPort                 = "8000"
	DefaultLogLevel             = "info"
	DefaultMultipartMemoryBytes = 32 << 20
	DefaultTokenFile            = "token.json"
	DefaultConflictPolicy       = "rename"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Google    GoogleConfig    `yaml:"google"`
	Landmarks LandmarksConfig `yaml:"landmarks"`
	Uploads   UploadsConfig   `yaml:"uploads"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	// ParseMultipartForm memory; larger parts spill to temp files, nothing is rejected
	MultipartMemoryBytes int64 `yaml:"multipart_memory_bytes"`
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	Backend         string `yaml:"backend"`
	CredentialsJSON string `yaml:"credentials_json,omitempty"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	OAuthClientFile string `yaml:"oauth_client_file,omitempty"`
	TokenFile       string `yaml:"token_file,omitempty"`
}

// LandmarksConfig contains landmark recording settings
type LandmarksConfig struct {
	RootFolderID string `yaml:"root_folder_id"`
}

// UploadsConfig contains multi-file upload settings
type UploadsConfig struct {
	DefaultFolderID string `yaml:"default_folder_id"`
	ConflictPolicy  string `yaml:"conflict_policy"`
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Build loads the YAML file at path when it exists, then applies environment
// overrides and defaults. A missing file is not an error.
func Build(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Server.LogLevel, "LOG_LEVEL")
	if v := strings.TrimSpace(getenv("MULTIPART_MEMORY_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid MULTIPART_MEMORY_BYTES %q", v)
		}
		c.Server.MultipartMemoryBytes = n
	}

	set(&c.Google.Backend, "DRIVE_BACKEND")
	set(&c.Google.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	set(&c.Google.OAuthClientFile, "GOOGLE_OAUTH_CLIENT_FILE")
	set(&c.Google.TokenFile, "GOOGLE_TOKEN_FILE")

	// The landmark service reads GOOGLE_CREDENTIALS_JSON, the upload service
	// GOOGLE_SERVICE_ACCOUNT_KEY, which may also be a path to the key file
	if v := strings.TrimSpace(getenv("GOOGLE_CREDENTIALS_JSON")); v != "" {
		c.Google.CredentialsJSON = v
	} else if v := strings.TrimSpace(getenv("GOOGLE_SERVICE_ACCOUNT_KEY")); v != "" {
		if strings.HasPrefix(v, "{") {
			c.Google.CredentialsJSON = v
		} else {
			c.Google.CredentialsFile = v
		}
	}

	set(&c.Landmarks.RootFolderID, "GOOGLE_DRIVE_FOLDER_ID")
	set(&c.Uploads.DefaultFolderID, "DRIVE_FOLDER_ID")
	set(&c.Uploads.ConflictPolicy, "CONFLICT_POLICY")
	return nil
}

// ApplyDefaults fills unset values
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Server.MultipartMemoryBytes <= 0 {
		c.Server.MultipartMemoryBytes = DefaultMultipartMemoryBytes
	}
	if c.Google.Backend == "" {
		c.Google.Backend = BackendGoogle
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = DefaultTokenFile
	}
	if c.Uploads.ConflictPolicy == "" {
		c.Uploads.ConflictPolicy = DefaultConflictPolicy
	}
}

// Validate checks values that would make the server unable to start.
// Folder ids and the conflict policy are checked per request instead.
func (c *Config) Validate() error {
	switch c.Google.Backend {
	case BackendGoogle, BackendMemory:
	default:
		return fmt.Errorf("unknown drive backend %q (expected %s or %s)", c.Google.Backend, BackendGoogle, BackendMemory)
	}
	if _, err := c.Server.SlogLevel(); err != nil {
		return err
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}
	return nil
}

// SlogLevel parses the configured log level
func (s ServerConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s.LogLevel)
	}
	return level, nil
}

// HasCredentials reports whether any service account key is configured
func (g GoogleConfig) HasCredentials() bool {
	return g.CredentialsJSON != "" || g.CredentialsFile != ""
}

// UsesOAuth reports whether user OAuth credentials should be used instead of a service account
func (g GoogleConfig) UsesOAuth() bool {
	return !g.HasCredentials() && g.OAuthClientFile != ""
}
