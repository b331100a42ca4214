package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"drive-upload-services/domain/upload"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// secretKeys are never printed in full
var secretKeys = map[string]bool{
	"google.credentials_json": true,
}

// ConfigManager provides get/set operations on config entries addressed by dotted keys
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Entry is one key/value pair for display
type Entry struct {
	Key   string
	Value string
}

func (m *ConfigManager) fields() map[string]*string {
	c := m.config
	return map[string]*string{
		"server.port":               &c.Server.Port,
		"server.log_level":          &c.Server.LogLevel,
		"google.backend":            &c.Google.Backend,
		"google.credentials_json":   &c.Google.CredentialsJSON,
		"google.credentials_file":   &c.Google.CredentialsFile,
		"google.oauth_client_file":  &c.Google.OAuthClientFile,
		"google.token_file":         &c.Google.TokenFile,
		"landmarks.root_folder_id":  &c.Landmarks.RootFolderID,
		"uploads.default_folder_id": &c.Uploads.DefaultFolderID,
		"uploads.conflict_policy":   &c.Uploads.ConflictPolicy,
	}
}

// Keys returns all settable keys, sorted
func (m *ConfigManager) Keys() []string {
	keys := []string{"server.multipart_memory_bytes"}
	for k := range m.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the display value for key. Secrets are masked.
func (m *ConfigManager) Get(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "server.multipart_memory_bytes" {
		return strconv.FormatInt(m.config.Server.MultipartMemoryBytes, 10), nil
	}

	field, ok := m.fields()[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if secretKeys[key] && *field != "" {
		return "<set>", nil
	}
	return *field, nil
}

// List returns all entries in key order
func (m *ConfigManager) List() []Entry {
	keys := m.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v, _ := m.Get(k)
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries
}

// Set validates and stores value under key, then saves the config file
func (m *ConfigManager) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	if err := validateValue(key, value); err != nil {
		return err
	}

	if key == "server.multipart_memory_bytes" {
		n, _ := strconv.ParseInt(value, 10, 64)
		m.config.Server.MultipartMemoryBytes = n
		return Save(m.config, m.configPath)
	}

	field, ok := m.fields()[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	*field = value
	return Save(m.config, m.configPath)
}

func validateValue(key, value string) error {
	switch key {
	case "uploads.conflict_policy":
		if _, err := upload.ParsePolicy(value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	case "google.backend":
		if value != BackendGoogle && value != BackendMemory {
			return fmt.Errorf("%w: backend must be %s or %s", ErrInvalidValue, BackendGoogle, BackendMemory)
		}
	case "server.port", "server.multipart_memory_bytes":
		if n, err := strconv.ParseInt(value, 10, 64); err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", ErrInvalidValue, key)
		}
	case "server.log_level":
		if _, err := (ServerConfig{LogLevel: value}).SlogLevel(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}
	return nil
}
