package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drive-upload-services/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShowWithDependencies(t *testing.T) {
	c := &config.Config{}
	c.Google.CredentialsJSON = `{"private_key":"secret"}`
	c.Uploads.DefaultFolderID = "uploads-1"
	c.ApplyDefaults()

	var out bytes.Buffer
	require.NoError(t, RunConfigShowWithDependencies(c, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.Contains(t, out.String(), "uploads.default_folder_id")
	assert.Contains(t, out.String(), "uploads-1")
	assert.Contains(t, out.String(), "<set>")
	assert.NotContains(t, out.String(), "secret")
}

func TestRunConfigSetWithDependencies_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")

	var out bytes.Buffer
	require.NoError(t, RunConfigSetWithDependencies(path, "uploads.conflict_policy", "overwrite", &out))
	assert.Equal(t, "Set uploads.conflict_policy = overwrite\n", out.String())

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "overwrite", c.Uploads.ConflictPolicy)
	assert.Empty(t, c.Server.Port)
}

func TestRunConfigSetWithDependencies_KeepsOtherValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("landmarks:\n  root_folder_id: root-1\n"), 0600))

	require.NoError(t, RunConfigSetWithDependencies(path, "server.port", "9001", &bytes.Buffer{}))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "root-1", c.Landmarks.RootFolderID)
	assert.Equal(t, "9001", c.Server.Port)
}

func TestRunConfigSetWithDependencies_InvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := RunConfigSetWithDependencies(path, "uploads.conflict_policy", "replace", &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalidValue)
	assert.NoFileExists(t, path)
}
