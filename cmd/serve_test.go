package cmd

import (
	"testing"

	"drive-upload-services/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPort(t *testing.T) {
	base := &config.Config{Server: config.ServerConfig{Port: "8000", LogLevel: "info"}}

	t.Run("empty flag keeps config", func(t *testing.T) {
		c, err := withPort(base, "")
		require.NoError(t, err)
		assert.Same(t, base, c)
	})

	t.Run("flag overrides config", func(t *testing.T) {
		c, err := withPort(base, "9090")
		require.NoError(t, err)
		assert.Equal(t, "9090", c.Server.Port)
		assert.Equal(t, "info", c.Server.LogLevel)
		assert.Equal(t, "8000", base.Server.Port)
	})

	for _, bad := range []string{"http", "0", "70000"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := withPort(base, bad)
			assert.Error(t, err)
		})
	}
}

func TestServeCmd_PortFlag(t *testing.T) {
	flag := serveLandmarksCmd.InheritedFlags().Lookup("port")
	require.NotNil(t, flag, "serve subcommands inherit --port")
	assert.Equal(t, "", flag.DefValue)

	require.NoError(t, serveCmd.PersistentFlags().Set("port", "9191"))
	t.Cleanup(func() { servePort = "" })
	assert.Equal(t, "9191", servePort)
}
