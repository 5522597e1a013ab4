package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://dummyjson.com", c.ServerBaseURL)
	assert.Equal(t, "catalog.db", c.DatabasePath)
	assert.Zero(t, c.RequestTimeout)
	assert.Zero(t, c.RateLimit)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnvVar, "")
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://dummyjson.com", cfg.ServerBaseURL)
	assert.Equal(t, "catalog.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnvVar, "")

	path := writeTempJSON(t, "", "", map[string]any{
		"server_base_url": "http://json.example",
		"request_timeout": "1500ms",
		"log_format":      "json",
	})
	os.Args = []string{"testbin", "-c", path, "-a", "http://flag.example"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag.example", cfg.ServerBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout, "timeout not passed as a flag must survive")
	assert.Equal(t, "json", cfg.LogFormat)
}
