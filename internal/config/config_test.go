package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Bootstrap.ManagerEmail)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdeck.toml")
	content := `
addr = "0.0.0.0:9090"
db_path = "/tmp/test.db"
debug = true
allowed_origins = ["https://app.example.com"]

[bootstrap]
manager_name = "Boss"
manager_email = "boss@example.com"
manager_password = "secret-pass"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "boss@example.com", cfg.Bootstrap.ManagerEmail)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`addr = "localhost:9090"`), 0644))

	t.Setenv("TASKDECK_ADDR", "localhost:7070")
	t.Setenv("TASKDECK_BOOTSTRAP_MANAGER_EMAIL", "env@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:7070", cfg.Addr)
	assert.Equal(t, "env@example.com", cfg.Bootstrap.ManagerEmail)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`addr = [unclosed`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
