package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	content := `backend_url: "https://backend.local"
backend_token: "tok"
tenant_id: "tenant-1"
db_path: "insights.db"
cache_ttl: 5m`
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://backend.local", cfg.BackendURL)
	assert.Equal(t, "tok", cfg.BackendToken)
	assert.Equal(t, "tenant-1", cfg.TenantID)
	assert.Equal(t, "insights.db", cfg.DBPath)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	err := os.WriteFile(path, []byte(`backend_url: "https://backend.local"`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "groona-insights.db", cfg.DBPath)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(path, []byte("backend_url: [unclosed"), 0o644)
	require.NoError(t, err)

	_, err = Load(path)
	assert.Error(t, err)
}
