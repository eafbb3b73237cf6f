package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ATTIO_TOKEN", "ATTIO_BASE_URL", "ATTIO_TIMEOUT", "ATTIO_COMPANY_OBJECT_ID",
		"ATTIO_FAST_TRACK_LIST_ID", "ATTIO_WEBHOOK_SECRET", "DATABASE_URL", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.AttioTimeout)
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
attio_token: from-file
database_url: postgres://localhost/attio
port: 9000
attio_timeout: 5s
`), 0o600))

	t.Setenv("ATTIO_TOKEN", "from-env")
	t.Setenv("ATTIO_TIMEOUT", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AttioToken)
	assert.Equal(t, "postgres://localhost/attio", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.AttioTimeout)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("PORT", "eighty")
	_, err = Load("")
	assert.ErrorContains(t, err, "PORT")

	t.Setenv("PORT", "")
	t.Setenv("ATTIO_TIMEOUT", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "ATTIO_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ATTIO_TOKEN")

	cfg.AttioToken = "token"
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	cfg.DatabaseURL = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
