package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConf = `[CLMS]
type = s3
provider = Ceph
env_auth = true
access_key_id = AKIATEST
secret_access_key = sekrit
region = default
endpoint = https://s3.waw3-1.cloudferro.com
location_constraint = default
`

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rclone.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConf(t, sampleConf), "CLMS")
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Type)
	assert.Equal(t, "Ceph", cfg.Provider)
	assert.True(t, cfg.EnvAuth)
	assert.Equal(t, "AKIATEST", cfg.AccessKeyID)
	assert.Equal(t, "sekrit", cfg.SecretAccessKey)
	assert.Equal(t, "default", cfg.Region)
	assert.Equal(t, "https://s3.waw3-1.cloudferro.com", cfg.Endpoint)
	assert.Equal(t, "default", cfg.LocationConstraint)
}

func TestLoad_optionalKeysAbsent(t *testing.T) {
	cfg, err := Load(writeConf(t, `[CLMS]
type = s3
provider = Ceph
access_key_id = AKIATEST
secret_access_key = sekrit
region = default
endpoint = https://example.com
`), "CLMS")
	require.NoError(t, err)
	assert.False(t, cfg.EnvAuth)
	assert.Empty(t, cfg.LocationConstraint)
}

func TestLoad_missingRequiredKey(t *testing.T) {
	cfg, err := Load(writeConf(t, `[CLMS]
type = s3
provider = Ceph
access_key_id = AKIATEST
secret_access_key = sekrit
endpoint = https://example.com
`), "CLMS")
	require.Error(t, err)
	assert.Nil(t, cfg, "no partial config may be returned")
	assert.Contains(t, err.Error(), `missing key "region"`)
}

func TestLoad_missingSection(t *testing.T) {
	cfg, err := Load(writeConf(t, sampleConf), "OTHER")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), `"OTHER"`)
}

func TestLoad_missingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.conf"), "CLMS")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RCLONE_CONFIG_CLMS_ACCESS_KEY_ID", "AKIATEST")
	t.Setenv("RCLONE_CONFIG_CLMS_SECRET_ACCESS_KEY", "sekrit")
	t.Setenv("RCLONE_CONFIG_CLMS_ENDPOINT", "https://s3.example.com")

	cfg, err := FromEnv("CLMS")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "AKIATEST", cfg.AccessKeyID)
	assert.Equal(t, "sekrit", cfg.SecretAccessKey)
	assert.Equal(t, "https://s3.example.com", cfg.Endpoint)
	// Unset parameters fall back to the CLMS defaults.
	assert.Equal(t, DefaultType, cfg.Type)
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultRegion, cfg.Region)
}

func TestFromEnv_notConfigured(t *testing.T) {
	t.Setenv("RCLONE_CONFIG_CLMS_ACCESS_KEY_ID", "")
	t.Setenv("RCLONE_CONFIG_CLMS_SECRET_ACCESS_KEY", "")

	cfg, err := FromEnv("CLMS")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestDefault(t *testing.T) {
	cfg := Default("id", "secret")
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "id", cfg.AccessKeyID)
	assert.Equal(t, "secret", cfg.SecretAccessKey)
	assert.True(t, cfg.EnvAuth)
}

func TestDefaultPath_envOverride(t *testing.T) {
	t.Setenv("RCLONE_CONFIG", "/etc/rclone/rclone.conf")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/rclone/rclone.conf", path)
}
