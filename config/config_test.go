package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil), nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, FileDriver, cfg.StorageDriver)
	assert.Equal(t, "requests", cfg.StorageDir)
	assert.Equal(t, "127.0.0.1:3306", cfg.MySQL.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogDev)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoadEnvironment(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"SUBSCRIBER_HOST": "127.0.0.1",
		"SUBSCRIBER_PORT": "9090",
		"STORAGE_DRIVER":  "mysql",
		"MYSQL_DATABASE":  "subscribers",
		"LOG_DEV":         "1",
	}), nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, MySQLDriver, cfg.StorageDriver)
	assert.Equal(t, "subscribers", cfg.MySQL.Database)
	assert.True(t, cfg.LogDev)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := load(env(map[string]string{"SUBSCRIBER_PORT": "9090"}), []string{"-host", "localhost", "-port", "8081"})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Addr())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := load(env(map[string]string{"SUBSCRIBER_PORT": "eighty"}), nil)
	assert.Error(t, err)

	_, err = load(env(nil), []string{"-port", "70000"})
	assert.Error(t, err)

	_, err = load(env(map[string]string{"STORAGE_DRIVER": "s3"}), nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}
