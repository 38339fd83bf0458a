package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears the variable while keeping t.Setenv's restore-on-cleanup.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "LOG_LEVEL")
	unsetenv(t, "LOG_FORMAT")
	unsetenv(t, "CGTOOLS_CONFIG_PACKAGE")
	unsetenv(t, "CGTOOLS_PACKAGE_CONFIG_DIR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "cgtools", cfg.ConfigPackage)
	assert.Empty(t, cfg.PackageConfigDir)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CGTOOLS_CONFIG_PACKAGE", "studio")
	t.Setenv("CGTOOLS_PACKAGE_CONFIG_DIR", "/opt/studio/config")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "studio", cfg.ConfigPackage)
	assert.Equal(t, "/opt/studio/config", cfg.PackageConfigDir)
}
