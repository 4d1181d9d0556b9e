package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvVerifyChecksum, EnvPartial, EnvXZPath, EnvQuiet} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestDefault(t *testing.T) {
	unsetEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv(t *testing.T) {
	unsetEnv(t)
	t.Setenv(EnvVerifyChecksum, "true")
	t.Setenv(EnvPartial, "1")
	t.Setenv(EnvXZPath, "/usr/bin/xz")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{VerifyChecksum: true, Partial: true, XZPath: "/usr/bin/xz"}, cfg)
}

func TestFromEnvBadBool(t *testing.T) {
	unsetEnv(t)
	t.Setenv(EnvPartial, "sometimes")

	_, err := FromEnv()
	assert.ErrorContains(t, err, EnvPartial)
}

func TestLoadDotEnv(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MPAM_QUIET=true\nMPAM_XZ_PATH=/opt/xz\n"), 0o644))

	// Variables already set win over the file.
	t.Setenv(EnvXZPath, "/bin/xz")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "/bin/xz", cfg.XZPath)
}
