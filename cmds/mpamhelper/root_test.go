package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytoy-sec/MpamParser/pkg/log"
	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	saved := log.DefaultLogger
	t.Cleanup(func() { log.DefaultLogger = saved })
	log.DefaultLogger = log.New(&bytes.Buffer{})

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--env-file=" + filepath.Join(t.TempDir(), "none.env")}, args...))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestSynthThenInspect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mpam.dat.xz")

	require.NoError(t, execute(t, "synth", "--xz", path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, []byte(mpam.Signature), raw[:4])

	out := filepath.Join(dir, "cache.bin")
	require.NoError(t, execute(t, "--verify-checksum", path, "dump", "0x7ffff0010000", out))
	node, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, byte(mpam.InterfaceCache), node[0])
}

func TestRootArgs(t *testing.T) {
	assert.Error(t, execute(t))
	assert.Error(t, execute(t, filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, execute(t, "synth"))
}
