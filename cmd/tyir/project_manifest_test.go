package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadProjectManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `# test manifest
[lower]
format = "debug"
jobs = 3
max_diagnostics = 7

[cache]
enabled = true
dir = ".cache/ir"

[trace]
level = "phase"
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, ok, err := loadProjectManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "debug", m.Config.Lower.Format)
	assert.Equal(t, 3, m.Config.Lower.Jobs)
	assert.Equal(t, 7, m.Config.Lower.MaxDiagnostics)
	assert.Equal(t, filepath.Join(m.Root, ".cache", "ir"), m.cacheDir())
	assert.True(t, m.cacheEnabled())
	assert.Equal(t, "phase", m.Config.Trace.Level)
}

func TestLoadProjectManifestMissing(t *testing.T) {
	// t.TempDir lives outside any project, unless the machine has a stray tyir.toml.
	dir := t.TempDir()
	if _, ok, _ := findManifest(dir); ok {
		t.Skip("tyir.toml found above the temp dir")
	}
	m, ok, err := loadProjectManifest(dir)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)

	var nilManifest *projectManifest
	assert.True(t, nilManifest.cacheEnabled(), "nil manifest keeps the cache on")
	assert.Empty(t, nilManifest.cacheDir())
}

func TestLoadProjectConfigRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"bad format", "[lower]\nformat = \"xml\"\n", "[lower].format"},
		{"negative jobs", "[lower]\njobs = -1\n", "[lower].jobs"},
		{"unknown key", "[lower]\nspeed = 3\n", "unknown keys: lower.speed"},
		{"broken toml", "[lower\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.data)
			_, err := loadProjectConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCacheDisabledByManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[cache]\nenabled = false\ndir = \"/abs/cache\"\n")
	m, err := readManifest(path)
	require.NoError(t, err)
	assert.False(t, m.cacheEnabled())
	assert.Equal(t, "/abs/cache", m.cacheDir())
}
