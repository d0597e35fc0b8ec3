package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Empty(t, cfg.LogFile)
	assert.Zero(t, cfg.Workers)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demonax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database: /var/lib/demonax.sqlite\nworkers: 4\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/demonax.sqlite", cfg.Database)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demonax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database: /from/file.sqlite\nworkers: 4\n"), 0o644))

	t.Setenv("DEMONAX_DATABASE", "/from/env.sqlite")
	t.Setenv("DEMONAX_WORKERS", "8")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.sqlite", cfg.Database)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DEMONAX_DATABASE", "/from/env.sqlite")

	flagDB := filepath.Join(t.TempDir(), "flag.sqlite")
	game := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(game, "mon"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(game, "mon", "d.mon"),
		[]byte("RaceNumber = 1\nName = \"rat\"\n"), 0o644))

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--database", flagDB, "update-creatures", game})
	require.NoError(t, cmd.Execute())

	// The flag value won: the database was created at the flag path.
	_, err := os.Stat(flagDB)
	assert.NoError(t, err)
}

func TestEnvironmentDatabaseUsedWithoutFlag(t *testing.T) {
	envDB := filepath.Join(t.TempDir(), "env.sqlite")
	t.Setenv("DEMONAX_DATABASE", envDB)

	game := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(game, "mon"), 0o755))

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"update-creatures", game})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(envDB)
	assert.NoError(t, err)
}
