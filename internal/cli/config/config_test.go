package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sample.db", cfg.Database)
	assert.Equal(t, "backup_data", cfg.BackupDir)
	assert.Equal(t, ".sqldojo/history.db", cfg.History)
	assert.Equal(t, 8765, cfg.UI.Port)
	assert.True(t, cfg.UI.Watch)
	assert.Empty(t, cfg.AdminPasscode)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqldojo.yaml")
	content := "database: workshop.db\nui:\n  port: 3000\nadmin_passcode: hunter2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "workshop.db", cfg.Database)
	assert.Equal(t, 3000, cfg.UI.Port)
	assert.Equal(t, "hunter2", cfg.AdminPasscode)
	// Untouched keys keep their defaults.
	assert.Equal(t, "backup_data", cfg.BackupDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqldojo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: from_file.db\n"), 0600))

	t.Setenv("SQLDOJO_DATABASE", "from_env.db")
	t.Setenv("SQLDOJO_UI__PORT", "9000")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env.db", cfg.Database)
	assert.Equal(t, 9000, cfg.UI.Port)
}

func TestLoad_FlagsWinOverEverything(t *testing.T) {
	t.Setenv("SQLDOJO_DATABASE", "from_env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "", "")
	require.NoError(t, flags.Parse([]string{"--database", "from_flag.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from_flag.db", cfg.Database)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEnvToKey(t *testing.T) {
	assert.Equal(t, "database", envToKey("SQLDOJO_DATABASE"))
	assert.Equal(t, "backup_dir", envToKey("SQLDOJO_BACKUP_DIR"))
	assert.Equal(t, "ui.port", envToKey("SQLDOJO_UI__PORT"))
}
