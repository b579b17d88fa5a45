package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")

		content := `
template_dir: /opt/rtb/template
command_timeout: 90s
deploy:
  cli: flyctl
  database_client: psql
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/opt/rtb/template", cfg.TemplateDir)
		assert.Equal(t, 90*time.Second, cfg.CommandTimeout)
		assert.Equal(t, "flyctl", cfg.Deploy.CLI)
		assert.Equal(t, DatabaseClientPsql, cfg.Deploy.DatabaseClient)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, DefaultCommandTimeout, cfg.CommandTimeout)
		assert.Equal(t, DefaultDeployCLI, cfg.Deploy.CLI)
		assert.Nil(t, cfg.Log.Timestamps)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("deploy:\n  cli: flyctl\n"), 0o644))

		t.Setenv("RTB_DEPLOY_CLI", "fly-env")
		t.Setenv("RTB_COMMAND_TIMEOUT", "5s")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "fly-env", cfg.Deploy.CLI)
		assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	})

	t.Run("legacy force variable sets deploy.force", func(t *testing.T) {
		t.Setenv("FORCE_FLY_SETUP", "1")

		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "none.yaml"))

		require.NoError(t, err)
		assert.True(t, cfg.Deploy.Force)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("deploy: [unclosed\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestLoadWithDefaults_Validates(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("deploy:\n  database_client: sqlite\n"), 0o644))

	_, err := NewLoader().LoadWithDefaults(configFile)
	assert.Error(t, err)
}
