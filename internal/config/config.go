// Package config provides configuration loading and management.
package config

import "time"

// Defaults applied when neither file nor environment sets a value.
const (
	DefaultCommandTimeout = 60 * time.Second
	DefaultKillGrace      = 5 * time.Second
	DefaultDeployCLI      = "fly"
	DefaultDatabaseClient = DatabaseClientPgx
)

// Database clients usable for creating the application database.
const (
	DatabaseClientPgx  = "pgx"
	DatabaseClientPsql = "psql"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Nil means on. Override with --timestamps.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// DeployConfig contains deployment bootstrap settings.
type DeployConfig struct {
	// CLI is the deployment CLI binary name.
	// Env: RTB_DEPLOY_CLI, Default: fly
	CLI string `mapstructure:"cli" yaml:"cli"`

	// DatabaseClient selects how the application database is created: pgx or psql.
	// Env: RTB_DEPLOY_DATABASE_CLIENT, Default: pgx
	DatabaseClient string `mapstructure:"database_client" yaml:"database_client"`

	// Force bypasses the "already configured" gate.
	// Env: RTB_DEPLOY_FORCE or FORCE_FLY_SETUP (any non-empty value)
	Force bool `mapstructure:"force" yaml:"force,omitempty"`
}

// Config represents the rtb CLI configuration, loaded from ~/.rtb/config.yaml.
type Config struct {
	// TemplateDir overrides the template root resolved next to the executable.
	// Env: RTB_TEMPLATE_DIR
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir,omitempty"`

	// CommandTimeout bounds every external command.
	// Env: RTB_COMMAND_TIMEOUT, Default: 60s
	CommandTimeout time.Duration `mapstructure:"command_timeout" yaml:"command_timeout"`

	// KillGrace bounds how long output pipes may stay open after a kill.
	// Env: RTB_KILL_GRACE, Default: 5s
	KillGrace time.Duration `mapstructure:"kill_grace" yaml:"kill_grace"`

	// Deploy contains deployment bootstrap settings.
	Deploy DeployConfig `mapstructure:"deploy" yaml:"deploy"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `rtb config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		CommandTimeout: DefaultCommandTimeout,
		KillGrace:      DefaultKillGrace,
		Deploy: DeployConfig{
			CLI:            DefaultDeployCLI,
			DatabaseClient: DefaultDatabaseClient,
		},
	}
}

// WithDefaults returns a copy of the config with unset fields defaulted.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.CommandTimeout <= 0 {
		out.CommandTimeout = DefaultCommandTimeout
	}
	if out.KillGrace <= 0 {
		out.KillGrace = DefaultKillGrace
	}
	if out.Deploy.CLI == "" {
		out.Deploy.CLI = DefaultDeployCLI
	}
	if out.Deploy.DatabaseClient == "" {
		out.Deploy.DatabaseClient = DefaultDatabaseClient
	}
	return &out
}
