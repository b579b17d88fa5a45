package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for rtb configuration.
const envPrefix = "RTB"

// forceEnv is the legacy switch that bypasses the deployment gate.
const forceEnv = "FORCE_FLY_SETUP"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about, so bind them all.
	_ = v.BindEnv("template_dir", "RTB_TEMPLATE_DIR")
	_ = v.BindEnv("command_timeout", "RTB_COMMAND_TIMEOUT")
	_ = v.BindEnv("kill_grace", "RTB_KILL_GRACE")
	_ = v.BindEnv("deploy.cli", "RTB_DEPLOY_CLI")
	_ = v.BindEnv("deploy.database_client", "RTB_DEPLOY_DATABASE_CLIENT")
	_ = v.BindEnv("deploy.force", "RTB_DEPLOY_FORCE")
	_ = v.BindEnv("force_fly_setup", forceEnv)

	v.SetDefault("command_timeout", DefaultCommandTimeout)
	v.SetDefault("kill_grace", DefaultKillGrace)
	v.SetDefault("deploy.cli", DefaultDeployCLI)
	v.SetDefault("deploy.database_client", DefaultDatabaseClient)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, the default config file path is used.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
		// A missing file is fine; defaults and env vars still apply.
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if l.v.GetString("force_fly_setup") != "" {
		cfg.Deploy.Force = true
	}

	if cfg.TemplateDir != "" {
		if cfg.TemplateDir, err = ExpandPath(cfg.TemplateDir); err != nil {
			return nil, fmt.Errorf("expanding template_dir: %w", err)
		}
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration, applies defaults and validates it.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
