package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raise-the-bones/cli/internal/cmdtypes"
	"github.com/raise-the-bones/cli/internal/config"
	oerrors "github.com/raise-the-bones/cli/internal/errors"
	"github.com/raise-the-bones/cli/internal/output"
)

const configHeader = `# rtb configuration.
# Every key can be overridden with an RTB_ environment variable,
# e.g. RTB_COMMAND_TIMEOUT=2m or RTB_DEPLOY_DATABASE_CLIENT=psql.
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new rtb configuration file",
		Long: `Create a new rtb configuration file with default values.

The configuration file is created at ~/.rtb/config.yaml by default.
Use the --config flag or RTB_CONFIG to choose a different location.

Examples:
  # Initialize configuration
  rtb config init

  # Overwrite existing configuration
  rtb config init --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdtypes.AnnotationConfigOptional: "true"},
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	configFile := cfg.ConfigPath
	if configFile == "" {
		var err error
		configFile, err = config.GetConfigFile()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
		}
	}

	expandedPath, err := config.ExpandPath(configFile)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}

	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err: &oerrors.DetailError{
				Type:     "validation failed",
				Message:  "configuration already exists",
				Location: expandedPath,
				Hint:     "Use --force to overwrite existing configuration.",
				Cause:    oerrors.ErrValidation,
			},
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(expandedPath, append([]byte(configHeader), data...), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	output.Debug("wrote config file", "path", expandedPath)
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration written to "+expandedPath))
	return nil
}
