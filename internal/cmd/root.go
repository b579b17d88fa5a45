// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/raise-the-bones/cli/internal/cmd/config"
	"github.com/raise-the-bones/cli/internal/cmd/deploy"
	"github.com/raise-the-bones/cli/internal/cmdtypes"
	"github.com/raise-the-bones/cli/internal/cmdutil"
	rtbconfig "github.com/raise-the-bones/cli/internal/config"
	"github.com/raise-the-bones/cli/internal/output"
)

// NewRootCmd creates the root command for the rtb CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
		genFlags       cmdutil.GenerateFlags
	)

	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "rtb <project-name>",
		Short: "Raise the bones of a new full-stack project",
		Long: `rtb creates a new full-stack project from the bundled template.

The project name must use lowercase letters, digits and single hyphens.
The project is created in <directory>/<project-name>, the placeholder files
are rewritten for the new name, and git and npm are set up. Setup problems
are reported as warnings and never undo the generated project.

Examples:
  # Create ./my-app
  rtb my-app

  # Create ~/code/my-app without running git or npm
  rtb my-app --directory ~/code --skip-setup

  # Provision the fly.io app and database secret afterwards
  cd my-app && rtb deploy setup`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, configFlag, verboseFlag, timestampsFlag)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, cfg, args[0], genFlags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: RTB_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	genFlags.AddTo(rootCmd)

	rootCmd.AddCommand(deploy.NewDeployCmd(cfg))
	rootCmd.AddCommand(config.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, configFlag string, verbose, timestamps bool) error {
	configPath := configFlag
	if configPath == "" {
		configPath, _ = rtbconfig.GetConfigFile()
	}
	cfg.ConfigPath = configPath
	cfg.Verbose = verbose

	loaded, loadErr := rtbconfig.NewLoader().LoadWithDefaults(configFlag)
	if loadErr != nil {
		if c.Annotations[cmdtypes.AnnotationConfigOptional] == "" {
			output.SetupLogging(output.LogConfig{Verbose: verbose})
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: loadErr}
		}
		loaded = rtbconfig.DefaultConfig()
	}
	cfg.Config = loaded

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Debug("config load error, using defaults", "error", loadErr)
	}
	output.Debug("initializing CLI",
		"config", cfg.ConfigPath,
		"template_dir", loaded.TemplateDir,
		"command_timeout", loaded.CommandTimeout,
		"deploy_cli", loaded.Deploy.CLI,
	)

	return nil
}
