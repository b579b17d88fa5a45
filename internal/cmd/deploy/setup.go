package deploy

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raise-the-bones/cli/internal/cmdtypes"
	"github.com/raise-the-bones/cli/internal/cmdutil"
	"github.com/raise-the-bones/cli/internal/config"
	"github.com/raise-the-bones/cli/internal/deploy"
	oerrors "github.com/raise-the-bones/cli/internal/errors"
	"github.com/raise-the-bones/cli/internal/exec"
	"github.com/raise-the-bones/cli/internal/output"
)

// NewSetupCmd creates the deploy setup command.
func NewSetupCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.DeployFlags

	c := &cobra.Command{
		Use:   "setup",
		Short: "Create the fly.io app and its DATABASE_URL secret",
		Long: `Create the fly.io app named in fly.toml and set its DATABASE_URL secret.

The command is safe to re-run. When the app exists and already has a
DATABASE_URL secret it exits without changing anything; --force or
FORCE_FLY_SETUP=1 bypasses that check.

The connection string is taken from .env.production when present.
Otherwise an existing secret is kept, or you are asked for the Postgres
instance URL and the database <app_name> is created on it.

Examples:
  # Provision the project in the current directory
  rtb deploy setup

  # Provision another project, ignoring the already-configured check
  rtb deploy setup --project ./my-app --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSetup(c, cfg, flags)
		},
	}

	flags.AddTo(c)

	return c
}

func runSetup(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags cmdutil.DeployFlags) error {
	settings := cfg.Settings()
	runner := cmdutil.NewRunner(settings)

	platform := deploy.NewFly(runner,
		deploy.WithCLI(settings.Deploy.CLI),
		deploy.WithDir(flags.Project),
		deploy.WithCallTimeout(settings.CommandTimeout))

	b := deploy.NewBootstrapper(platform, databaseCreator(settings, runner),
		deploy.WithOutput(c.OutOrStdout()),
		deploy.WithCLIName(settings.Deploy.CLI))

	res, err := b.Run(c.Context(), deploy.Options{
		Dir:   flags.Project,
		Force: flags.Force || settings.Deploy.Force,
	})
	if err != nil {
		return setupFailure(err)
	}

	cmdutil.PrintDeploySummary(c.OutOrStdout(), res)
	return nil
}

// setupFailure wraps a fatal bootstrap error. Errors with operator guidance
// are printed as is by main; anything else is logged here.
func setupFailure(err error) error {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	output.Error("deployment setup failed", "error", err)
	return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err, Printed: true}
}

func databaseCreator(settings *config.Config, runner exec.Runner) deploy.DatabaseCreator {
	if settings.Deploy.DatabaseClient == config.DatabaseClientPsql {
		return deploy.PsqlCreator{Runner: runner, Timeout: settings.CommandTimeout}
	}
	return deploy.PgxCreator{ConnectTimeout: settings.CommandTimeout}
}
