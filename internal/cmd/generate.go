package cmd

import (
	"github.com/spf13/cobra"

	"github.com/raise-the-bones/cli/internal/cmdtypes"
	"github.com/raise-the-bones/cli/internal/cmdutil"
	"github.com/raise-the-bones/cli/internal/output"
	"github.com/raise-the-bones/cli/internal/setup"
	"github.com/raise-the-bones/cli/internal/templates"
)

func runGenerate(c *cobra.Command, cfg *cmdtypes.GlobalConfig, name string, flags cmdutil.GenerateFlags) error {
	settings := cfg.Settings()

	templateDir := flags.TemplateDir
	if templateDir == "" {
		templateDir = settings.TemplateDir
	}

	gen := templates.NewGenerator(templates.GenerateOptions{
		Name:        name,
		ParentDir:   flags.Directory,
		TemplateDir: templateDir,
	})

	res, err := gen.Generate()
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	output.Debug("project files written",
		"dir", res.TargetDir,
		"files", len(res.Files),
		"rewritten", len(res.Rewritten))

	installed := false
	if !flags.SkipSetup {
		out := c.OutOrStdout()
		orch := setup.NewOrchestrator(cmdutil.NewRunner(settings),
			setup.WithOutput(out),
			setup.WithStepTimeout(settings.CommandTimeout))

		sres := orch.Run(c.Context(), res.TargetDir, res.Project.Kebab)
		res.Warnings = append(res.Warnings, sres.Warnings...)
		installed = sres.Status(setup.StepGenerate) == output.StatusDone
	}

	cmdutil.PrintGenerateSummary(c.OutOrStdout(), res, installed)
	return nil
}
