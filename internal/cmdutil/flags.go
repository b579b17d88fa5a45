// Package cmdutil provides shared command utilities for rtb subcommands.
// It centralizes flag groups, command runner construction and the
// summary output printed after generation and deployment.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// GenerateFlags holds the flags of the generation command.
type GenerateFlags struct {
	Directory   string
	TemplateDir string
	SkipSetup   bool
}

// AddTo registers the generation flags on the given cobra command.
func (f *GenerateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Directory, "directory", "d", "",
		"Parent directory to create the project in (default: current directory)")
	cmd.Flags().StringVar(&f.TemplateDir, "template-dir", "",
		"Template root to copy (env: RTB_TEMPLATE_DIR)")
	cmd.Flags().BoolVar(&f.SkipSetup, "skip-setup", false,
		"Skip git init, dependency install and the initial commit")
}

// DeployFlags holds the flags of the deployment commands.
type DeployFlags struct {
	Project string
	Force   bool
}

// AddTo registers the deployment flags on the given cobra command.
func (f *DeployFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Project, "project", "p", ".",
		"Generated project directory")
	cmd.Flags().BoolVar(&f.Force, "force", false,
		"Re-run even when the app and secret are already configured (env: FORCE_FLY_SETUP)")
}
