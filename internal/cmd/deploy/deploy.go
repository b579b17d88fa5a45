// Package deploy provides CLI command implementations for the deploy command group.
package deploy

import (
	"github.com/spf13/cobra"

	"github.com/raise-the-bones/cli/internal/cmdtypes"
)

// NewDeployCmd creates the deploy command group.
func NewDeployCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "deploy",
		Short: "Deployment commands",
		Long:  `Commands that prepare a generated project for deployment on fly.io.`,
	}

	c.AddCommand(NewSetupCmd(cfg))

	return c
}
