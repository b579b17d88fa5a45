package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raise-the-bones/cli/internal/cmdtypes"
	"github.com/raise-the-bones/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show rtb version information.

Displays the CLI version, commit, build date and Go version.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdtypes.AnnotationConfigOptional: "true"},
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
