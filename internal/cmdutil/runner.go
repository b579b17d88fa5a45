package cmdutil

import (
	"github.com/raise-the-bones/cli/internal/config"
	"github.com/raise-the-bones/cli/internal/exec"
)

// NewRunner creates the command runner configured by cfg.
func NewRunner(cfg *config.Config) *exec.RealRunner {
	return exec.NewRealRunner(
		exec.WithDefaultTimeout(cfg.CommandTimeout),
		exec.WithKillGrace(cfg.KillGrace),
	)
}
