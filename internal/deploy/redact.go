package deploy

import (
	"errors"
	"strings"

	"github.com/raise-the-bones/cli/internal/exec"
)

const redacted = "<redacted>"

// redactCommandError returns err with every occurrence of secret masked in
// the command line and captured output. Non-command errors pass through.
func redactCommandError(err error, secret string) error {
	var cmdErr *exec.CommandError
	if secret == "" || !errors.As(err, &cmdErr) {
		return err
	}

	masked := *cmdErr
	masked.Args = make([]string, len(cmdErr.Args))
	for i, a := range cmdErr.Args {
		masked.Args[i] = strings.ReplaceAll(a, secret, redacted)
	}
	masked.Stderr = strings.ReplaceAll(cmdErr.Stderr, secret, redacted)
	masked.Stdout = strings.ReplaceAll(cmdErr.Stdout, secret, redacted)
	return &masked
}
