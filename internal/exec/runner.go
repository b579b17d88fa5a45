// Package exec runs external commands with a bounded timeout and reports
// failures as categorized errors.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

// Defaults used when an Invocation leaves the bounds unset.
const (
	DefaultTimeout   = 60 * time.Second
	DefaultKillGrace = 5 * time.Second
)

// Invocation describes a single external program call.
type Invocation struct {
	Program string
	Args    []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Timeout bounds the call. Zero means the runner default.
	Timeout time.Duration

	// Env holds extra environment variables overlaid on the current environment.
	Env map[string]string

	// Stdout receives standard output in addition to the captured copy. Optional.
	Stdout io.Writer
}

// String renders the invocation as a shell-like command line.
func (inv Invocation) String() string {
	if len(inv.Args) == 0 {
		return inv.Program
	}
	return inv.Program + " " + strings.Join(inv.Args, " ")
}

// Result holds the captured output of a successful command.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes invocations one at a time.
// Run returns a nil error only when the process exits with status zero;
// every other outcome is a *CommandError.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// RealRunner is the production Runner backed by os/exec.
type RealRunner struct {
	timeout   time.Duration
	killGrace time.Duration
}

// Option configures a RealRunner.
type Option func(*RealRunner)

// WithDefaultTimeout sets the timeout applied to invocations without one.
func WithDefaultTimeout(d time.Duration) Option {
	return func(r *RealRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithKillGrace bounds how long the runner waits for output pipes to close
// after the process has been killed.
func WithKillGrace(d time.Duration) Option {
	return func(r *RealRunner) {
		if d > 0 {
			r.killGrace = d
		}
	}
}

// NewRealRunner creates a new RealRunner.
func NewRealRunner(opts ...Option) *RealRunner {
	r := &RealRunner{timeout: DefaultTimeout, killGrace: DefaultKillGrace}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the invocation, capturing stdout and stderr.
func (r *RealRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, inv.Program, inv.Args...)
	cmd.Dir = inv.Dir
	// Pipes held open by grandchildren must not keep Wait blocked forever.
	cmd.WaitDelay = r.killGrace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if inv.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, inv.Stdout)
	}
	cmd.Stderr = &stderr

	if len(inv.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range inv.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	start := time.Now()
	err := cmd.Run()

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	cmdErr := &CommandError{
		Program: inv.Program,
		Args:    inv.Args,
		Dir:     inv.Dir,
		Stderr:  strings.TrimSpace(result.Stderr),
		Stdout:  strings.TrimSpace(result.Stdout),
		Err:     err,
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		cmdErr.Category = CategoryTimeout
		cmdErr.Timeout = timeout
	case ctx.Err() != nil:
		cmdErr.Category = CategoryCanceled
	case errors.As(err, &exitErr):
		cmdErr.Category = CategoryExit
		cmdErr.ExitCode = exitErr.ExitCode()
	default:
		cmdErr.Category = CategorySpawn
	}

	return result, cmdErr
}

// Category classifies why a command did not succeed.
type Category string

const (
	// CategoryExit means the process ran and exited non-zero.
	CategoryExit Category = "exit"

	// CategoryTimeout means the process was killed after its timeout elapsed.
	CategoryTimeout Category = "timeout"

	// CategorySpawn means the process could not be started (binary missing, bad dir).
	CategorySpawn Category = "spawn"

	// CategoryCanceled means the caller's context ended first.
	CategoryCanceled Category = "canceled"
)

// CommandError describes a failed invocation.
type CommandError struct {
	Category Category
	Program  string
	Args     []string
	Dir      string
	ExitCode int
	Timeout  time.Duration
	Stderr   string
	Stdout   string
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	cmdline := Invocation{Program: e.Program, Args: e.Args}.String()
	var msg string
	switch e.Category {
	case CategoryTimeout:
		msg = fmt.Sprintf("%s timed out after %s", cmdline, e.Timeout)
	case CategorySpawn:
		msg = fmt.Sprintf("%s could not be started: %v", cmdline, e.Err)
	case CategoryCanceled:
		msg = fmt.Sprintf("%s canceled", cmdline)
	default:
		msg = fmt.Sprintf("%s failed with exit code %d", cmdline, e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap exposes both the command sentinel and the underlying os/exec error.
func (e *CommandError) Unwrap() []error {
	return []error{oerrors.ErrCommand, e.Err}
}

// Diagnostic returns the most useful captured output for display.
func (e *CommandError) Diagnostic() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Stdout
}

// IsCategory reports whether err is a *CommandError of the given category.
func IsCategory(err error, c Category) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Category == c
}
