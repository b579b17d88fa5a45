package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/raise-the-bones/cli/internal/exec"
	"github.com/raise-the-bones/cli/internal/output"
)

const identityHint = `git user identity is not configured; set it with ` +
	`git config --global user.name "Your Name" and ` +
	`git config --global user.email you@example.com, then commit manually`

// Orchestrator runs the setup steps sequentially in a project directory.
type Orchestrator struct {
	runner  exec.Runner
	fs      afero.Fs
	out     io.Writer
	timeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFs sets the filesystem used to inspect the project directory.
func WithFs(fs afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fs
	}
}

// WithOutput sets where step lines are printed.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.out = w
	}
}

// WithStepTimeout bounds every step. Zero means the runner default.
func WithStepTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// NewOrchestrator creates an orchestrator that executes through runner.
func NewOrchestrator(runner exec.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner: runner,
		fs:     afero.NewOsFs(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the setup steps in dir for the named project. A failing
// step becomes a warning. A failed dependency install or code generation
// ends the sequence and the later steps are recorded as skipped; a failed
// git init only skips the git steps. Run stops early when ctx is canceled.
func (o *Orchestrator) Run(ctx context.Context, dir, projectName string) *Result {
	res := &Result{}

	gitReady := o.step(ctx, res, StepGitInit, dir, "git", "init")

	if ok, _ := afero.Exists(o.fs, filepath.Join(dir, "package.json")); !ok {
		o.step(ctx, res, StepNpmInit, dir, "npm", "init", "-y")
	}

	if !o.step(ctx, res, StepInstall, dir, "npm", "install") {
		o.skip(res, "dependency installation failed", StepGenerate, StepStage, StepCommit)
		return res
	}
	if !o.step(ctx, res, StepGenerate, dir, "npm", "run", "db:generate") {
		o.skip(res, "code generation failed", StepStage, StepCommit)
		return res
	}

	if !gitReady {
		o.skip(res, "git init did not succeed", StepStage, StepCommit)
		return res
	}

	if !o.step(ctx, res, StepStage, dir, "git", "add", "-A") {
		o.skip(res, "nothing was staged", StepCommit)
		return res
	}

	if !o.hasIdentity(ctx, res, dir) {
		return res
	}

	o.step(ctx, res, StepCommit, dir, "git", "commit", "-m", "Initial commit for "+projectName)
	return res
}

// step runs one command and records its outcome. It returns true on success.
func (o *Orchestrator) step(ctx context.Context, res *Result, step Step, dir, program string, args ...string) bool {
	if ctx.Err() != nil {
		o.skip(res, "canceled", step)
		return false
	}

	inv := exec.Invocation{
		Program: program,
		Args:    args,
		Dir:     dir,
		Timeout: o.timeout,
	}
	if output.IsVerbose() {
		inv.Stdout = output.DebugWriter(string(step))
	}

	output.Debug("running setup step", "step", step, "command", inv.String(), "dir", dir)

	start := time.Now()
	err := output.RunWithSpinner(ctx, func() error {
		_, err := o.runner.Run(ctx, inv)
		return err
	}, output.WithTitle(string(step)))
	elapsed := time.Since(start)

	if err == nil {
		o.record(res, step, output.StatusDone, elapsed)
		return true
	}

	w := Warning{Step: step, Kind: kindOf(err), Message: describe(err), Err: err}
	if w.Kind == KindToolMissing {
		w.Message = fmt.Sprintf("%s is not installed or not on PATH", program)
	}
	res.Warnings = append(res.Warnings, w)
	output.Warn("setup step failed", "step", step, "kind", w.Kind, "err", err)
	o.record(res, step, output.StatusWarning, elapsed)
	return false
}

// hasIdentity asks git for the author identity before committing.
// A missing identity skips the commit with an identity-specific warning.
func (o *Orchestrator) hasIdentity(ctx context.Context, res *Result, dir string) bool {
	_, err := o.runner.Run(ctx, exec.Invocation{
		Program: "git",
		Args:    []string{"var", "GIT_AUTHOR_IDENT"},
		Dir:     dir,
		Timeout: o.timeout,
	})
	if err == nil {
		return true
	}

	if !exec.IsCategory(err, exec.CategoryExit) {
		res.Warnings = append(res.Warnings, Warning{
			Step:    StepIdentity,
			Kind:    kindOf(err),
			Message: err.Error(),
			Err:     err,
		})
		o.record(res, StepCommit, output.StatusSkipped, 0)
		return false
	}

	res.Warnings = append(res.Warnings, Warning{
		Step:    StepCommit,
		Kind:    KindIdentityMissing,
		Message: identityHint,
		Err:     err,
	})
	output.Warn("skipping initial commit", "reason", "git identity not configured")
	o.record(res, StepCommit, output.StatusSkipped, 0)
	return false
}

func (o *Orchestrator) skip(res *Result, reason string, steps ...Step) {
	for _, step := range steps {
		res.Warnings = append(res.Warnings, Warning{Step: step, Kind: KindSkipped, Message: "skipped: " + reason})
		o.record(res, step, output.StatusSkipped, 0)
	}
}

func (o *Orchestrator) record(res *Result, step Step, status string, d time.Duration) {
	res.Steps = append(res.Steps, StepResult{Step: step, Status: status, Duration: d})
	fmt.Fprintln(o.out, output.FormatStepLine(string(step), status))
}

// describe renders a step failure. npm reports some errors on stdout only,
// so the captured diagnostic is appended when stderr was empty.
func describe(err error) string {
	var cmdErr *exec.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Stderr != "" || cmdErr.Diagnostic() == "" {
		return err.Error()
	}
	return err.Error() + ": " + cmdErr.Diagnostic()
}

func kindOf(err error) WarningKind {
	switch {
	case exec.IsCategory(err, exec.CategoryTimeout):
		return KindTimeout
	case exec.IsCategory(err, exec.CategorySpawn):
		return KindToolMissing
	default:
		return KindCommandFailed
	}
}
