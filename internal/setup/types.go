// Package setup runs the post-generation tooling steps inside a new project.
package setup

import (
	"fmt"
	"time"
)

// Step names a setup step. The value is also the display title.
type Step string

// Setup steps, in execution order.
const (
	StepGitInit  Step = "git init"
	StepNpmInit  Step = "npm init"
	StepInstall  Step = "npm install"
	StepGenerate Step = "npm run db:generate"
	StepStage    Step = "git add"
	StepIdentity Step = "git identity"
	StepCommit   Step = "git commit"
)

// WarningKind classifies a non-fatal setup problem.
type WarningKind string

const (
	// KindCommandFailed means the command ran and exited non-zero.
	KindCommandFailed WarningKind = "command-failed"

	// KindTimeout means the command was killed after its timeout.
	KindTimeout WarningKind = "timeout"

	// KindToolMissing means the program could not be started.
	KindToolMissing WarningKind = "tool-missing"

	// KindIdentityMissing means git has no author identity configured.
	KindIdentityMissing WarningKind = "identity-missing"

	// KindSkipped means the step did not run because an earlier step failed.
	KindSkipped WarningKind = "skipped"
)

// Warning is a non-fatal setup problem reported to the caller.
type Warning struct {
	Step    Step
	Kind    WarningKind
	Message string
	Err     error
}

// String renders the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Step, w.Message)
}

// StepResult records the outcome of a single step.
type StepResult struct {
	Step     Step
	Status   string
	Duration time.Duration
}

// Result is the outcome of a setup run. Setup never fails; problems are
// reported as warnings.
type Result struct {
	Steps    []StepResult
	Warnings []Warning
}

// HasWarnings reports whether any step produced a warning.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Status returns the recorded status of step, or "" if it never ran.
func (r *Result) Status(step Step) string {
	for _, s := range r.Steps {
		if s.Step == step {
			return s.Status
		}
	}
	return ""
}
