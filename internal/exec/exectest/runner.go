// Package exectest provides a scripted exec.Runner for tests.
package exectest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/raise-the-bones/cli/internal/exec"
)

// Response is the scripted outcome of a matched invocation.
type Response struct {
	Stdout string
	Stderr string

	// ExitCode > 0 produces a CategoryExit failure.
	ExitCode int

	// Category forces a failure category (spawn, timeout) when set.
	Category exec.Category
}

// OK returns a successful response with the given stdout.
func OK(stdout string) Response {
	return Response{Stdout: stdout}
}

// Fail returns a non-zero exit response with the given stderr.
func Fail(code int, stderr string) Response {
	return Response{ExitCode: code, Stderr: stderr}
}

// Missing returns a response simulating a binary that cannot be started.
func Missing() Response {
	return Response{Category: exec.CategorySpawn}
}

type rule struct {
	prefix string
	resp   Response
}

// Runner records invocations and answers them from registered rules.
// Rules match by command-line prefix in registration order; unmatched
// invocations succeed with empty output.
type Runner struct {
	mu    sync.Mutex
	rules []rule
	calls []exec.Invocation
}

// New creates an empty scripted runner.
func New() *Runner {
	return &Runner{}
}

// On registers a response for command lines starting with prefix.
func (r *Runner) On(prefix string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{prefix: prefix, resp: resp})
	return r
}

// Run implements exec.Runner.
func (r *Runner) Run(_ context.Context, inv exec.Invocation) (exec.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, inv)
	resp := Response{}
	line := inv.String()
	for _, rl := range r.rules {
		if strings.HasPrefix(line, rl.prefix) {
			resp = rl.resp
			break
		}
	}
	r.mu.Unlock()

	if inv.Stdout != nil && resp.Stdout != "" {
		_, _ = inv.Stdout.Write([]byte(resp.Stdout))
	}

	result := exec.Result{Stdout: resp.Stdout, Stderr: resp.Stderr}

	category := resp.Category
	if category == "" && resp.ExitCode != 0 {
		category = exec.CategoryExit
	}
	if category == "" {
		return result, nil
	}

	return result, &exec.CommandError{
		Category: category,
		Program:  inv.Program,
		Args:     inv.Args,
		Dir:      inv.Dir,
		ExitCode: resp.ExitCode,
		Timeout:  inv.Timeout,
		Stderr:   strings.TrimSpace(resp.Stderr),
		Stdout:   strings.TrimSpace(resp.Stdout),
		Err:      errors.New("scripted failure"),
	}
}

// Calls returns every recorded invocation.
func (r *Runner) Calls() []exec.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]exec.Invocation(nil), r.calls...)
}

// CommandLines returns the recorded invocations rendered as command lines.
func (r *Runner) CommandLines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Called reports whether any invocation started with prefix.
func (r *Runner) Called(prefix string) bool {
	for _, line := range r.CommandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
