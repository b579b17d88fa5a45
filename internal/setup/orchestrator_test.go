package setup

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raise-the-bones/cli/internal/exec"
	"github.com/raise-the-bones/cli/internal/exec/exectest"
)

const projectDir = "/work/demo-app"

func newTestOrchestrator(t *testing.T, runner exec.Runner, withManifest bool) (*Orchestrator, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(projectDir, 0o755))
	if withManifest {
		require.NoError(t, afero.WriteFile(fs, projectDir+"/package.json", []byte("{}"), 0o644))
	}
	var out bytes.Buffer
	return NewOrchestrator(runner, WithFs(fs), WithOutput(&out)), &out
}

func TestOrchestrator_AllStepsSucceed(t *testing.T) {
	runner := exectest.New()
	o, out := newTestOrchestrator(t, runner, true)

	res := o.Run(context.Background(), projectDir, "demo-app")

	assert.False(t, res.HasWarnings())
	assert.Equal(t, []string{
		"git init",
		"npm install",
		"npm run db:generate",
		"git add -A",
		"git var GIT_AUTHOR_IDENT",
		"git commit -m Initial commit for demo-app",
	}, runner.CommandLines())

	for _, inv := range runner.Calls() {
		assert.Equal(t, projectDir, inv.Dir, "every command runs in the project directory")
	}
	assert.Equal(t, "done", res.Status(StepCommit))
	assert.Contains(t, out.String(), "npm install")
}

func TestOrchestrator_InitializesManifestWhenMissing(t *testing.T) {
	runner := exectest.New()
	o, _ := newTestOrchestrator(t, runner, false)

	o.Run(context.Background(), projectDir, "demo-app")

	lines := runner.CommandLines()
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "npm init -y", lines[1])
}

func TestOrchestrator_IdentityMissing(t *testing.T) {
	runner := exectest.New().
		On("git var", exectest.Fail(128, "fatal: unable to auto-detect email address"))
	o, _ := newTestOrchestrator(t, runner, true)

	res := o.Run(context.Background(), projectDir, "demo-app")

	require.Len(t, res.Warnings, 1)
	w := res.Warnings[0]
	assert.Equal(t, StepCommit, w.Step)
	assert.Equal(t, KindIdentityMissing, w.Kind)
	assert.Contains(t, w.Message, "git config --global user.email")
	assert.False(t, runner.Called("git commit"))
	assert.Equal(t, "skipped", res.Status(StepCommit))
}

func TestOrchestrator_ToolMissing(t *testing.T) {
	runner := exectest.New().On("npm", exectest.Missing())
	o, _ := newTestOrchestrator(t, runner, true)

	res := o.Run(context.Background(), projectDir, "demo-app")

	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, StepInstall, res.Warnings[0].Step)
	assert.Equal(t, KindToolMissing, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Message, "npm is not installed")
	assert.Equal(t, []string{"git init", "npm install"}, runner.CommandLines())
}

func TestOrchestrator_InstallFailureEndsSequence(t *testing.T) {
	runner := exectest.New().
		On("npm install", exectest.Response{ExitCode: 1, Stdout: "npm ERR! code ERESOLVE"})
	o, _ := newTestOrchestrator(t, runner, true)

	res := o.Run(context.Background(), projectDir, "demo-app")

	assert.Equal(t, []string{"git init", "npm install"}, runner.CommandLines())
	assert.Equal(t, "warning", res.Status(StepInstall))
	for _, step := range []Step{StepGenerate, StepStage, StepCommit} {
		assert.Equal(t, "skipped", res.Status(step), step)
	}

	require.Len(t, res.Warnings, 4)
	assert.Equal(t, KindCommandFailed, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Message, "ERESOLVE", "stdout-only diagnostics are kept")
	for _, w := range res.Warnings[1:] {
		assert.Equal(t, KindSkipped, w.Kind)
		assert.Contains(t, w.Message, "dependency installation failed")
	}
}

func TestOrchestrator_Timeout(t *testing.T) {
	runner := exectest.New().
		On("npm run db:generate", exectest.Response{Category: exec.CategoryTimeout})
	o, _ := newTestOrchestrator(t, runner, true)

	res := o.Run(context.Background(), projectDir, "demo-app")

	require.Len(t, res.Warnings, 3)
	assert.Equal(t, StepGenerate, res.Warnings[0].Step)
	assert.Equal(t, KindTimeout, res.Warnings[0].Kind)
	assert.Equal(t, "warning", res.Status(StepGenerate))
	assert.Equal(t, "skipped", res.Status(StepStage))
	assert.Equal(t, "skipped", res.Status(StepCommit))
	assert.False(t, runner.Called("git add"))
	assert.False(t, runner.Called("git commit"))
}

func TestOrchestrator_GitInitFailed(t *testing.T) {
	runner := exectest.New().On("git init", exectest.Fail(1, "permission denied"))
	o, _ := newTestOrchestrator(t, runner, true)

	res := o.Run(context.Background(), projectDir, "demo-app")

	assert.False(t, runner.Called("git add"))
	assert.False(t, runner.Called("git commit"))
	assert.True(t, runner.Called("npm install"))
	assert.Equal(t, "skipped", res.Status(StepStage))
	assert.Equal(t, "skipped", res.Status(StepCommit))

	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, KindCommandFailed, res.Warnings[0].Kind)
	assert.Contains(t, res.Warnings[0].Message, "permission denied")
}

func TestOrchestrator_Canceled(t *testing.T) {
	runner := exectest.New()
	o, _ := newTestOrchestrator(t, runner, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := o.Run(ctx, projectDir, "demo-app")

	assert.Empty(t, runner.Calls())
	for _, w := range res.Warnings {
		assert.Equal(t, KindSkipped, w.Kind)
	}
}
