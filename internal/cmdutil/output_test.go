package cmdutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raise-the-bones/cli/internal/deploy"
	"github.com/raise-the-bones/cli/internal/setup"
	"github.com/raise-the-bones/cli/internal/templates"
)

func TestTopLevelEntries(t *testing.T) {
	got := TopLevelEntries([]string{
		"client/src/App.tsx",
		"client/index.html",
		"package.json",
		"src/server.ts",
		".env",
	})
	assert.Equal(t, []string{".env", "client/", "package.json", "src/"}, got)
}

func TestPrintGenerateSummary(t *testing.T) {
	name, err := templates.ParseProjectName("demo-app")
	assert.NoError(t, err)

	res := &templates.GenerateResult{
		Project:   name,
		TargetDir: "/work/demo-app",
		Files:     []string{"client/src/App.tsx", "fly.toml", "package.json"},
		Warnings: []setup.Warning{{
			Step:    setup.StepCommit,
			Kind:    setup.KindIdentityMissing,
			Message: "git user identity is not configured",
			Err:     errors.New("exit 128"),
		}},
	}

	var buf bytes.Buffer
	PrintGenerateSummary(&buf, res, true)
	out := buf.String()

	assert.Contains(t, out, "/work/demo-app")
	assert.Contains(t, out, "client/")
	assert.Contains(t, out, "Deployment descriptor")
	assert.Contains(t, out, "git commit: git user identity is not configured")
	assert.Contains(t, out, "rtb deploy setup")
	assert.NotContains(t, out, "npm install", "setup already installed dependencies")
}

func TestPrintGenerateSummary_SkippedSetup(t *testing.T) {
	name, _ := templates.ParseProjectName("demo-app")

	var buf bytes.Buffer
	PrintGenerateSummary(&buf, &templates.GenerateResult{Project: name, TargetDir: "/w/demo-app"}, false)

	assert.Contains(t, buf.String(), "npm install")
	assert.NotContains(t, buf.String(), "warnings")
}

func TestPrintDeploySummary(t *testing.T) {
	var buf bytes.Buffer
	PrintDeploySummary(&buf, &deploy.Result{App: "demo-app", State: deploy.StateConfigured, Skipped: true})
	assert.Contains(t, buf.String(), "already configured")

	buf.Reset()
	PrintDeploySummary(&buf, &deploy.Result{
		App:               "demo-app",
		Database:          "demo_app",
		State:             deploy.StateProvisioned,
		DatabaseURLSource: deploy.SourcePrompt,
		Warnings:          []deploy.Warning{{Step: "create database", Message: "connection refused"}},
	})
	out := buf.String()
	assert.Contains(t, out, "ready to deploy")
	assert.Contains(t, out, "demo_app")
	assert.Contains(t, out, "create database: connection refused")
	assert.Contains(t, out, "fly deploy")
}
