package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
	"github.com/raise-the-bones/cli/internal/exec"
	"github.com/raise-the-bones/cli/internal/output"
)

// Platform is the remote control plane the bootstrapper drives.
type Platform interface {
	Version(ctx context.Context) (string, error)
	Whoami(ctx context.Context) (string, error)
	AppExists(ctx context.Context, name string) (bool, error)
	CreateApp(ctx context.Context, name string) error
	HasSecret(ctx context.Context, app, name string) (bool, error)
	SetSecret(ctx context.Context, app, name, value string) error
}

// State is the terminal state of a bootstrap run.
type State string

const (
	// StateConfigured means the gate found the app and secret already present.
	StateConfigured State = "configured"

	// StateProvisioned means every provisioning step completed.
	StateProvisioned State = "provisioned"
)

// URLSource says where the connection string came from.
type URLSource string

const (
	SourceNone           URLSource = ""
	SourceEnvFile        URLSource = "env-file"
	SourceExistingSecret URLSource = "existing-secret"
	SourcePrompt         URLSource = "prompt"
)

// Options configures a bootstrap run.
type Options struct {
	// Dir is the generated project directory.
	Dir string

	// Force bypasses the idempotency gate.
	Force bool
}

// Warning is a non-fatal bootstrap problem.
type Warning struct {
	Step    string
	Message string
	Err     error
}

// Result is the outcome of a successful bootstrap run.
type Result struct {
	App               string
	Database          string
	State             State
	Skipped           bool
	DatabaseURLSource URLSource
	Warnings          []Warning
}

// Bootstrapper provisions the remote application and database secret.
type Bootstrapper struct {
	platform Platform
	creator  DatabaseCreator
	prompter Prompter
	fs       afero.Fs
	out      io.Writer
	cli      string
}

// BootstrapperOption configures a Bootstrapper.
type BootstrapperOption func(*Bootstrapper)

// WithFilesystem sets the filesystem the project files are read from.
func WithFilesystem(fs afero.Fs) BootstrapperOption {
	return func(b *Bootstrapper) {
		b.fs = fs
	}
}

// WithPrompter sets how the instance URL is asked for.
func WithPrompter(p Prompter) BootstrapperOption {
	return func(b *Bootstrapper) {
		b.prompter = p
	}
}

// WithOutput sets where step lines are printed.
func WithOutput(w io.Writer) BootstrapperOption {
	return func(b *Bootstrapper) {
		b.out = w
	}
}

// WithCLIName sets the CLI name used in operator guidance.
func WithCLIName(cli string) BootstrapperOption {
	return func(b *Bootstrapper) {
		if cli != "" {
			b.cli = cli
		}
	}
}

// NewBootstrapper creates a bootstrapper.
func NewBootstrapper(platform Platform, creator DatabaseCreator, opts ...BootstrapperOption) *Bootstrapper {
	b := &Bootstrapper{
		platform: platform,
		creator:  creator,
		prompter: TerminalPrompter{},
		fs:       afero.NewOsFs(),
		out:      os.Stdout,
		cli:      DefaultCLI,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// observed holds the remote facts seen during one run.
type observed struct {
	appExists bool
	secretSet bool
	queried   bool
}

// Run provisions the project in opts.Dir. It returns an error only for
// fatal failures: an unreadable descriptor, unmet prerequisites, a failed
// prompt, app registration or secret assignment.
func (b *Bootstrapper) Run(ctx context.Context, opts Options) (*Result, error) {
	desc, err := ReadDescriptor(b.fs, opts.Dir)
	if err != nil {
		return nil, err
	}

	res := &Result{App: desc.App, Database: DatabaseName(desc.App)}
	output.Debug("bootstrapping deployment", "app", desc.App, "dir", opts.Dir, "force", opts.Force)

	var seen observed
	if !opts.Force {
		seen = b.gate(ctx, desc.App)
		if seen.appExists && seen.secretSet {
			res.State = StateConfigured
			res.Skipped = true
			b.line("deployment already configured", output.StatusSkipped)
			return res, nil
		}
	}

	if err := b.checkPrerequisites(ctx); err != nil {
		return nil, err
	}

	conn, source, err := b.resolveConnection(ctx, res, opts.Dir, desc.App, seen)
	if err != nil {
		return nil, err
	}
	res.DatabaseURLSource = source

	if source != SourceExistingSecret {
		db, w := b.createDatabase(ctx, conn)
		if db != "" {
			res.Database = db
		}
		if w != nil {
			res.Warnings = append(res.Warnings, *w)
		}
	}

	if err := b.registerApp(ctx, desc.App); err != nil {
		return nil, err
	}

	if source != SourceExistingSecret {
		if err := b.step(ctx, "set "+DatabaseURLKey+" secret", func() error {
			return b.platform.SetSecret(ctx, desc.App, DatabaseURLKey, conn)
		}); err != nil {
			return nil, &oerrors.DetailError{
				Type:    "deployment failed",
				Message: fmt.Sprintf("could not set %s on %s", DatabaseURLKey, desc.App),
				Hint:    fmt.Sprintf("Set it manually: %s secrets set %s=<url> -a %s", b.cli, DatabaseURLKey, desc.App),
				Cause:   err,
			}
		}
	}

	res.State = StateProvisioned
	return res, nil
}

// gate queries the remote state read-only. Query failures count as "not
// configured"; the prerequisite check reports the real cause.
func (b *Bootstrapper) gate(ctx context.Context, app string) observed {
	seen := observed{}

	exists, err := b.platform.AppExists(ctx, app)
	if err != nil {
		output.Debug("gate: app query failed", "app", app, "err", err)
		return seen
	}
	seen.appExists = exists
	if !exists {
		// A missing app has no secrets.
		seen.queried = true
		return seen
	}

	set, err := b.platform.HasSecret(ctx, app, DatabaseURLKey)
	if err != nil {
		output.Debug("gate: secret query failed", "app", app, "err", err)
		return seen
	}
	seen.secretSet = set
	seen.queried = true
	return seen
}

func (b *Bootstrapper) checkPrerequisites(ctx context.Context) error {
	if err := b.step(ctx, b.cli+" installed", func() error {
		_, err := b.platform.Version(ctx)
		return err
	}); err != nil {
		hint := "Install it from https://fly.io/docs/flyctl/install/ and make sure it is on PATH."
		if !exec.IsCategory(err, exec.CategorySpawn) {
			hint = fmt.Sprintf("Check that `%s version` runs correctly.", b.cli)
		}
		return oerrors.NewPrerequisiteError(b.cli+" CLI is not available", hint, err)
	}

	if err := b.step(ctx, b.cli+" authenticated", func() error {
		_, err := b.platform.Whoami(ctx)
		return err
	}); err != nil {
		return oerrors.NewPrerequisiteError("not logged in to fly.io",
			fmt.Sprintf("Run `%s auth login` and try again.", b.cli), err)
	}
	return nil
}

// resolveConnection picks the connection string: the production env file,
// then an existing secret (left untouched), then the operator prompt.
// An env file that cannot be read counts as absent.
func (b *Bootstrapper) resolveConnection(ctx context.Context, res *Result, dir, app string, seen observed) (string, URLSource, error) {
	if conn, ok, err := LookupDatabaseURL(b.fs, dir); err != nil {
		title := "read " + ProductionEnvFile
		b.line(title, output.StatusWarning)
		// Parse errors quote the offending line, which may hold the URL.
		output.Warn("ignoring unreadable production env file", "file", ProductionEnvFile)
		res.Warnings = append(res.Warnings, Warning{
			Step:    title,
			Message: fmt.Sprintf("%s could not be read and was ignored", ProductionEnvFile),
			Err:     err,
		})
	} else if ok {
		b.line("database URL from "+ProductionEnvFile, output.StatusDone)
		return conn, SourceEnvFile, nil
	}

	secretSet := seen.secretSet
	if !seen.queried {
		set, err := b.platform.HasSecret(ctx, app, DatabaseURLKey)
		if err != nil {
			output.Debug("secret query failed", "app", app, "err", err)
		}
		secretSet = err == nil && set
	}
	if secretSet {
		b.line(DatabaseURLKey+" already set", output.StatusSkipped)
		return "", SourceExistingSecret, nil
	}

	base, err := b.prompter.PromptBaseURL()
	if err != nil {
		return "", SourceNone, fmt.Errorf("reading instance URL: %w", err)
	}
	conn, err := BuildDatabaseURL(base, DatabaseName(app))
	if err != nil {
		return "", SourceNone, err
	}
	return conn, SourcePrompt, nil
}

// createDatabase is best-effort; a failure becomes a warning. It returns
// the database name the connection string points at.
func (b *Bootstrapper) createDatabase(ctx context.Context, conn string) (string, *Warning) {
	const step = "create database"

	admin, db, err := AdminURL(conn)
	if err != nil {
		b.line(step, output.StatusWarning)
		return "", &Warning{Step: step, Message: err.Error(), Err: err}
	}

	err = output.RunWithSpinner(ctx, func() error {
		return b.creator.CreateDatabase(ctx, admin, db)
	}, output.WithTitle(step))

	switch {
	case err == nil:
		b.line(step, output.StatusDone)
		return db, nil
	case errors.Is(err, ErrDatabaseExists):
		b.line(step, output.StatusSkipped)
		output.Info("database already exists", "database", db)
		return db, nil
	default:
		b.line(step, output.StatusWarning)
		output.Warn("could not create database; it may already exist", "database", db, "err", err)
		return db, &Warning{
			Step:    step,
			Message: fmt.Sprintf("could not create database %s (it may already exist): %v", db, err),
			Err:     err,
		}
	}
}

// registerApp creates the app, treating an app already in the operator's
// own listing as success.
func (b *Bootstrapper) registerApp(ctx context.Context, app string) error {
	title := "create app " + app

	createErr := output.RunWithSpinner(ctx, func() error {
		return b.platform.CreateApp(ctx, app)
	}, output.WithTitle(title))
	if createErr == nil {
		b.line(title, output.StatusDone)
		return nil
	}

	exists, err := b.platform.AppExists(ctx, app)
	if err == nil && exists {
		b.line(title, output.StatusSkipped)
		output.Info("app already exists in your account", "app", app)
		return nil
	}

	b.line(title, output.StatusFailed)
	return &oerrors.DetailError{
		Type:     "deployment failed",
		Message:  fmt.Sprintf("could not create app %s", app),
		Location: DescriptorFile,
		Hint:     fmt.Sprintf("The name may be taken by another account. Change app in %s and retry.", DescriptorFile),
		Cause:    createErr,
	}
}

func (b *Bootstrapper) step(ctx context.Context, title string, action func() error) error {
	err := output.RunWithSpinner(ctx, action, output.WithTitle(title))
	if err != nil {
		b.line(title, output.StatusFailed)
		return err
	}
	b.line(title, output.StatusDone)
	return nil
}

func (b *Bootstrapper) line(title, status string) {
	fmt.Fprintln(b.out, output.FormatStepLine(title, status))
}
