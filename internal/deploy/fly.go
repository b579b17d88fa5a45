package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
	"github.com/raise-the-bones/cli/internal/exec"
	"github.com/raise-the-bones/cli/internal/output"
)

// DefaultCLI is the deployment CLI binary name.
const DefaultCLI = "fly"

// App is one entry of the operator's application listing.
type App struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Secret is one entry of an application's secret listing. Values are never listed.
type Secret struct {
	Name   string `json:"name"`
	Digest string `json:"digest"`
}

// cliEnv is overlaid on every CLI call.
var cliEnv = map[string]string{"FLY_NO_UPDATE_CHECK": "1"}

// Fly drives the fly CLI through a command runner.
type Fly struct {
	runner  exec.Runner
	cli     string
	dir     string
	timeout time.Duration
}

// FlyOption configures a Fly client.
type FlyOption func(*Fly)

// WithCLI sets the CLI binary. Empty keeps the default.
func WithCLI(cli string) FlyOption {
	return func(f *Fly) {
		if cli != "" {
			f.cli = cli
		}
	}
}

// WithDir sets the working directory for every call.
func WithDir(dir string) FlyOption {
	return func(f *Fly) {
		f.dir = dir
	}
}

// WithCallTimeout bounds every CLI call. Zero means the runner default.
func WithCallTimeout(d time.Duration) FlyOption {
	return func(f *Fly) {
		f.timeout = d
	}
}

// NewFly creates a fly client.
func NewFly(runner exec.Runner, opts ...FlyOption) *Fly {
	f := &Fly{runner: runner, cli: DefaultCLI}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fly) run(ctx context.Context, args ...string) (exec.Result, error) {
	return f.runMasked(ctx, "", args...)
}

// runMasked runs the CLI, keeping secret out of logs and errors.
func (f *Fly) runMasked(ctx context.Context, secret string, args ...string) (exec.Result, error) {
	inv := exec.Invocation{
		Program: f.cli,
		Args:    args,
		Dir:     f.dir,
		Timeout: f.timeout,
		Env:     cliEnv,
	}
	line := inv.String()
	if secret != "" {
		line = strings.ReplaceAll(line, secret, redacted)
	}
	output.Debug("running deploy command", "command", line)

	res, err := f.runner.Run(ctx, inv)
	return res, redactCommandError(err, secret)
}

// Version returns the CLI version line.
func (f *Fly) Version(ctx context.Context) (string, error) {
	res, err := f.run(ctx, "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Whoami returns the authenticated account.
func (f *Fly) Whoami(ctx context.Context) (string, error) {
	res, err := f.run(ctx, "auth", "whoami")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// ListApps returns the operator's applications.
func (f *Fly) ListApps(ctx context.Context) ([]App, error) {
	res, err := f.run(ctx, "apps", "list", "--json")
	if err != nil {
		return nil, err
	}
	var apps []App
	if err := decodeListing(res.Stdout, &apps); err != nil {
		return nil, fmt.Errorf("decoding app listing: %w", err)
	}
	return apps, nil
}

// AppExists reports whether name appears in the operator's application listing.
func (f *Fly) AppExists(ctx context.Context, name string) (bool, error) {
	apps, err := f.ListApps(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range apps {
		if a.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateApp registers a new application.
func (f *Fly) CreateApp(ctx context.Context, name string) error {
	_, err := f.run(ctx, "apps", "create", name)
	return err
}

// ListSecrets returns the secret names set on app.
func (f *Fly) ListSecrets(ctx context.Context, app string) ([]Secret, error) {
	res, err := f.run(ctx, "secrets", "list", "-a", app, "--json")
	if err != nil {
		return nil, err
	}
	var secrets []Secret
	if err := decodeListing(res.Stdout, &secrets); err != nil {
		return nil, fmt.Errorf("decoding secret listing: %w", err)
	}
	return secrets, nil
}

// HasSecret reports whether app has a secret called name.
func (f *Fly) HasSecret(ctx context.Context, app, name string) (bool, error) {
	secrets, err := f.ListSecrets(ctx, app)
	if err != nil {
		return false, err
	}
	for _, s := range secrets {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// SetSecret sets name=value on app. The value never appears in logs or errors.
func (f *Fly) SetSecret(ctx context.Context, app, name, value string) error {
	_, err := f.runMasked(ctx, value, "secrets", "set", name+"="+value, "-a", app)
	return err
}

// decodeListing decodes a JSON array listing. Anything other than an
// array or null is ErrUnrecognizedFormat, including empty output.
func decodeListing(stdout string, v any) error {
	s := strings.TrimSpace(stdout)
	if s == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("%w: %v", oerrors.ErrUnrecognizedFormat, err)
	}
	return nil
}
