package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

// templateDirName is the template root's directory name inside an installation.
const templateDirName = "template"

// Resolver locates the template root.
type Resolver struct {
	fs afero.Fs

	// executable returns the path of the running binary.
	executable func() (string, error)
}

// NewResolver creates a resolver over the OS filesystem.
func NewResolver() *Resolver {
	return &Resolver{fs: afero.NewOsFs(), executable: os.Executable}
}

// Candidates lists the template roots tried for an installation, in order:
// <exe dir>/template, then <exe dir>/../share/rtb/template.
func (r *Resolver) Candidates() ([]string, error) {
	exe, err := r.executable()
	if err != nil {
		return nil, fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	return []string{
		filepath.Join(dir, templateDirName),
		filepath.Join(dir, "..", "share", "rtb", templateDirName),
	}, nil
}

// Resolve returns the template root. A non-empty override is used as is;
// otherwise the root is resolved relative to the tool's installation.
// A root that does not exist yields an ErrTemplateMissing error.
func (r *Resolver) Resolve(override string) (string, error) {
	if override != "" {
		if ok, _ := afero.DirExists(r.fs, override); !ok {
			return "", oerrors.NewTemplateMissingError(override)
		}
		return filepath.Clean(override), nil
	}

	candidates, err := r.Candidates()
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if ok, _ := afero.DirExists(r.fs, c); ok {
			return filepath.Clean(c), nil
		}
	}
	return "", oerrors.NewTemplateMissingError(candidates[0])
}
