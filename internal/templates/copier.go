package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

// skipDirs are never copied out of the template root.
var skipDirs = map[string]bool{
	"node_modules": true,
}

// Copier copies a template tree into a new target directory.
type Copier struct {
	fs afero.Fs
}

// NewCopier creates a copier over fs.
func NewCopier(fs afero.Fs) *Copier {
	return &Copier{fs: fs}
}

// Copy copies every file and directory under src into dst, creating dst.
// It fails with ErrTargetExists when dst is already present, and returns the
// copied files as sorted slash-separated paths relative to dst.
// A failed copy leaves whatever was written in place.
func (c *Copier) Copy(src, dst string) ([]string, error) {
	if _, err := c.fs.Stat(dst); err == nil {
		return nil, oerrors.NewTargetExistsError(dst)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking target directory %s: %w", dst, err)
	}

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("creating parent of %s: %w", dst, err)
	}
	if err := c.fs.Mkdir(dst, 0o755); err != nil {
		return nil, fmt.Errorf("creating target directory %s: %w", dst, err)
	}

	// Walk does not descend into a symlinked root.
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		src = resolved
	}

	var files []string
	err := afero.Walk(c.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if info.IsDir() && skipDirs[info.Name()] {
			return filepath.SkipDir
		}

		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return c.fs.MkdirAll(target, info.Mode().Perm()|0o700)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if err := c.copyFile(path, target, info.Mode().Perm()); err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copying template %s to %s: %w", src, dst, err)
	}

	sort.Strings(files)
	return files, nil
}

func (c *Copier) copyFile(src, dst string, perm os.FileMode) error {
	data, err := afero.ReadFile(c.fs, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := afero.WriteFile(c.fs, dst, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	// WriteFile is subject to the umask; keep executable bits of scripts.
	if err := c.fs.Chmod(dst, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}
