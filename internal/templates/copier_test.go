package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

func writeTree(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for p, c := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(root, p), []byte(c), 0o644))
	}
}

func TestCopier_Copy(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTree(t, fs, "/tpl", map[string]string{
		"package.json":                   "{}",
		"client/src/App.tsx":             "app",
		"node_modules/left-pad/index.js": "skip me",
		"scripts/setup-db.sh":            "#!/bin/sh\n",
	})
	require.NoError(t, fs.Chmod("/tpl/scripts/setup-db.sh", 0o755))
	require.NoError(t, fs.MkdirAll("/tpl/empty", 0o755))

	files, err := NewCopier(fs).Copy("/tpl", "/out/demo-app")
	require.NoError(t, err)

	assert.Equal(t, []string{"client/src/App.tsx", "package.json", "scripts/setup-db.sh"}, files)

	data, err := afero.ReadFile(fs, "/out/demo-app/client/src/App.tsx")
	require.NoError(t, err)
	assert.Equal(t, "app", string(data))

	exists, _ := afero.Exists(fs, "/out/demo-app/node_modules")
	assert.False(t, exists, "node_modules is not copied")

	isDir, _ := afero.DirExists(fs, "/out/demo-app/empty")
	assert.True(t, isDir, "empty directories are copied")

	info, err := fs.Stat("/out/demo-app/scripts/setup-db.sh")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopier_TargetExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTree(t, fs, "/tpl", map[string]string{"a.txt": "a"})
	writeTree(t, fs, "/out/demo-app", map[string]string{"keep.txt": "user data"})

	_, err := NewCopier(fs).Copy("/tpl", "/out/demo-app")

	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrTargetExists))

	exists, _ := afero.Exists(fs, "/out/demo-app/a.txt")
	assert.False(t, exists, "nothing is copied over an existing target")
	data, _ := afero.ReadFile(fs, "/out/demo-app/keep.txt")
	assert.Equal(t, "user data", string(data))
}

func TestCopier_MissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := NewCopier(fs).Copy("/nope", "/out/demo-app")
	assert.Error(t, err)
}

func TestCopier_SymlinkedSource(t *testing.T) {
	base := t.TempDir()
	versioned := filepath.Join(base, "template-v1")
	require.NoError(t, os.MkdirAll(filepath.Join(versioned, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(versioned, "package.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(versioned, "src", "a.ts"), []byte("export {}\n"), 0o644))

	link := filepath.Join(base, "template")
	if err := os.Symlink(versioned, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := NewCopier(afero.NewOsFs()).Copy(link, filepath.Join(base, "out", "demo-app"))
	require.NoError(t, err)
	assert.Equal(t, []string{"package.json", "src/a.ts"}, files)

	data, err := os.ReadFile(filepath.Join(base, "out", "demo-app", "src", "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export {}\n", string(data))
}
