package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
	"github.com/raise-the-bones/cli/internal/output"
)

// Generator creates a project directory from the template tree.
type Generator struct {
	opts     GenerateOptions
	fs       afero.Fs
	resolver *Resolver
	tasks    []FileTask
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFs sets the filesystem the generator reads and writes.
func WithFs(fs afero.Fs) GeneratorOption {
	return func(g *Generator) {
		g.fs = fs
		g.resolver.fs = fs
	}
}

// WithFileTasks replaces the substitution file list.
func WithFileTasks(tasks []FileTask) GeneratorOption {
	return func(g *Generator) {
		g.tasks = tasks
	}
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts GenerateOptions, genOpts ...GeneratorOption) *Generator {
	g := &Generator{
		opts:     opts,
		fs:       afero.NewOsFs(),
		resolver: NewResolver(),
	}
	for _, o := range genOpts {
		o(g)
	}
	return g
}

// TargetDir returns the directory a project with the given name is created in.
func (g *Generator) TargetDir(name ProjectName) (string, error) {
	parent := g.opts.ParentDir
	if parent == "" {
		parent = "."
	}
	return filepath.Abs(filepath.Join(parent, name.Kebab))
}

// Generate validates the name, copies the template and rewrites the
// placeholder-bearing files. Nothing is written when the name is invalid,
// the target already exists or the template root is missing.
func (g *Generator) Generate() (*GenerateResult, error) {
	name, err := ParseProjectName(g.opts.Name)
	if err != nil {
		return nil, err
	}

	targetDir, err := g.TargetDir(name)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}
	if _, err := g.fs.Stat(targetDir); err == nil {
		return nil, oerrors.NewTargetExistsError(targetDir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking target directory: %w", err)
	}

	root, err := g.resolver.Resolve(g.opts.TemplateDir)
	if err != nil {
		return nil, err
	}
	if empty, err := afero.IsEmpty(g.fs, root); err != nil || empty {
		return nil, oerrors.NewTemplateMissingError(root)
	}

	output.Debug("generating project",
		"name", name.Kebab,
		"template", root,
		"target", targetDir)

	files, err := NewCopier(g.fs).Copy(root, targetDir)
	if err != nil {
		return nil, err
	}

	sub := NewSubstituter(g.fs, NewVariables(name), g.tasks)
	rewritten, err := sub.Apply(targetDir)
	if err != nil {
		return nil, fmt.Errorf("substituting variables: %w", err)
	}
	for _, f := range rewritten {
		output.Debug("rewrote file", "path", f)
	}

	created, err := sub.Finalize(targetDir)
	if err != nil {
		return nil, fmt.Errorf("finalizing project files: %w", err)
	}

	return &GenerateResult{
		Project:     name,
		TargetDir:   targetDir,
		TemplateDir: root,
		Files:       mergeFiles(files, created),
		Rewritten:   rewritten,
	}, nil
}

// mergeFiles folds the files created by Finalize into the copied list.
func mergeFiles(files, created []string) []string {
	set := make(map[string]bool, len(files)+len(created))
	for _, f := range files {
		set[f] = true
	}
	for _, f := range created {
		if f == gitignoreTarget {
			delete(set, gitignoreSource)
		}
		set[f] = true
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
