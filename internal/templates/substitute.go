package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Rule rewrites the content of one file.
type Rule func(content string, vars Variables) string

// FileTask pairs a project-relative path with its rewrite rule.
type FileTask struct {
	Path string
	Rule Rule
}

// DefaultFileTasks are the files rewritten after the template is copied.
// Every other file is left verbatim.
var DefaultFileTasks = []FileTask{
	{Path: "package.json", Rule: RewriteContent},
	{Path: "fly.toml", Rule: RewriteContent},
	{Path: "docker-compose.yml", Rule: RewriteContent},
	{Path: "README.md", Rule: RewriteContent},
	{Path: ".env", Rule: RewriteContent},
	{Path: ".env.example", Rule: RewriteContent},
	{Path: "scripts/setup-db.sh", Rule: RewriteContent},
	{Path: "client/src/App.tsx", Rule: RewriteContent},
}

// Post-substitution file names.
const (
	envExampleFile  = ".env.example"
	envFile         = ".env"
	gitignoreSource = "gitignore"
	gitignoreTarget = ".gitignore"
)

// RewriteContent replaces every placeholder token with its value, then
// replaces literal occurrences of the default project name (hyphen and
// underscore forms) with the project's kebab and snake forms. Text that
// already reads as the derived form is left alone, so rewriting the output
// again changes nothing even when the project name embeds the default one.
func RewriteContent(content string, vars Variables) string {
	list := vars.List()
	pairs := make([]string, 0, 2*len(list))
	for _, v := range list {
		pairs = append(pairs, v.Token(), v.Value)
	}
	content = strings.NewReplacer(pairs...).Replace(content)

	kebab, _ := vars.Get(KeyProjectName)
	snake, _ := vars.Get(KeyProjectNameSnake)
	content = replaceLiteral(content, DefaultProjectName, kebab)
	return replaceLiteral(content, DefaultProjectNameSnake, snake)
}

// replaceLiteral replaces each occurrence of name with derived, copying
// occurrences of derived through unchanged.
func replaceLiteral(content, name, derived string) string {
	if derived == "" || !strings.Contains(content, name) {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); {
		switch {
		case strings.HasPrefix(content[i:], derived):
			b.WriteString(derived)
			i += len(derived)
		case strings.HasPrefix(content[i:], name):
			b.WriteString(derived)
			i += len(name)
		default:
			b.WriteByte(content[i])
			i++
		}
	}
	return b.String()
}

// Substituter applies file tasks inside a project directory.
type Substituter struct {
	fs    afero.Fs
	vars  Variables
	tasks []FileTask
}

// NewSubstituter creates a substituter. Nil tasks means DefaultFileTasks.
func NewSubstituter(fs afero.Fs, vars Variables, tasks []FileTask) *Substituter {
	if tasks == nil {
		tasks = DefaultFileTasks
	}
	return &Substituter{fs: fs, vars: vars, tasks: tasks}
}

// Apply rewrites every task file that exists under root and returns the
// paths whose content changed. Missing files are skipped.
func (s *Substituter) Apply(root string) ([]string, error) {
	var changed []string
	for _, task := range s.tasks {
		path := filepath.Join(root, filepath.FromSlash(task.Path))

		info, err := s.fs.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return changed, fmt.Errorf("checking %s: %w", task.Path, err)
		}
		if info.IsDir() {
			continue
		}

		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return changed, fmt.Errorf("reading %s: %w", task.Path, err)
		}

		content := string(data)
		rewritten := task.Rule(content, s.vars)
		if rewritten == content {
			continue
		}

		if err := afero.WriteFile(s.fs, path, []byte(rewritten), info.Mode().Perm()); err != nil {
			return changed, fmt.Errorf("writing %s: %w", task.Path, err)
		}
		changed = append(changed, task.Path)
	}
	return changed, nil
}

// Finalize duplicates .env.example into .env when .env is absent and renames
// the shipped gitignore to .gitignore. It returns the files it created.
func (s *Substituter) Finalize(root string) ([]string, error) {
	var created []string

	example := filepath.Join(root, envExampleFile)
	active := filepath.Join(root, envFile)
	if ok, _ := afero.Exists(s.fs, example); ok {
		if exists, _ := afero.Exists(s.fs, active); !exists {
			data, err := afero.ReadFile(s.fs, example)
			if err != nil {
				return created, fmt.Errorf("reading %s: %w", envExampleFile, err)
			}
			if err := afero.WriteFile(s.fs, active, data, 0o644); err != nil {
				return created, fmt.Errorf("writing %s: %w", envFile, err)
			}
			created = append(created, envFile)
		}
	}

	source := filepath.Join(root, gitignoreSource)
	if ok, _ := afero.Exists(s.fs, source); ok {
		if err := s.fs.Rename(source, filepath.Join(root, gitignoreTarget)); err != nil {
			return created, fmt.Errorf("renaming %s: %w", gitignoreSource, err)
		}
		created = append(created, gitignoreTarget)
	}

	return created, nil
}
