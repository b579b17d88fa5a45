// Package templates copies the project template tree and rewrites the
// placeholder-bearing files for a new project.
package templates

import "github.com/raise-the-bones/cli/internal/setup"

// DefaultProjectName is the tool's own project identifier, embedded
// literally in some template files.
const DefaultProjectName = "raise-the-bones"

// DefaultProjectNameSnake is the underscore form of DefaultProjectName.
const DefaultProjectNameSnake = "raise_the_bones"

// Variable keys used in placeholder tokens such as {{PROJECT_NAME}}.
const (
	KeyProjectName       = "PROJECT_NAME"
	KeyProjectNameSnake  = "PROJECT_NAME_SNAKE"
	KeyProjectNamePascal = "PROJECT_NAME_PASCAL"
)

// Variable is one placeholder key and its derived value.
type Variable struct {
	Key   string
	Value string
}

// Token returns the placeholder marker for the variable.
func (v Variable) Token() string {
	return Token(v.Key)
}

// Token returns the placeholder marker for key.
func Token(key string) string {
	return "{{" + key + "}}"
}

// Variables is the immutable set of template variables for one generation.
type Variables struct {
	vars []Variable
}

// NewVariables derives the variable set from a project name.
func NewVariables(name ProjectName) Variables {
	return Variables{vars: []Variable{
		{Key: KeyProjectName, Value: name.Kebab},
		{Key: KeyProjectNameSnake, Value: name.Snake},
		{Key: KeyProjectNamePascal, Value: name.Pascal},
	}}
}

// List returns a copy of the variables in substitution order.
func (v Variables) List() []Variable {
	return append([]Variable(nil), v.vars...)
}

// Get returns the value for key.
func (v Variables) Get(key string) (string, bool) {
	for _, vr := range v.vars {
		if vr.Key == key {
			return vr.Value, true
		}
	}
	return "", false
}

// GenerateOptions configures project generation.
type GenerateOptions struct {
	// Name is the raw project name.
	Name string

	// ParentDir is the directory the project directory is created in.
	// Empty means the current directory.
	ParentDir string

	// TemplateDir overrides the template root. Empty means resolve next to the executable.
	TemplateDir string
}

// GenerateResult contains the result of project generation.
type GenerateResult struct {
	// Project is the validated project name.
	Project ProjectName

	// TargetDir is the directory the project was created in.
	TargetDir string

	// TemplateDir is the template root that was copied.
	TemplateDir string

	// Files lists every copied file, slash-separated and relative to TargetDir.
	Files []string

	// Rewritten lists the files the substitution pass changed.
	Rewritten []string

	// Warnings collects the non-fatal problems of the setup phase.
	Warnings []setup.Warning
}
