package templates

import (
	"regexp"
	"strings"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

// Validation failure reasons reported for malformed project names.
const (
	ReasonEmpty              = "project name cannot be empty"
	ReasonCharset            = "project name can only contain lowercase letters, numbers, and hyphens"
	ReasonBoundaryHyphen     = "project name cannot start or end with a hyphen"
	ReasonConsecutiveHyphens = "project name cannot contain consecutive hyphens"
)

var (
	projectNameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonAlnumRegex    = regexp.MustCompile(`[^a-z0-9]+`)
)

// ProjectName is a validated project name and its derived forms.
type ProjectName struct {
	// Raw is the name exactly as given.
	Raw string

	// Kebab is the lowercase hyphenated form (e.g., "demo-app").
	Kebab string

	// Snake is the underscore form (e.g., "demo_app").
	Snake string

	// Pascal is the PascalCase form (e.g., "DemoApp").
	Pascal string
}

// String returns the kebab form.
func (p ProjectName) String() string {
	return p.Kebab
}

// ParseProjectName validates raw and derives its case forms.
func ParseProjectName(raw string) (ProjectName, error) {
	if err := ValidateProjectName(raw); err != nil {
		return ProjectName{}, err
	}
	kebab := ToKebabCase(raw)
	return ProjectName{
		Raw:    raw,
		Kebab:  kebab,
		Snake:  ToSnakeCase(kebab),
		Pascal: ToPascalCase(kebab),
	}, nil
}

// ValidateProjectName checks a raw project name.
// The returned error is a *errors.DetailError whose Message is one of the Reason constants.
func ValidateProjectName(name string) error {
	var reason string
	switch {
	case name == "":
		reason = ReasonEmpty
	case !projectNameRegex.MatchString(name):
		reason = ReasonCharset
	case strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-"):
		reason = ReasonBoundaryHyphen
	case strings.Contains(name, "--"):
		reason = ReasonConsecutiveHyphens
	default:
		return nil
	}
	return oerrors.NewValidationError(reason, name,
		"Use lowercase letters, numbers and single hyphens, e.g. my-app.")
}

// ToKebabCase lowercases s, collapses every run of non-alphanumerics into a
// single hyphen and trims boundary hyphens.
func ToKebabCase(s string) string {
	s = nonAlnumRegex.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// ToSnakeCase replaces hyphens with underscores.
func ToSnakeCase(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// ToPascalCase capitalizes each hyphen-separated segment and joins them.
// Examples: "my-app" -> "MyApp", "app-2" -> "App2"
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
