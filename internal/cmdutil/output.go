package cmdutil

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/raise-the-bones/cli/internal/deploy"
	"github.com/raise-the-bones/cli/internal/output"
	"github.com/raise-the-bones/cli/internal/setup"
	"github.com/raise-the-bones/cli/internal/templates"
)

// topLevelDescriptions labels well-known entries in the generated tree.
var topLevelDescriptions = map[string]string{
	"package.json":       "Project manifest",
	"fly.toml":           "Deployment descriptor",
	"docker-compose.yml": "Local database",
	"README.md":          "Project readme",
	".env":               "Local environment",
	".env.example":       "Environment template",
	".gitignore":         "Git ignore rules",
	"client/":            "Front-end",
	"src/":               "Server",
	"prisma/":            "Database schema",
	"scripts/":           "Helper scripts",
}

// TopLevelEntries reduces a file list to its first path segment, with
// directories suffixed by "/".
func TopLevelEntries(files []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range files {
		entry := f
		if i := strings.Index(f, "/"); i >= 0 {
			entry = f[:i+1]
		}
		if !seen[entry] {
			seen[entry] = true
			out = append(out, entry)
		}
	}
	sort.Strings(out)
	return out
}

// PrintGenerateSummary writes the created tree, every warning and the next
// steps. installed reports whether dependencies and generated code are in place.
func PrintGenerateSummary(w io.Writer, res *templates.GenerateResult, installed bool) {
	name := res.Project.Kebab

	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created project %s in %s",
		output.StyleNoun.Render(name), res.TargetDir)))
	fmt.Fprintln(w)

	entries := make(map[string]string)
	for _, e := range TopLevelEntries(res.Files) {
		entries[e] = topLevelDescriptions[e]
	}
	fmt.Fprint(w, output.RenderFileTree(name, entries))

	PrintSetupWarnings(w, res.Warnings)

	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleBold.Render("Next steps:"))
	fmt.Fprintf(w, "  cd %s\n", res.TargetDir)
	if !installed {
		fmt.Fprintln(w, "  npm install")
		fmt.Fprintln(w, "  npm run db:generate")
	}
	fmt.Fprintln(w, "  npm run dev")
	fmt.Fprintln(w, "  rtb deploy setup")
}

// PrintSetupWarnings writes one line per setup warning.
func PrintSetupWarnings(w io.Writer, warnings []setup.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleBold.Render("Completed with warnings:"))
	for _, warn := range warnings {
		fmt.Fprintln(w, "  "+output.FormatWarningMark(warn.String()))
	}
}

// PrintDeploySummary writes the outcome of a bootstrap run.
func PrintDeploySummary(w io.Writer, res *deploy.Result) {
	fmt.Fprintln(w)
	if res.Skipped {
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf(
			"%s is already configured; nothing to do (use --force to re-run)",
			output.StyleNoun.Render(res.App))))
		return
	}

	for _, warn := range res.Warnings {
		fmt.Fprintln(w, "  "+output.FormatWarningMark(warn.Step+": "+warn.Message))
	}

	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%s is ready to deploy (database %s, URL from %s)",
		output.StyleNoun.Render(res.App), output.StyleNoun.Render(res.Database), res.DatabaseURLSource)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleBold.Render("Next steps:"))
	fmt.Fprintln(w, "  fly deploy")
}
