package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("demo-app", nil))
}

func TestRenderFileTree_DirectoriesFirst(t *testing.T) {
	out := RenderFileTree("demo-app", map[string]string{
		"README.md":          "Project readme",
		"client/src/App.tsx": "Front-end entry",
		"fly.toml":           "Deployment descriptor",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "demo-app/")
	assert.Contains(t, lines[1], "client/")
	assert.Contains(t, out, "App.tsx")
	assert.Contains(t, out, "Deployment descriptor")

	readme := strings.Index(out, "README.md")
	fly := strings.Index(out, "fly.toml")
	assert.Less(t, readme, fly, "files sort alphabetically")
}

func TestRenderFileTree_DirectoryEntry(t *testing.T) {
	out := RenderFileTree("demo-app", map[string]string{
		"client/":  "Front-end",
		"fly.toml": "",
	})

	assert.Contains(t, out, "client/")
	assert.Contains(t, out, "Front-end")
	assert.NotContains(t, out, "client//")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
