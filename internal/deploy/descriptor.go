// Package deploy provisions a generated project's remote application and
// database secret on fly.io.
package deploy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

// DescriptorFile is the deployment descriptor in the project root.
const DescriptorFile = "fly.toml"

// Descriptor holds the fields read from the deployment descriptor.
type Descriptor struct {
	App           string `toml:"app"`
	PrimaryRegion string `toml:"primary_region"`
}

// ReadDescriptor parses the deployment descriptor in dir. A missing file,
// malformed TOML or an empty app name are all fatal.
func ReadDescriptor(fs afero.Fs, dir string) (*Descriptor, error) {
	path := filepath.Join(dir, DescriptorFile)

	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return nil, oerrors.NewNotFoundError("deployment descriptor not found", path,
			"Run this command from a generated project directory or pass --project.")
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var d Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "unrecognized format",
			Message:  fmt.Sprintf("could not parse %s: %v", DescriptorFile, err),
			Location: path,
			Cause:    oerrors.ErrUnrecognizedFormat,
		}
	}

	if d.App == "" {
		return nil, oerrors.NewNotFoundError("no app name in deployment descriptor", path,
			`Add a top-level key such as app = "my-app" to fly.toml.`)
	}

	return &d, nil
}
