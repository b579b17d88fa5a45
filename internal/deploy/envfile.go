package deploy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// ProductionEnvFile holds production settings in the project root.
const ProductionEnvFile = ".env.production"

// DatabaseURLKey is the environment key and secret name of the connection string.
const DatabaseURLKey = "DATABASE_URL"

// ReadEnvFile parses the production env file in dir. A missing file yields
// an empty map and no error.
func ReadEnvFile(fs afero.Fs, dir string) (map[string]string, error) {
	path := filepath.Join(dir, ProductionEnvFile)

	f, err := fs.Open(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return env, nil
}

// LookupDatabaseURL returns the connection string from the production env
// file, if one is set.
func LookupDatabaseURL(fs afero.Fs, dir string) (string, bool, error) {
	env, err := ReadEnvFile(fs, dir)
	if err != nil {
		return "", false, err
	}
	v := env[DatabaseURLKey]
	return v, v != "", nil
}
