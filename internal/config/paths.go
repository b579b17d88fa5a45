package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for rtb.
type Paths struct {
	// ConfigFile is the path to the config file (~/.rtb/config.yaml).
	ConfigFile string

	// HomeDir is the rtb home directory (~/.rtb).
	HomeDir string
}

// DefaultPaths returns the default paths for rtb.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	rtbHome := filepath.Join(homeDir, ".rtb")

	return &Paths{
		ConfigFile: filepath.Join(rtbHome, "config.yaml"),
		HomeDir:    rtbHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If RTB_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("RTB_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
