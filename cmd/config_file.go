package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"clockdump/config"
)

const defaultConfigName = ".clockdump.yaml"

// configTargetPath is the file "config create" and "config edit" operate on:
// the --configFile value, else the file viper loaded, else $HOME/.clockdump.yaml.
func configTargetPath(flagValue, loaded string, homeDir func() (string, error)) (string, error) {
	for _, candidate := range []string{flagValue, loaded} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate, nil
		}
	}

	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName), nil
}

// writeConfigTemplate writes the example template unless a file already
// exists at path. The file may hold an API key, so it is created 0600.
func writeConfigTemplate(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory %s: %w", filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create config file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(config.ExampleYAML()); err != nil {
		return false, fmt.Errorf("write config template %s: %w", path, err)
	}
	return true, nil
}

// credentialNotice describes what happens to API key resolution once the
// config file is gone. It is empty when the file held no key.
func credentialNotice(stored string, lookupEnv func(string) (string, bool)) string {
	if strings.TrimSpace(stored) == "" {
		return ""
	}
	if _, source, err := config.ResolveAPIKey(config.EnvSource(config.EnvAPIKey, lookupEnv)); err == nil {
		return "The deleted file held an API key; " + source + " remains and will be used."
	}
	return "Warning: the deleted file held the only stored API key. Pass --api-key or set " + config.EnvAPIKey + " before the next fetch."
}
