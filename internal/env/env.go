// Package env loads KEY=VALUE pairs from a .env file into the process
// environment so config URLs like ${AREON_RPC_URL} can be kept out of YAML.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultPath is the file Load reads when given an empty path.
const DefaultPath = ".env"

// Load reads path (DefaultPath when empty) and sets every variable it
// defines with os.Setenv.
//
// File format:
//   - Each line contains KEY=VALUE, optionally prefixed with "export "
//   - Empty lines and lines starting with # are ignored
//   - Surrounding single or double quotes are stripped from values
//
// A missing file is not an error. Variables already set in the environment
// are overridden.
func Load(path string) error {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for key, value := range Parse(string(data)) {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// Parse returns the variables defined in .env formatted content.
func Parse(content string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		// Split on first "=" so values may contain "="
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
