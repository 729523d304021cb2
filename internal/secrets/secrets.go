// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Recognized key files: db-password, db-user.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Key file names read by the CLI.
const (
	DBPassword = "db-password"
	DBUser     = "db-user"
)

// Secrets maps key file names to their trimmed contents.
type Secrets map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files produce a warning on stderr but do
// not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns value when it is non-empty, otherwise the secret stored under
// key, or "" when neither is set.
func (s Secrets) Get(key, value string) string {
	if value != "" {
		return value
	}
	return s[key]
}

// Names returns the loaded key names in sorted order.
func (s Secrets) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
