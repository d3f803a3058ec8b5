// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads operator settings that do not belong in a committed
// config file from a directory of plain-text files. Each file is one value:
// the filename is the key and the trimmed contents are the value.
//
// Supported key files: contact-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContactEmail is the key of the operator's contact address. Wikimedia asks
// automated clients to put a way to reach them in the User-Agent.
const ContactEmail = "contact-email"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// UserAgent appends the contact address from s to base, e.g.
// "wikidata-graph/0.1 (mailto:ops@example.org)". Without an address, or when
// base already carries a parenthesized comment, base is returned unchanged.
func UserAgent(base string, s map[string]string) string {
	email := s[ContactEmail]
	if email == "" || strings.Contains(base, "(") {
		return base
	}
	return fmt.Sprintf("%s (mailto:%s)", base, email)
}
