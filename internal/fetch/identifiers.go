// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// entityIDPattern matches item, property and lexeme identifiers.
var entityIDPattern = regexp.MustCompile(`^[QPL][0-9]+$`)

// ValidID reports whether id looks like a Wikidata entity identifier.
func ValidID(id string) bool {
	return entityIDPattern.MatchString(id)
}

// ReadIdentifiers reads a tab-separated query export and returns, for each
// non-blank line, the final path segment of its first field. Given
// "http://www.wikidata.org/entity/Q42\tDouglas Adams" it yields "Q42".
// Order is preserved; identifiers are not validated here.
func ReadIdentifiers(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		field, _, _ := strings.Cut(line, "\t")
		field = strings.TrimSpace(field)
		id := field[strings.LastIndex(field, "/")+1:]
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning identifiers: %w", err)
	}
	return ids, nil
}

// SelectValid returns the ids that pass ValidID, in order. Each rejected id,
// such as the column name of a query export header, is reported to w.
func SelectValid(ids []string, w io.Writer) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if !ValidID(id) {
			fmt.Fprintf(w, "ignored: %q (not an entity identifier)\n", id)
			continue
		}
		valid = append(valid, id)
	}
	return valid
}

// ReadIdentifiersFile opens path and calls ReadIdentifiers.
func ReadIdentifiersFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()
	return ReadIdentifiers(f)
}

// EntityURL substitutes id into the {id} placeholder of template.
func EntityURL(template, id string) string {
	return strings.ReplaceAll(template, "{id}", id)
}

// FileName returns the name under which id is stored.
func FileName(id string) string {
	return id + ".json"
}
