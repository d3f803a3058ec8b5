// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter reduces entity documents to an allow-list of properties.
// Everything except the claims of each entity passes through untouched.
package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/wikidata-graph/internal/fetch"
	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// PropertySet is an allow-list of property identifiers.
type PropertySet map[string]bool

// NewPropertySet builds a PropertySet from ids, ignoring blanks.
func NewPropertySet(ids []string) PropertySet {
	set := make(PropertySet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = true
		}
	}
	return set
}

// FileStats counts what FilterDocument did to one document.
type FileStats struct {
	Entities int
	Kept     int
	Dropped  int
}

// BatchSummary holds counts from a filter run over a directory.
type BatchSummary struct {
	Filtered int
	Failed   int
	FileStats
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Filtered + s.Failed
}

// HasFailures reports whether any file failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// FilterDocument drops every claim whose property is not in allow, for every
// entity under the top-level "entities" key. Other fields are preserved as
// raw JSON. A claims value that is not a JSON object (Wikidata writes empty
// claims as []) is left as it is.
func FilterDocument(data []byte, allow PropertySet) ([]byte, FileStats, error) {
	var stats FileStats

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, stats, fmt.Errorf("parsing document: %w", err)
	}

	rawEntities, ok := doc["entities"]
	if !ok {
		return nil, stats, fmt.Errorf("document has no entities")
	}

	var entities map[string]map[string]json.RawMessage
	if err := json.Unmarshal(rawEntities, &entities); err != nil {
		return nil, stats, fmt.Errorf("parsing entities: %w", err)
	}

	for key, entity := range entities {
		stats.Entities++
		if entity == nil {
			continue
		}

		var claims map[string]json.RawMessage
		if err := json.Unmarshal(entity["claims"], &claims); err != nil || claims == nil {
			continue
		}

		kept := make(map[string]json.RawMessage, len(claims))
		for prop, c := range claims {
			if allow[prop] {
				kept[prop] = c
				stats.Kept++
			} else {
				stats.Dropped++
			}
		}

		filtered, err := json.Marshal(kept)
		if err != nil {
			return nil, stats, fmt.Errorf("encoding claims of %s: %w", key, err)
		}
		entity["claims"] = filtered
	}

	encoded, err := json.Marshal(entities)
	if err != nil {
		return nil, stats, fmt.Errorf("encoding entities: %w", err)
	}
	doc["entities"] = encoded

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, stats, fmt.Errorf("encoding document: %w", err)
	}
	return out, stats, nil
}

// FilterFile filters the document at path and writes it to outDir under the
// same base name.
func FilterFile(path, outDir string, allow PropertySet) (FileStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileStats{}, fmt.Errorf("reading %s: %w", path, err)
	}

	out, stats, err := FilterDocument(data, allow)
	if err != nil {
		return stats, err
	}

	dest := filepath.Join(outDir, filepath.Base(path))
	if err := writeAtomic(dest, out); err != nil {
		return stats, err
	}
	return stats, nil
}

// FilterDir filters every <id>.json file written by the fetch stage in
// cfg.InputDir into cfg.OutputDir, in name order. A file that fails is reported and counted; the run goes on.
func FilterDir(ctx context.Context, cfg types.FilterConfig, w io.Writer) (BatchSummary, error) {
	var summary BatchSummary

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return summary, fmt.Errorf("reading input directory %s: %w", cfg.InputDir, err)
	}

	allow := NewPropertySet(cfg.Properties)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isEntityFile(name) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		stats, err := FilterFile(filepath.Join(cfg.InputDir, name), cfg.OutputDir, allow)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		summary.Filtered++
		summary.Entities += stats.Entities
		summary.Kept += stats.Kept
		summary.Dropped += stats.Dropped
	}

	fmt.Fprintf(w, "filtered: %d, failed: %d (entities: %d, claims kept: %d, dropped: %d)\n",
		summary.Filtered, summary.Failed, summary.Entities, summary.Kept, summary.Dropped)
	return summary, nil
}

// isEntityFile reports whether name is <id>.json for an entity id the fetch
// stage accepts.
func isEntityFile(name string) bool {
	id, ok := strings.CutSuffix(name, ".json")
	return ok && fetch.ValidID(id)
}

func writeAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".filter-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", dest, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
