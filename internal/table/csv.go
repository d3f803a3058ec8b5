// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table writes the node, edge and description tables as CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// Column headers.
var (
	NodeHeader = []string{"id", "name", "description", "birth", "death"}
	EdgeHeader = []string{"start_node", "edge_type", "end_node"}
)

// WriteAll writes the three tables into cfg.OutputDir using the configured
// file names, creating the directory if needed.
func WriteAll(cfg types.ExtractConfig, t types.Tables) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := WriteNodes(filepath.Join(cfg.OutputDir, cfg.NodeFile), t.Nodes); err != nil {
		return err
	}
	if err := WriteEdges(filepath.Join(cfg.OutputDir, cfg.EdgeFile), t.Edges); err != nil {
		return err
	}
	return WriteDescriptions(filepath.Join(cfg.OutputDir, cfg.DescFile), t.Descriptions)
}

// WriteNodes writes node_list.csv.
func WriteNodes(path string, nodes []types.Node) error {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, n.Name, n.Description, n.Birth, n.Death})
	}
	return writeCSV(path, NodeHeader, rows)
}

// WriteEdges writes edge_list.csv.
func WriteEdges(path string, edges []types.Edge) error {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{e.Source, e.Property, e.Target})
	}
	return writeCSV(path, EdgeHeader, rows)
}

// WriteDescriptions writes desc_list.csv. It shares the edge header; the
// literal value goes in end_node.
func WriteDescriptions(path string, descs []types.Description) error {
	rows := make([][]string, 0, len(descs))
	for _, d := range descs {
		rows = append(rows, []string{d.Source, d.Property, d.Value})
	}
	return writeCSV(path, EdgeHeader, rows)
}

// ReadCSV reads a whole CSV file, header included.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// writeCSV writes header and rows to a temp file next to path and renames it
// into place, so readers never see a half-written table.
func writeCSV(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".table-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	w.Write(header)
	w.WriteAll(rows)
	writeErr := w.Error()
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
